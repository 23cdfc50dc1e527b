package cmd

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/elconf/lang"
	"github.com/ardnew/elconf/log"
	"github.com/ardnew/elconf/profile"
)

// configHeader precedes the generated configuration block.
const configHeader = "# Default flag values, applied before the command line.\n"

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	_, err = fmt.Fprint(file, configHeader, lang.ToText(i.buildNode(ctx)))
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// buildNode constructs the config block from current flag values. Scalars
// become attributes; each element of a repeatable flag becomes a leaf.
func (i *Init) buildNode(ctx context.Context) *lang.Node {
	ktx := kongContextFrom(ctx)

	cfg := lang.NewNode(ConfigIdentifier)

	prefixIgnore := []string{"help", "version", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		for elem, v := range flagValues(ktx.FlagValue(flag)) {
			if elem {
				cfg.Append(lang.NewLeaf(flag.Name, v))
			} else {
				cfg.Attrs.Set(flag.Name, v)
			}
		}
	}

	return cfg
}

// flagValues renders a flag value as text. The key reports whether the value
// is one element of a list. Nil values and empty strings or lists yield
// nothing.
func flagValues(val any) iter.Seq2[bool, string] {
	return func(yield func(bool, string) bool) {
		switch v := val.(type) {
		case nil:
			return

		case bool:
			yield(false, strconv.FormatBool(v))

			return

		case string:
			if v != "" {
				yield(false, v)
			}

			return
		}

		rv := reflect.ValueOf(val)
		if rv.Kind() != reflect.Slice {
			if s := fmt.Sprint(val); s != "" {
				yield(false, s)
			}

			return
		}

		for j := range rv.Len() {
			if !yield(true, fmt.Sprint(rv.Index(j).Interface())) {
				return
			}
		}
	}
}
