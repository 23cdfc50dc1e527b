package cli

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/elconf/lang"
	"github.com/ardnew/elconf/log"
)

// resolve returns a [kong.ConfigurationLoader] for config files written in
// elconf itself.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx, "config"), "/path/to/config")
//
// The top-level block tagged name supplies the flag values:
//   - each attribute sets the flag of the same name
//   - repeated leaves build the value of a list flag
//   - nested blocks and dotted names join their path with hyphens, so
//     log.level and log { level = debug } both set --log-level
//   - underscores may stand in for hyphens
//
// Example config file:
//
//	config {
//	    log.level  = debug
//	    log.pretty = false
//	    source /srv/net/base.conf;
//	    source /srv/net/lab.conf;
//	}
//
// Command-line flags override config file values. A file that does not
// parse is logged and ignored.
func resolve(ctx context.Context, name string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		doc, err := lang.ParseReader(ctx, r, lang.WithLogger(log.Default()))
		if err != nil {
			log.WarnContext(ctx, "ignoring invalid configuration file",
				log.Err(err))

			return config{}, nil
		}

		block := doc.Root.Child(name)
		if block == nil {
			return config{}, nil
		}

		cfg := config{}
		cfg.collect("", block)

		log.TraceContext(ctx, "configuration loaded",
			slog.Int("key_count", len(cfg)))

		return cfg, nil
	}
}

// config implements [kong.Resolver] for elconf config blocks.
type config map[string]any

// collect flattens n into c, prefixing every key with prefix.
func (c config) collect(prefix string, n *lang.Node) {
	for key, value := range n.Attrs.All() {
		c[prefix+key] = value
	}

	for _, child := range n.Children {
		key := prefix + child.Tag
		if !child.IsLeaf() {
			c.collect(key+"-", child)

			continue
		}

		list, _ := c[key].([]any)
		c[key] = append(list, child.Text)
	}
}

// lookup finds the value for a flag name under either spelling.
func (c config) lookup(name string) (any, bool) {
	if value, ok := c[name]; ok {
		return value, true
	}

	value, ok := c[strings.ReplaceAll(name, "-", "_")]

	return value, ok
}

// Validate implements [kong.Resolver]. Keys that match no flag are logged,
// not rejected, so one config file can serve several versions of the
// command.
func (c config) Validate(app *kong.Application) error {
	var known []string

	var walk func(*kong.Node)
	walk = func(n *kong.Node) {
		for _, f := range n.Flags {
			known = append(known, f.Name, strings.ReplaceAll(f.Name, "-", "_"))
		}

		for _, child := range n.Children {
			walk(child)
		}
	}

	walk(app.Node)

	for key := range c {
		if !slices.Contains(known, key) {
			log.Warn("unknown configuration key", slog.String("key", key))
		}
	}

	return nil
}

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c.lookup(flag.Name); ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}
