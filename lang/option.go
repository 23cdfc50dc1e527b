package lang

import "github.com/ardnew/elconf/log"

// DefaultRootName is the tag of the synthetic node that wraps all top-level
// constructs unless configured otherwise.
const DefaultRootName = "root"

// DefaultMaxDepth is the default maximum nesting depth of blocks.
// Users may modify this before parsing to change the default.
var DefaultMaxDepth = 1000

// config holds the parse options.
type config struct {
	rootName   string
	singleRoot bool
	idMapper   IDMapper
	filename   string
	maxDepth   int
	logger     log.Logger
}

// Option configures parsing behavior.
type Option func(*config)

func makeConfig(opts ...Option) *config {
	cfg := &config{
		rootName: DefaultRootName,
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.maxDepth <= 0 {
		cfg.maxDepth = DefaultMaxDepth
	}

	return cfg
}

// WithRootName sets the tag of the synthetic root node.
// An empty name disables wrapping: the parsed [Document] then holds the raw
// top-level sequence in its Nodes field.
func WithRootName(name string) Option {
	return func(c *config) {
		c.rootName = name
	}
}

// WithSingleRoot requires the document to contain exactly one top-level
// element, which becomes the root node without a synthetic wrapper.
func WithSingleRoot(single bool) Option {
	return func(c *config) {
		c.singleRoot = single
	}
}

// WithIDMapper sets the callback that receives the positional values of an
// element that also has a block with nested constructs.
// Without a mapper those values are discarded.
func WithIDMapper(fn IDMapper) Option {
	return func(c *config) {
		c.idMapper = fn
	}
}

// WithFilename sets the file name reported in error positions.
func WithFilename(name string) Option {
	return func(c *config) {
		c.filename = name
	}
}

// WithMaxDepth sets the maximum nesting depth of blocks.
// A depth of zero or less selects [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
