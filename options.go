package postfx

import "log/slog"

// Option configures an Engine during creation.
//
// Example:
//
//	// Default: primary parameter set, embedded shader source
//	engine, err := postfx.New(device, store)
//
//	// Named parameter set, custom logger
//	engine, err := postfx.New(device, store,
//	    postfx.WithInstance(2),
//	    postfx.WithLogger(slog.Default()))
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	logger   *slog.Logger
	source   string
	instance int
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		logger:   nil, // package-level Logger() if nil
		source:   postProcessShaderSource,
		instance: 0, // primary parameter set
	}
}

// WithLogger sets a dedicated logger for this engine, overriding the
// package-level logger configured with SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *engineOptions) {
		o.logger = l
	}
}

// WithShaderSource overrides the embedded post-process shader source.
// The source must define the mainPassThrough and mainPostProcess entry
// points and the coefficient uniform layout. Combine with
// [Engine.Reload] to pick up on-disk shader edits at runtime.
func WithShaderSource(source string) Option {
	return func(o *engineOptions) {
		if source != "" {
			o.source = source
		}
	}
}

// WithInstance selects which named parameter set drives the engine.
// Instance 0 is the primary, unsuffixed set; 1..MaxInstance select the
// suffixed variants. Out-of-range values clamp.
func WithInstance(instance int) Option {
	return func(o *engineOptions) {
		o.instance = instance
	}
}
