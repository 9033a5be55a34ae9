// Package logger owns the process-wide zerolog logger.
//
// Call Init once from main; libraries receive a zerolog.Logger by injection and
// only main and tests touch this package.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configures Init.
type Options struct {
	// Level is trace, debug, info, warn or error. Anything else means info.
	Level string
	// Pretty switches to the coloured console writer (development).
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
	// Service, when set, is stamped on every line as "service".
	Service string
}

var (
	mu      sync.Mutex
	root    zerolog.Logger
	hasRoot bool
)

// Init builds the root logger. Later calls return the first one.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if hasRoot {
		return root
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	lvl := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	ctx := zerolog.New(out).Level(lvl).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	if lvl <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	root = ctx.Logger()
	hasRoot = true
	return root
}

// current returns the initialised logger. It panics before Init.
func current() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !hasRoot {
		panic("logger: used before Init")
	}
	return root
}

// Component returns a child of the root logger tagged with component.
// It panics before Init.
func Component(name string) zerolog.Logger {
	return current().With().Str("component", name).Logger()
}

func reset() {
	mu.Lock()
	defer mu.Unlock()
	root = zerolog.Logger{}
	hasRoot = false
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
