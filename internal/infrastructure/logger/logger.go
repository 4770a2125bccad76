package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

type Options struct {
	Level        string
	Format       string
	ReportCaller bool
}

var std atomic.Pointer[log.Logger]

func init() {
	std.Store(log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true}))
}

// New creates a logger writing to w, which defaults to os.Stderr.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	formatter := log.TextFormatter
	switch strings.ToLower(opts.Format) {
	case "", "text":
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		ReportCaller:    opts.ReportCaller,
	}), nil
}

func Default() *log.Logger {
	return std.Load()
}

func SetDefault(l *log.Logger) {
	std.Store(l)
}

// Discard is a logger for tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
