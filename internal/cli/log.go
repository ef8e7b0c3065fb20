// Package cli implements the anchorgen command-line interface.
//
// Commands:
//   - generate: print the anchor table for one base size, ratio set and scale set
//   - fpn: print one anchor table per feature pyramid stride
//
// Both commands accept --config pointing at a YAML or TOML file and
// --verbose (-v) for debug logging. The logger travels through context.Context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext falls back to log.Default when ctx carries no logger.
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return log.Default()
	}
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
