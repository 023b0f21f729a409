package mcpserver

import (
	"context"

	"github.com/effective-security/xlog"
	"github.com/prolific-tools/prolific-mcp/tools"
)

// LoggerCallback logs tool lifecycle events to the package logger.
// Output goes to stderr, which keeps stdout clean for the protocol.
type LoggerCallback struct {
	logger *xlog.PackageLogger
}

var _ tools.Callback = (*LoggerCallback)(nil)

func NewLoggerCallback(logger *xlog.PackageLogger) *LoggerCallback {
	return &LoggerCallback{logger: logger}
}

func (l *LoggerCallback) OnToolStart(ctx context.Context, tool tools.ITool, input string) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "tool_start",
		"tool", tool.Name(),
		"input", input,
	)
}

func (l *LoggerCallback) OnToolEnd(ctx context.Context, tool tools.ITool, input string, output string) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "tool_end",
		"tool", tool.Name(),
		"output_len", len(output),
	)
}

func (l *LoggerCallback) OnToolError(ctx context.Context, tool tools.ITool, input string, err error) {
	l.logger.ContextKV(ctx, xlog.ERROR,
		"event", "tool_error",
		"tool", tool.Name(),
		"err", err.Error(),
	)
}
