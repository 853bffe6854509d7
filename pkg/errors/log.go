package errors

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// LogHandler is an ErrorHandler that logs errors to stderr.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// HandleError logs an Error to stderr.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "[loom error] %s [%s]: %v\n", err.Op, err.Kind, err.Err)
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// HandlePanic logs a PanicError to stderr.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Op != "" {
		fmt.Fprintf(os.Stderr, "[loom panic] %s: %v\n", err.Op, err.Value)
	} else {
		fmt.Fprintf(os.Stderr, "[loom panic] %v\n", err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", err.StackTrace)
	}
}

// ZapHandler is an ErrorHandler that reports through a zap logger.
type ZapHandler struct {
	Logger *zap.Logger
}

// HandleError logs an Error as a structured record.
func (h *ZapHandler) HandleError(err *Error) {
	if err == nil || h.Logger == nil {
		return
	}
	h.Logger.Error("framework error",
		zap.String("op", err.Op),
		zap.String("kind", err.Kind.String()),
		zap.Error(err.Err),
	)
}

// HandlePanic logs a PanicError as a structured record.
func (h *ZapHandler) HandlePanic(err *PanicError) {
	if err == nil || h.Logger == nil {
		return
	}
	h.Logger.Error("recovered panic",
		zap.String("op", err.Op),
		zap.Any("value", err.Value),
		zap.String("stack", err.StackTrace),
	)
}
