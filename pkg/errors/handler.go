package errors

import (
	"runtime"
	"strings"
	"sync"
	"time"
)

// ErrorHandler receives reported errors.
type ErrorHandler interface {
	HandleError(err *Error)
	HandlePanic(err *PanicError)
}

var (
	// defaultHandler is the global error handler.
	defaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler configures the global error handler.
// Pass nil to restore the default LogHandler.
func SetHandler(h ErrorHandler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		defaultHandler = &LogHandler{}
	} else {
		defaultHandler = h
	}
}

// getHandler returns the current error handler.
func getHandler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return defaultHandler
}

// Report sends an error to the global handler.
// If err.Timestamp is zero, it is set to the current time.
func Report(err *Error) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := getHandler(); h != nil {
		h.HandleError(err)
	}
}

// ReportPanic sends a panic error to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := getHandler(); h != nil {
		h.HandlePanic(err)
	}
}

// Recover is a helper for deferred panic recovery.
// Usage: defer errors.Recover("operation.name")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(&PanicError{
			Op:         op,
			Value:      r,
			StackTrace: CaptureStack(),
			Timestamp:  time.Now(),
		})
	}
}

// CaptureStack returns the current call stack, trimmed of the capture
// machinery itself.
func CaptureStack() string {
	buf := make([]byte, 16*1024)
	n := runtime.Stack(buf, false)
	stack := string(buf[:n])
	if idx := strings.Index(stack, "\n"); idx >= 0 {
		lines := strings.Split(stack, "\n")
		var kept []string
		kept = append(kept, lines[0])
		for i := 1; i+1 < len(lines); i += 2 {
			fn := lines[i]
			if strings.Contains(fn, "errors.CaptureStack") || strings.Contains(fn, "errors.Recover") {
				continue
			}
			kept = append(kept, fn, lines[i+1])
		}
		stack = strings.Join(kept, "\n")
	}
	return stack
}
