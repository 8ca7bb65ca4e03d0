package proj

import "C"

import (
	"sync"
	"unsafe"

	"github.com/charmbracelet/log"
)

// Loggers are keyed by the PJ_CONTEXT address, which libproj hands back to
// the callback as its app_data argument.
var projLoggers = struct {
	sync.Mutex
	byContext map[uintptr]*log.Logger
}{byContext: make(map[uintptr]*log.Logger)}

func registerLogger(key uintptr, logger *log.Logger) {
	projLoggers.Lock()
	projLoggers.byContext[key] = logger
	projLoggers.Unlock()
}

func dropLogger(key uintptr) {
	projLoggers.Lock()
	delete(projLoggers.byContext, key)
	projLoggers.Unlock()
}

// Log levels as defined by libproj's PJ_LOG_LEVEL.
const (
	logLevelError = 1
	logLevelDebug = 2
)

//export goProjLogFn
func goProjLogFn(appData unsafe.Pointer, level C.int, msg *C.char) {
	projLoggers.Lock()
	logger := projLoggers.byContext[uintptr(appData)]
	projLoggers.Unlock()
	if logger == nil {
		return
	}
	text := C.GoString(msg)
	switch int(level) {
	case logLevelError:
		logger.Error(text)
	case logLevelDebug:
		logger.Debug(text)
	default:
		// PJ_LOG_TRACE and anything newer
		logger.Debug(text)
	}
}
