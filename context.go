package proj

/*
#include "proj_go.h"
*/
import "C"

import (
	"math"
	"unsafe"

	"github.com/charmbracelet/log"
)

// threadContext owns the PJ_CONTEXT backing one transformation. It is
// created before the native factory call, so the factory itself runs under
// the configured context, and destroyed strictly after the PJ it served.
type threadContext struct {
	ctx    *C.PJ_CONTEXT
	opened bool
}

func newThreadContext() (*threadContext, error) {
	ctx := C.proj_context_create()
	if ctx == nil {
		return nil, &ContextError{Op: "create", Message: "proj_context_create returned a null context"}
	}
	return &threadContext{ctx: ctx, opened: true}, nil
}

func (tc *threadContext) close() {
	if tc.opened {
		dropLogger(uintptr(unsafe.Pointer(tc.ctx)))
		C.proj_context_destroy(tc.ctx)
		tc.ctx = nil
		tc.opened = false
	}
}

// errno reads the context-local error code left by the last factory call.
func (tc *threadContext) errno() int {
	return int(C.proj_context_errno(tc.ctx))
}

func (tc *threadContext) setSearchPaths(paths []string) {
	if len(paths) == 0 {
		return
	}
	cpaths := make([]*C.char, len(paths))
	for i, path := range paths {
		cpaths[i] = C.CString(path)
	}
	defer func() {
		for _, cpath := range cpaths {
			C.free(unsafe.Pointer(cpath))
		}
	}()
	C.set_search_paths(tc.ctx, C.int(len(cpaths)), &cpaths[0])
}

func (tc *threadContext) setNetworkEnabled(enabled bool) error {
	flag := C.int(0)
	if enabled {
		flag = 1
	}
	if C.proj_context_set_enable_network(tc.ctx, flag) == 0 && enabled {
		return &ConfigurationError{Setting: "network", Message: "libproj was built without network support"}
	}
	return nil
}

func (tc *threadContext) networkEnabled() bool {
	return C.proj_context_is_network_enabled(tc.ctx) != 0
}

func (tc *threadContext) setEndpointURL(endpoint string) {
	cendpoint := C.CString(endpoint)
	defer C.free(unsafe.Pointer(cendpoint))
	C.proj_context_set_url_endpoint(tc.ctx, cendpoint)
}

func (tc *threadContext) setCache(enabled bool, maxBytes int64) {
	flag := C.int(0)
	if enabled {
		flag = 1
	}
	C.proj_grid_cache_set_enable(tc.ctx, flag)
	if maxBytes > 0 {
		mib := (maxBytes + (1 << 20) - 1) >> 20
		// libproj takes the bound as a C int of mebibytes
		if mib > math.MaxInt32 {
			mib = math.MaxInt32
		}
		C.proj_grid_cache_set_max_size(tc.ctx, C.int(mib))
	}
}

func (tc *threadContext) setLogger(logger *log.Logger) {
	if logger == nil {
		return
	}
	registerLogger(uintptr(unsafe.Pointer(tc.ctx)), logger)
	C.proj_log_level(tc.ctx, C.PJ_LOG_DEBUG)
	C.set_go_log(tc.ctx)
}
