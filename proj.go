package proj

/*
#cgo darwin pkg-config: proj
#cgo !darwin LDFLAGS: -lproj
#include "proj_go.h"
*/
import "C"

import (
	"math"
	"runtime"
	"sync"
	"unsafe"
)

// Proj owns one native transformation object together with the thread
// context it was created under. The pair is created and destroyed as a
// unit; Close releases the transformation first and the context last.
//
// A Proj is not reentrant inside libproj. An internal mutex serializes
// calls on a shared instance, but for parallel workloads each goroutine
// should own its own Proj.
type Proj struct {
	mu     sync.Mutex
	pj     *C.PJ
	ctx    *threadContext
	area   *C.PJ_AREA
	opened bool
}

// The direction of a transformation
type Direction C.PJ_DIRECTION

const (
	Forward  = Direction(C.PJ_FWD)   // Forward transformation
	Identity = Direction(C.PJ_IDENT) // Do nothing
	Inverse  = Direction(C.PJ_INV)   // Inverse transformation
)

type LibInfo struct {
	Major      int    // Major version number.
	Minor      int    // Minor version number.
	Patch      int    // Patch level of release.
	Release    string // Release info. Version number and release date, e.g. “Rel. 4.9.3, 15 August 2016”.
	Version    string // Text representation of the full version number, e.g. “4.9.3”.
	Searchpath string // Search path for PROJ. List of directories separated by semicolons (Windows) or colons (non-Windows).
}

type ProjInfo struct {
	ID          string  // Short ID of the operation the Proj is based on, that is, what comes after the +proj= in a proj-string, e.g. “merc”.
	Description string  // Long description of the operation the Proj is based on, e.g. “Mercator Cyl, Sph&Ell lat_ts=”.
	Definition  string  // The proj-string that was used to create the Proj, e.g. “+proj=merc +lat_0=24 +lon_0=53 +ellps=WGS84”.
	HasInverse  bool    // True if an inverse mapping of the defined operation exists.
	Accuracy    float64 // Expected accuracy of the transformation. -1 if unknown.
}

// New creates a transformation from a free-form proj-string or pipeline
// definition, with default configuration. Use a Builder to set search
// paths, network or cache options.
func New(definition string) (*Proj, error) {
	return NewBuilder().FromDefinition(definition)
}

// NewKnownCRS creates a pipeline between two coordinate reference systems
// named by "AUTHORITY:CODE" identifiers. See Builder.FromKnownCRS for the
// axis order convention.
func NewKnownCRS(source, target string) (*Proj, error) {
	return NewBuilder().FromKnownCRS(source, target)
}

// NewPipeline assembles a +proj=pipeline definition from steps.
func NewPipeline(steps ...Step) (*Proj, error) {
	return NewBuilder().FromPipeline(steps...)
}

func createFromDefinition(tc *threadContext, definition string) (*Proj, error) {
	cs := C.CString(definition)
	defer C.free(unsafe.Pointer(cs))
	pj := C.proj_create(tc.ctx, cs)
	if C.pjnull(pj) != 0 {
		code := tc.errno()
		return nil, &DefinitionError{Definition: definition, Code: code, Message: errnoMessage(code)}
	}
	return wrap(tc, pj, nil), nil
}

func createFromKnownCRS(tc *threadContext, source, target string, area *Area) (*Proj, error) {
	if source == "" || target == "" {
		return nil, &CRSLookupError{Source: source, Target: target, Message: "empty CRS identifier"}
	}

	csource := C.CString(source)
	defer C.free(unsafe.Pointer(csource))
	ctarget := C.CString(target)
	defer C.free(unsafe.Pointer(ctarget))

	// Every known-CRS handle gets an area object, so SetAreaOfUse works
	// whether or not a bounding box was configured up front. An area with
	// no bbox set constrains nothing.
	carea := C.proj_area_create()
	if area != nil {
		C.proj_area_set_bbox(carea, C.double(area.West), C.double(area.South), C.double(area.East), C.double(area.North))
	}

	pj := C.proj_create_crs_to_crs(tc.ctx, csource, ctarget, carea)
	if C.pjnull(pj) != 0 {
		code := tc.errno()
		if carea != nil {
			C.proj_area_destroy(carea)
		}
		return nil, &CRSLookupError{Source: source, Target: target, Code: code, Message: errnoMessage(code)}
	}
	return wrap(tc, pj, carea), nil
}

func wrap(tc *threadContext, pj *C.PJ, area *C.PJ_AREA) *Proj {
	p := &Proj{
		pj:     pj,
		ctx:    tc,
		area:   area,
		opened: true,
	}
	runtime.SetFinalizer(p, (*Proj).Close)
	return p
}

// Close releases the native transformation, then its area of use, then the
// thread context. It is safe to call more than once; only the first call
// releases anything. A finalizer runs Close for a Proj that goes out of
// scope unclosed.
func (p *Proj) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return
	}
	C.proj_destroy(p.pj)
	p.pj = nil
	if p.area != nil {
		C.proj_area_destroy(p.area)
		p.area = nil
	}
	p.ctx.close()
	p.ctx = nil
	p.opened = false
	runtime.SetFinalizer(p, nil)
}

// trans resets the error state, runs one native transform, and reports the
// post-call error code. Resetting first keeps a previous call's failure
// from leaking into this call's status. Callers must hold p.mu.
func (p *Proj) trans(direction Direction, coord Coord) (Coord, int) {
	C.proj_errno_reset(p.pj)
	var x, y, z C.double
	C.transxyz(p.pj, C.PJ_DIRECTION(direction), C.double(coord.X), C.double(coord.Y), C.double(coord.Z), &x, &y, &z)
	return Coord{X: float64(x), Y: float64(y), Z: float64(z)}, int(C.proj_errno(p.pj))
}

// Project runs the projection forward (geodetic, in radians, to projected)
// or inverse. It is meant for transformations built from a single
// projection definition; CRS pipelines use Convert.
func (p *Proj) Project(direction Direction, coord Coord) (Coord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return Coord{}, errProjectionClosed
	}
	out, code := p.trans(direction, coord)
	if code != 0 {
		return Coord{}, &ProjectionError{Code: code, Message: errnoMessage(code), Index: -1}
	}
	return out, nil
}

// Convert runs a forward transform through whatever pipeline the
// transformation encapsulates.
func (p *Proj) Convert(coord Coord) (Coord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return Coord{}, errProjectionClosed
	}
	out, code := p.trans(Forward, coord)
	if code != 0 {
		return Coord{}, &ConversionError{Code: code, Message: errnoMessage(code), Index: -1}
	}
	return out, nil
}

// ProjectSlice projects coords in place, preserving order. On failure the
// ProjectionError names the first failing index; elements before it have
// already been replaced by their projected values.
func (p *Proj) ProjectSlice(direction Direction, coords []Coord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return errProjectionClosed
	}
	for i := range coords {
		out, code := p.trans(direction, coords[i])
		if code != 0 {
			return &ProjectionError{Code: code, Message: errnoMessage(code), Index: i}
		}
		coords[i] = out
	}
	return nil
}

// ConvertSlice converts coords in place. Failure semantics match
// ProjectSlice, with a ConversionError naming the first failing index.
func (p *Proj) ConvertSlice(coords []Coord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return errProjectionClosed
	}
	for i := range coords {
		out, code := p.trans(Forward, coords[i])
		if code != 0 {
			return &ConversionError{Code: code, Message: errnoMessage(code), Index: i}
		}
		coords[i] = out
	}
	return nil
}

// Definition returns the round-trippable proj-string the transformation was
// built from.
func (p *Proj) Definition() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return "", errProjectionClosed
	}
	info := C.proj_pj_info(p.pj)
	definition := C.GoString(info.definition)
	if definition == "" {
		return "", &DefinitionRetrievalError{}
	}
	return definition, nil
}

// Info returns information about the transformation object.
func (p *Proj) Info() (ProjInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return ProjInfo{}, errProjectionClosed
	}
	info := C.proj_pj_info(p.pj)
	return ProjInfo{
		ID:          C.GoString(info.id),
		Description: C.GoString(info.description),
		Definition:  C.GoString(info.definition),
		HasInverse:  info.has_inverse != 0,
		Accuracy:    float64(info.accuracy),
	}, nil
}

// SetAreaOfUse replaces the bounding box constraining the choice of
// coordinate operations. It only has an effect on transformations built by
// the known-CRS factory path and applies to subsequent calls.
func (p *Proj) SetAreaOfUse(area Area) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened || p.area == nil {
		return
	}
	C.proj_area_set_bbox(p.area, C.double(area.West), C.double(area.South), C.double(area.East), C.double(area.North))
}

// SetNetworkEnabled toggles on-demand grid download for subsequent calls.
func (p *Proj) SetNetworkEnabled(enabled bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return errProjectionClosed
	}
	return p.ctx.setNetworkEnabled(enabled)
}

// NetworkEnabled reports whether on-demand grid download is enabled.
func (p *Proj) NetworkEnabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return false
	}
	return p.ctx.networkEnabled()
}

// SetEndpointURL overrides the CDN endpoint grids are fetched from, for
// subsequent calls.
func (p *Proj) SetEndpointURL(endpoint string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return errProjectionClosed
	}
	if err := validateEndpoint(endpoint); err != nil {
		return err
	}
	p.ctx.setEndpointURL(endpoint)
	return nil
}

// SetSearchPaths sets the directories libproj scans for resource files, for
// subsequent calls.
func (p *Proj) SetSearchPaths(paths ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return errProjectionClosed
	}
	for _, path := range paths {
		if path == "" {
			return &ConfigurationError{Setting: "search path", Message: "empty path"}
		}
	}
	p.ctx.setSearchPaths(paths)
	return nil
}

// SetGridCache toggles the local grid cache for subsequent calls. maxBytes
// is rounded up to whole mebibytes; 0 keeps libproj's default bound.
func (p *Proj) SetGridCache(enabled bool, maxBytes int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return errProjectionClosed
	}
	if maxBytes < 0 {
		return &ConfigurationError{Setting: "grid cache", Message: "maximum size is negative"}
	}
	p.ctx.setCache(enabled, maxBytes)
	return nil
}

// Dist calculates the geodesic distance between two points in geodetic
// coordinates, located on the ellipsoid of the transformation.
func (p *Proj) Dist(a, b Coord) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return 0, errProjectionClosed
	}
	C.proj_errno_reset(p.pj)
	ca := C.uvwt(C.double(a.X), C.double(a.Y), 0, 0)
	cb := C.uvwt(C.double(b.X), C.double(b.Y), 0, 0)
	d := C.proj_lp_dist(p.pj, ca, cb)
	if code := int(C.proj_errno(p.pj)); code != 0 {
		return 0, &ProjectionError{Code: code, Message: errnoMessage(code), Index: -1}
	}
	return float64(d), nil
}

// Dist3 is like Dist but also takes the height above the ellipsoid into
// account.
func (p *Proj) Dist3(a, b Coord) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.opened {
		return 0, errProjectionClosed
	}
	C.proj_errno_reset(p.pj)
	ca := C.uvwt(C.double(a.X), C.double(a.Y), C.double(a.Z), 0)
	cb := C.uvwt(C.double(b.X), C.double(b.Y), C.double(b.Z), 0)
	d := C.proj_lpz_dist(p.pj, ca, cb)
	if code := int(C.proj_errno(p.pj)); code != 0 {
		return 0, &ProjectionError{Code: code, Message: errnoMessage(code), Index: -1}
	}
	return float64(d), nil
}

func errnoMessage(code int) string {
	return C.GoString(C.proj_errno_string(C.int(code)))
}

// Get information about the current instance of the PROJ library
func Info() LibInfo {
	info := C.proj_info()
	return LibInfo{
		Major:      int(info.major),
		Minor:      int(info.minor),
		Patch:      int(info.patch),
		Release:    C.GoString(info.release),
		Version:    C.GoString(info.version),
		Searchpath: C.GoString(info.searchpath),
	}
}

// Convert degrees to radians
func DegToRad(deg float64) float64 {
	return deg / 180 * math.Pi
}

// Convert radians to degrees
func RadToDeg(rad float64) float64 {
	return rad / math.Pi * 180
}
