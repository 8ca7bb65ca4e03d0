package proj

import (
	"net/url"

	"github.com/charmbracelet/log"
)

// Area is the bounding box of an area of use, in degrees.
//
// In the case of an area of use crossing the antimeridian (longitude +/-
// 180 degrees), West must be greater than East.
type Area struct {
	West, South, East, North float64
}

// Builder accumulates resource and network configuration before producing a
// transformation. The zero Builder leaves libproj's defaults untouched.
type Builder struct {
	searchPaths   []string
	networkOn     bool
	networkSet    bool
	endpoint      string
	cacheOn       bool
	cacheSet      bool
	cacheMaxBytes int64
	area          *Area
	logger        *log.Logger
}

func NewBuilder() *Builder {
	return &Builder{}
}

// SearchPaths sets additional directories libproj scans for resource files
// such as datum-shift grids.
func (b *Builder) SearchPaths(paths ...string) *Builder {
	b.searchPaths = append([]string(nil), paths...)
	return b
}

// EnableNetwork toggles on-demand grid download.
func (b *Builder) EnableNetwork(enabled bool) *Builder {
	b.networkOn = enabled
	b.networkSet = true
	return b
}

// EndpointURL overrides the CDN endpoint grids are fetched from.
func (b *Builder) EndpointURL(endpoint string) *Builder {
	b.endpoint = endpoint
	return b
}

// GridCache toggles the local grid cache. maxBytes bounds its size and is
// rounded up to whole mebibytes; 0 keeps libproj's default bound.
func (b *Builder) GridCache(enabled bool, maxBytes int64) *Builder {
	b.cacheOn = enabled
	b.cacheMaxBytes = maxBytes
	b.cacheSet = true
	return b
}

// AreaOfUse narrows the choice of coordinate operations for the known-CRS
// factory path. It has no effect on the other factory paths.
func (b *Builder) AreaOfUse(area Area) *Builder {
	b.area = &area
	return b
}

// Logger routes libproj's internal diagnostics to the given logger. By
// default they are discarded.
func (b *Builder) Logger(logger *log.Logger) *Builder {
	b.logger = logger
	return b
}

// newContext validates the accumulated configuration and applies it to a
// fresh thread context, so the factory call itself already sees it.
func (b *Builder) newContext() (*threadContext, error) {
	if b.cacheSet && b.cacheMaxBytes < 0 {
		return nil, &ConfigurationError{Setting: "grid cache", Message: "maximum size is negative"}
	}
	if b.endpoint != "" {
		if err := validateEndpoint(b.endpoint); err != nil {
			return nil, err
		}
	}
	for _, path := range b.searchPaths {
		if path == "" {
			return nil, &ConfigurationError{Setting: "search path", Message: "empty path"}
		}
	}

	tc, err := newThreadContext()
	if err != nil {
		return nil, err
	}
	tc.setLogger(b.logger)
	tc.setSearchPaths(b.searchPaths)
	if b.networkSet {
		if err := tc.setNetworkEnabled(b.networkOn); err != nil {
			tc.close()
			return nil, err
		}
	}
	if b.endpoint != "" {
		tc.setEndpointURL(b.endpoint)
	}
	if b.cacheSet {
		tc.setCache(b.cacheOn, b.cacheMaxBytes)
	}
	return tc, nil
}

// FromDefinition produces a transformation from a free-form proj-string.
func (b *Builder) FromDefinition(definition string) (*Proj, error) {
	tc, err := b.newContext()
	if err != nil {
		return nil, err
	}
	p, err := createFromDefinition(tc, definition)
	if err != nil {
		tc.close()
		return nil, err
	}
	return p, nil
}

// FromKnownCRS produces a pipeline between two coordinate reference systems
// named by "AUTHORITY:CODE" identifiers, e.g. "EPSG:4326". Coordinates
// passed to Convert must follow the axis order of the official CRS
// definitions, so geographic CRS input is (latitude, longitude).
func (b *Builder) FromKnownCRS(source, target string) (*Proj, error) {
	tc, err := b.newContext()
	if err != nil {
		return nil, err
	}
	p, err := createFromKnownCRS(tc, source, target, b.area)
	if err != nil {
		tc.close()
		return nil, err
	}
	return p, nil
}

// FromPipeline assembles a +proj=pipeline definition from steps and
// delegates to FromDefinition.
func (b *Builder) FromPipeline(steps ...Step) (*Proj, error) {
	definition, err := pipelineDefinition(steps)
	if err != nil {
		return nil, err
	}
	return b.FromDefinition(definition)
}

func validateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ConfigurationError{Setting: "endpoint", Message: "endpoint must be an absolute http(s) URL"}
	}
	return nil
}
