package proj_test

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gophergeo/proj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderNegativeCacheSize(t *testing.T) {
	p, err := proj.NewBuilder().GridCache(true, -1).FromDefinition(mercDef)
	require.Error(t, err)
	assert.Nil(t, p)
	var cfgErr *proj.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "grid cache", cfgErr.Setting)
}

func TestBuilderEndpointValidation(t *testing.T) {
	var cfgErr *proj.ConfigurationError
	for _, endpoint := range []string{"not a url", "ftp://cdn.proj.org", "/relative/only"} {
		p, err := proj.NewBuilder().EndpointURL(endpoint).FromDefinition(mercDef)
		require.Error(t, err, "endpoint %q", endpoint)
		assert.Nil(t, p)
		assert.ErrorAs(t, err, &cfgErr)
	}

	p, err := proj.NewBuilder().EndpointURL("https://cdn.proj.org").FromDefinition(mercDef)
	require.NoError(t, err)
	p.Close()
}

func TestBuilderSearchPaths(t *testing.T) {
	p, err := proj.NewBuilder().SearchPaths("").FromDefinition(mercDef)
	require.Error(t, err)
	assert.Nil(t, p)

	p, err = proj.NewBuilder().SearchPaths(t.TempDir()).FromDefinition(mercDef)
	require.NoError(t, err)
	defer p.Close()
	assert.Error(t, p.SetSearchPaths(""))
	assert.NoError(t, p.SetSearchPaths(t.TempDir()))
}

func TestBuilderNetworkToggle(t *testing.T) {
	p, err := proj.NewBuilder().EnableNetwork(false).GridCache(true, 64<<20).FromDefinition(mercDef)
	require.NoError(t, err)
	defer p.Close()
	assert.False(t, p.NetworkEnabled())

	// enabling may fail when libproj is built without network support;
	// either way the reported state must match
	if err := p.SetNetworkEnabled(true); err != nil {
		var cfgErr *proj.ConfigurationError
		assert.ErrorAs(t, err, &cfgErr)
		assert.False(t, p.NetworkEnabled())
	} else {
		assert.True(t, p.NetworkEnabled())
		require.NoError(t, p.SetNetworkEnabled(false))
		assert.False(t, p.NetworkEnabled())
	}
}

func TestBuilderGridCacheReconfiguration(t *testing.T) {
	p, err := proj.New(mercDef)
	require.NoError(t, err)
	defer p.Close()

	assert.NoError(t, p.SetGridCache(true, 300<<20))
	assert.NoError(t, p.SetGridCache(false, 0))
	// a bound larger than C int mebibytes is clamped, not truncated
	assert.NoError(t, p.SetGridCache(true, math.MaxInt64))
	err = p.SetGridCache(true, -300)
	var cfgErr *proj.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestBuilderEndpointReconfiguration(t *testing.T) {
	p, err := proj.New(mercDef)
	require.NoError(t, err)
	defer p.Close()

	assert.NoError(t, p.SetEndpointURL("https://grids.example.com"))
	var cfgErr *proj.ConfigurationError
	assert.ErrorAs(t, p.SetEndpointURL("::::"), &cfgErr)
}

func TestBuilderAreaOfUse(t *testing.T) {
	// Southern California, the area EPSG:2230 is defined for
	b := proj.NewBuilder().AreaOfUse(proj.Area{West: -118.0, South: 32.0, East: -115.0, North: 34.5})
	p, err := b.FromKnownCRS("EPSG:2230", "EPSG:26946")
	require.NoError(t, err)
	defer p.Close()

	got, err := p.Convert(proj.Coord{X: 4760096.421921, Y: 3744293.729449})
	require.NoError(t, err)
	assert.InDelta(t, 1450880.291, got.X, 1e-3)
	assert.InDelta(t, 1141263.011, got.Y, 1e-3)

	// widening the area afterwards must not disturb subsequent calls
	p.SetAreaOfUse(proj.Area{West: -125.0, South: 30.0, East: -110.0, North: 40.0})
	got, err = p.Convert(proj.Coord{X: 4760096.421921, Y: 3744293.729449})
	require.NoError(t, err)
	assert.InDelta(t, 1450880.291, got.X, 1e-3)
}

func TestSetAreaOfUseAfterKnownCRS(t *testing.T) {
	// the mutator must work on handles built without a configured area
	p, err := proj.NewKnownCRS("EPSG:2230", "EPSG:26946")
	require.NoError(t, err)
	defer p.Close()

	p.SetAreaOfUse(proj.Area{West: -118.0, South: 32.0, East: -115.0, North: 34.5})
	got, err := p.Convert(proj.Coord{X: 4760096.421921, Y: 3744293.729449})
	require.NoError(t, err)
	assert.InDelta(t, 1450880.291, got.X, 1e-3)
	assert.InDelta(t, 1141263.011, got.Y, 1e-3)
}

func TestBuilderLogger(t *testing.T) {
	logger := log.New(io.Discard)
	p, err := proj.NewBuilder().Logger(logger).FromDefinition(mercDef)
	require.NoError(t, err)
	defer p.Close()

	_, err = p.Project(proj.Forward, proj.Coord{X: proj.DegToRad(-16), Y: proj.DegToRad(20.25)})
	assert.NoError(t, err)
}

func TestBuilderPipelineMatchesRawDefinition(t *testing.T) {
	raw, err := proj.New(`
+proj=pipeline
+step +proj=unitconvert +xy_in=deg +xy_out=rad
+step +inv +proj=latlong +datum=WGS84
+step +proj=merc +ellps=clrk66 +lat_ts=33
`)
	require.NoError(t, err)
	defer raw.Close()

	built, err := proj.NewPipeline(
		proj.Step{Definition: "+proj=unitconvert +xy_in=deg +xy_out=rad"},
		proj.Step{Inverse: true, Definition: "+proj=latlong +datum=WGS84"},
		proj.Step{Definition: "+proj=merc +ellps=clrk66 +lat_ts=33"},
	)
	require.NoError(t, err)
	defer built.Close()

	in := proj.Coord{X: -16, Y: 20.25}
	want, err := raw.Convert(in)
	require.NoError(t, err)
	got, err := built.Convert(in)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.InDelta(t, -1495284.21, got.X, 0.01)
	assert.InDelta(t, 1920596.79, got.Y, 0.01)
}

func TestBuilderEmptyPipeline(t *testing.T) {
	p, err := proj.NewPipeline()
	require.Error(t, err)
	assert.Nil(t, p)
	var defErr *proj.DefinitionError
	assert.ErrorAs(t, err, &defErr)

	_, err = proj.NewPipeline(proj.Step{Definition: "   "})
	assert.ErrorAs(t, err, &defErr)
}
