/*
Package proj provides a safe interface to the Cartographic Projections Library PROJ [cartography].

See: https://proj.org/

This package supports PROJ version 7 and above.

Each Proj owns its native transformation object and a dedicated thread
context; both are released together by Close, which may be called any
number of times. A single Proj serializes its native calls internally, but
libproj contexts are not reentrant: goroutines transforming in parallel
should each create their own Proj.

Transformations are created from a free-form proj-string (New), from a pair
of CRS identifiers such as "EPSG:4326" (NewKnownCRS), or from a structured
pipeline step list (NewPipeline). Search paths, grid download and grid
cache behaviour are configured through a Builder.
*/
package proj
