package proj

import "errors"

// Coord is a coordinate tuple. For projections X and Y hold longitude and
// latitude in radians on the geodetic side and easting and northing on the
// projected side. For conversions between CRS identifiers the axis order of
// the official CRS definition applies, so EPSG:4326 expects latitude first.
type Coord struct {
	X, Y, Z float64
}

// Point is satisfied by any 2D point representation.
type Point interface {
	X() float64
	Y() float64
}

// Point3 is satisfied by point representations carrying an elevation.
type Point3 interface {
	Point
	Z() float64
}

// PointMaker constrains point types that can also construct themselves from
// a pair of ordinates, so transforms can hand back the caller's own type.
type PointMaker[P any] interface {
	Point
	FromXY(x, y float64) P
}

func coordOf(pt Point) Coord {
	c := Coord{X: pt.X(), Y: pt.Y()}
	if p3, ok := pt.(Point3); ok {
		c.Z = p3.Z()
	}
	return c
}

// ProjectPoint projects a caller-supplied point type, returning a new value
// of the same type.
func ProjectPoint[P PointMaker[P]](p *Proj, direction Direction, pt P) (P, error) {
	out, err := p.Project(direction, coordOf(pt))
	if err != nil {
		var zero P
		return zero, err
	}
	return pt.FromXY(out.X, out.Y), nil
}

// ConvertPoint converts a caller-supplied point type, returning a new value
// of the same type.
func ConvertPoint[P PointMaker[P]](p *Proj, pt P) (P, error) {
	out, err := p.Convert(coordOf(pt))
	if err != nil {
		var zero P
		return zero, err
	}
	return pt.FromXY(out.X, out.Y), nil
}

// ProjectArray projects pts in place, preserving order. On failure the
// returned ProjectionError names the first failing index and all elements
// before it have already been replaced by their projected values.
func ProjectArray[P PointMaker[P]](p *Proj, direction Direction, pts []P) error {
	for i := range pts {
		out, err := ProjectPoint(p, direction, pts[i])
		if err != nil {
			var projErr *ProjectionError
			if errors.As(err, &projErr) {
				projErr.Index = i
			}
			return err
		}
		pts[i] = out
	}
	return nil
}

// ConvertArray converts pts in place, preserving order. Failure semantics
// match ProjectArray, with a ConversionError naming the first failing index.
func ConvertArray[P PointMaker[P]](p *Proj, pts []P) error {
	for i := range pts {
		out, err := ConvertPoint(p, pts[i])
		if err != nil {
			var convErr *ConversionError
			if errors.As(err, &convErr) {
				convErr.Index = i
			}
			return err
		}
		pts[i] = out
	}
	return nil
}
