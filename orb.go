package proj

import (
	"errors"

	"github.com/paulmach/orb"
)

// OrbPoint adapts orb.Point to the Point and PointMaker capabilities, so
// orb-based code can use the generic transform helpers.
type OrbPoint orb.Point

func (p OrbPoint) X() float64 { return p[0] }

func (p OrbPoint) Y() float64 { return p[1] }

func (p OrbPoint) FromXY(x, y float64) OrbPoint { return OrbPoint{x, y} }

// ProjectOrb projects a single orb point.
func (p *Proj) ProjectOrb(direction Direction, pt orb.Point) (orb.Point, error) {
	out, err := p.Project(direction, Coord{X: pt[0], Y: pt[1]})
	if err != nil {
		return orb.Point{}, err
	}
	return orb.Point{out.X, out.Y}, nil
}

// ConvertOrb converts a single orb point.
func (p *Proj) ConvertOrb(pt orb.Point) (orb.Point, error) {
	out, err := p.Convert(Coord{X: pt[0], Y: pt[1]})
	if err != nil {
		return orb.Point{}, err
	}
	return orb.Point{out.X, out.Y}, nil
}

// ConvertOrbSlice converts pts in place. orb.LineString, orb.Ring and
// orb.MultiPoint share this element type, so a plain conversion makes them
// usable here: ConvertOrbSlice([]orb.Point(lineString)). Failure semantics
// match ConvertSlice.
func (p *Proj) ConvertOrbSlice(pts []orb.Point) error {
	for i := range pts {
		out, err := p.Convert(Coord{X: pts[i][0], Y: pts[i][1]})
		if err != nil {
			var convErr *ConversionError
			if errors.As(err, &convErr) {
				convErr.Index = i
			}
			return err
		}
		pts[i] = orb.Point{out.X, out.Y}
	}
	return nil
}
