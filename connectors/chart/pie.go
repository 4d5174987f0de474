package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

type pieSlice struct {
	label string
	value float64 // fraction of the whole
	color color.Color
}

// pieChart implements plot.Plotter. gonum/plot has no pie plotter of its own.
type pieChart struct {
	slices []pieSlice
	start  float64 // radians, counter-clockwise from the positive x axis
}

func (pc *pieChart) Plot(c draw.Canvas, _ *plot.Plot) {
	center := vg.Point{
		X: (c.Min.X + c.Max.X) / 2,
		Y: (c.Min.Y + c.Max.Y) / 2,
	}
	radius := vg.Length(math.Min(float64(c.Max.X-c.Min.X), float64(c.Max.Y-c.Min.Y))) * 0.45

	angle := pc.start
	for _, s := range pc.slices {
		sweep := s.value * 2 * math.Pi
		var path vg.Path
		path.Move(center)
		path.Line(vg.Point{
			X: center.X + radius*vg.Length(math.Cos(angle)),
			Y: center.Y + radius*vg.Length(math.Sin(angle)),
		})
		path.Arc(center, radius, angle, sweep)
		path.Close()
		c.SetColor(s.color)
		c.Fill(path)
		angle += sweep
	}
}

// colorBox is a legend thumbnail filled with a single color.
type colorBox struct {
	color color.Color
}

func (b colorBox) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(b.color, c.ClipPolygonY(pts))
}
