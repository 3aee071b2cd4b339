package render

import (
	"errors"
	"image/color"
	"io"

	"github.com/soypat/isosurf"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"
)

// SVGOptions configures WriteSVG.
type SVGOptions struct {
	// Width and Height of the image. Zero values default to 12cm.
	Width, Height vg.Length
	// Bounds is the plotted region. The contour bounds are used when empty.
	Bounds r2.Box
	// CellSize draws the sampling grid over Bounds when positive.
	CellSize float64
	// Field, if set, marks every grid corner as a filled dot when solid and
	// a ring when empty. Requires CellSize.
	Field isosurf.Field2
	// Palette colors segments by Prop. Segments are black if empty.
	Palette []color.Color
}

var (
	gridColor  = color.Gray{Y: 0xc0}
	solidColor = color.Black
	emptyColor = color.Gray{Y: 0x80}
)

// WriteSVG plots the contour c as an SVG image.
func WriteSVG(w io.Writer, c Contour, opts SVGOptions) error {
	bounds := opts.Bounds
	if bounds.Empty() {
		bounds = c.Bounds()
	}
	if bounds.Empty() {
		return errors.New("empty plot bounds")
	}
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 12 * vg.Centimeter
	}
	if height <= 0 {
		height = 12 * vg.Centimeter
	}

	p := plot.New()
	p.HideAxes()
	if opts.CellSize > 0 {
		grid, err := isosurf.NewGrid2(bounds, opts.CellSize)
		if err != nil {
			return err
		}
		if err := addGrid(p, grid); err != nil {
			return err
		}
		if opts.Field != nil {
			if err := addCorners(p, grid, opts.Field); err != nil {
				return err
			}
		}
	}
	for _, s := range c {
		l, err := plotter.NewLine(plotter.XYs{{X: s.V[0].X, Y: s.V[0].Y}, {X: s.V[1].X, Y: s.V[1].Y}})
		if err != nil {
			return err
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = color.Black
		if len(opts.Palette) > 0 {
			l.LineStyle.Color = opts.Palette[mod(s.Prop, len(opts.Palette))]
		}
		p.Add(l)
	}
	p.X.Min, p.X.Max = bounds.Min.X, bounds.Max.X
	p.Y.Min, p.Y.Max = bounds.Min.Y, bounds.Max.Y

	canvas := vgsvg.New(width, height)
	p.Draw(draw.New(canvas))
	_, err := canvas.WriteTo(w)
	return err
}

func addGrid(p *plot.Plot, g isosurf.Grid2) error {
	top := g.Corner(g.Cells)
	for i := 0; i <= g.Cells[0]; i++ {
		x := g.Corner(isosurf.V2i{i, 0}).X
		if err := addGridLine(p, plotter.XYs{{X: x, Y: g.Origin.Y}, {X: x, Y: top.Y}}); err != nil {
			return err
		}
	}
	for j := 0; j <= g.Cells[1]; j++ {
		y := g.Corner(isosurf.V2i{0, j}).Y
		if err := addGridLine(p, plotter.XYs{{X: g.Origin.X, Y: y}, {X: top.X, Y: y}}); err != nil {
			return err
		}
	}
	return nil
}

func addGridLine(p *plot.Plot, xys plotter.XYs) error {
	l, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	l.LineStyle.Width = vg.Points(0.5)
	l.LineStyle.Color = gridColor
	p.Add(l)
	return nil
}

func addCorners(p *plot.Plot, g isosurf.Grid2, f isosurf.Field2) error {
	var solid, empty plotter.XYs
	for i := 0; i <= g.Cells[0]; i++ {
		for j := 0; j <= g.Cells[1]; j++ {
			v := g.Corner(isosurf.V2i{i, j})
			if f.Evaluate(v) > 0 {
				solid = append(solid, plotter.XY{X: v.X, Y: v.Y})
			} else {
				empty = append(empty, plotter.XY{X: v.X, Y: v.Y})
			}
		}
	}
	for _, set := range []struct {
		xys   plotter.XYs
		shape draw.GlyphDrawer
		color color.Color
	}{
		{xys: solid, shape: draw.CircleGlyph{}, color: solidColor},
		{xys: empty, shape: draw.RingGlyph{}, color: emptyColor},
	} {
		if len(set.xys) == 0 {
			continue
		}
		s, err := plotter.NewScatter(set.xys)
		if err != nil {
			return err
		}
		s.GlyphStyle = draw.GlyphStyle{Color: set.color, Radius: vg.Points(2), Shape: set.shape}
		p.Add(s)
	}
	return nil
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
