// Package chart renders small dark-theme line charts as PNG images.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// ErrNoData is returned for an empty series.
var ErrNoData = errors.New("chart: no data points")

var (
	background = color.NRGBA{0x00, 0x00, 0x00, 0xff}
	foreground = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	gridColor  = color.NRGBA{0x44, 0x44, 0x44, 0xff}
	lineColor  = color.NRGBA{0x00, 0xff, 0xff, 0xff}
)

const (
	marginLeft   = 90
	marginRight  = 24
	marginTop    = 40
	marginBottom = 64

	yTicks      = 5
	maxXLabels  = 8
	lineWidth   = 2.0
	markerSize  = 3.5
	dashOn      = 4
	dashOff     = 3
	labelHeight = 13
)

// Line describes one line chart.
type Line struct {
	Title  string
	XLabel string
	YLabel string
	// Labels name each point on the x axis; Values are the y values.
	Labels []string
	Values []float64
	Width  int
	Height int
}

// RenderPNG draws l and returns the encoded PNG.
func RenderPNG(l Line) ([]byte, error) {
	if len(l.Values) == 0 {
		return nil, ErrNoData
	}
	if len(l.Labels) != len(l.Values) {
		return nil, fmt.Errorf("chart: %d labels for %d values", len(l.Labels), len(l.Values))
	}
	if l.Width <= 0 {
		l.Width = 640
	}
	if l.Height <= 0 {
		l.Height = 480
	}

	img := imaging.New(l.Width, l.Height, background)
	plot := image.Rect(marginLeft, marginTop, l.Width-marginRight, l.Height-marginBottom)
	lo, hi := valueRange(l.Values)

	yPos := func(v float64) float32 {
		return float32(plot.Max.Y) - float32((v-lo)/(hi-lo))*float32(plot.Dy())
	}
	xPos := func(i int) float32 {
		if len(l.Values) == 1 {
			return float32(plot.Min.X + plot.Dx()/2)
		}
		return float32(plot.Min.X) + float32(i)*float32(plot.Dx())/float32(len(l.Values)-1)
	}

	// y grid and tick labels
	for t := 0; t <= yTicks; t++ {
		v := lo + (hi-lo)*float64(t)/yTicks
		y := int(math.Round(float64(yPos(v))))
		dashedHLine(img, plot.Min.X, plot.Max.X, y)
		label := formatTick(v, hi-lo)
		drawText(img, label, plot.Min.X-8-textWidth(label), y+4)
	}

	// x grid and thinned date labels
	step := max(1, (len(l.Labels)+maxXLabels-1)/maxXLabels)
	for i := 0; i < len(l.Labels); i += step {
		x := int(math.Round(float64(xPos(i))))
		dashedVLine(img, x, plot.Min.Y, plot.Max.Y)
		drawText(img, l.Labels[i], x-textWidth(l.Labels[i])/2, plot.Max.Y+18)
	}

	// axes
	draw.Draw(img, image.Rect(plot.Min.X, plot.Max.Y, plot.Max.X+1, plot.Max.Y+1), image.NewUniform(foreground), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(plot.Min.X, plot.Min.Y, plot.Min.X+1, plot.Max.Y+1), image.NewUniform(foreground), image.Point{}, draw.Src)

	src := image.NewUniform(lineColor)
	z := vector.NewRasterizer(l.Width, l.Height)
	for i := 1; i < len(l.Values); i++ {
		strokeSegment(z, xPos(i-1), yPos(l.Values[i-1]), xPos(i), yPos(l.Values[i]), lineWidth)
	}
	for i, v := range l.Values {
		disc(z, xPos(i), yPos(v), markerSize)
	}
	z.Draw(img, img.Bounds(), src, image.Point{})

	drawText(img, l.Title, (l.Width-textWidth(l.Title))/2, marginTop/2+5)
	drawText(img, l.XLabel, plot.Min.X+(plot.Dx()-textWidth(l.XLabel))/2, l.Height-14)
	if l.YLabel != "" {
		img = drawVerticalText(img, l.YLabel, 8, plot.Min.Y+(plot.Dy()-textWidth(l.YLabel))/2)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("chart: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// valueRange pads the data range by five percent on each side.
func valueRange(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = math.Max(math.Abs(hi)*0.02, 1e-6)
	}
	return lo - span*0.05, hi + span*0.05
}

func formatTick(v, span float64) string {
	prec := 2
	if span < 0.1 {
		prec = 4
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func dashedHLine(img draw.Image, x0, x1, y int) {
	for x := x0; x <= x1; x++ {
		if (x-x0)%(dashOn+dashOff) < dashOn {
			img.Set(x, y, gridColor)
		}
	}
}

func dashedVLine(img draw.Image, x, y0, y1 int) {
	for y := y0; y <= y1; y++ {
		if (y-y0)%(dashOn+dashOff) < dashOn {
			img.Set(x, y, gridColor)
		}
	}
}

// strokeSegment adds a filled quad of width w around the segment.
func strokeSegment(z *vector.Rasterizer, x0, y0, x1, y1, w float32) {
	dx, dy := x1-x0, y1-y0
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	nx, ny := -dy/length*w/2, dx/length*w/2
	z.MoveTo(x0+nx, y0+ny)
	z.LineTo(x1+nx, y1+ny)
	z.LineTo(x1-nx, y1-ny)
	z.LineTo(x0-nx, y0-ny)
	z.ClosePath()
}

// disc adds a 16-sided polygon approximating a circle. It winds the same way
// as strokeSegment so overlapping shapes do not cancel.
func disc(z *vector.Rasterizer, cx, cy, r float32) {
	const sides = 16
	for i := 0; i <= sides; i++ {
		a := -2 * math.Pi * float64(i) / sides
		x := cx + r*float32(math.Cos(a))
		y := cy + r*float32(math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

// drawText draws s with its baseline at y.
func drawText(img draw.Image, s string, x, y int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(foreground),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawVerticalText renders s rotated a quarter turn counter-clockwise with its
// top-left corner at (x, y).
func drawVerticalText(img *image.NRGBA, s string, x, y int) *image.NRGBA {
	label := imaging.New(textWidth(s), labelHeight+2, color.NRGBA{})
	drawText(label, s, 0, labelHeight-2)
	return imaging.Overlay(img, imaging.Rotate90(label), image.Pt(x, y), 1.0)
}
