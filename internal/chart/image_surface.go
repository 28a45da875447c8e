package chart

import (
	"bytes"
	"errors"
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format selects the image encoding produced by an ImageSurface.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

var ErrUnknownFormat = errors.New("unknown chart format")

// ParseFormat accepts "svg", "png" and the file names "pie.svg", "pie.png".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "svg", "pie.svg":
		return FormatSVG, nil
	case "png", "pie.png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() gochart.RendererProvider {
	if f == FormatPNG {
		return gochart.PNG
	}
	return gochart.SVG
}

const (
	defaultWidth  = 480
	defaultHeight = 520
	legendHeight  = 44
	noDataLabel   = "No data"
)

var namedColors = map[string]drawing.Color{
	"red":  {R: 255, G: 0, B: 0, A: 255},
	"blue": {R: 0, G: 0, B: 255, A: 255},
	"gray": {R: 128, G: 128, B: 128, A: 255},
}

func colorFor(name string) drawing.Color {
	if c, ok := namedColors[name]; ok {
		return c
	}
	return namedColors["gray"]
}

// ImageSurface renders pie charts into an in-memory SVG or PNG image using
// go-chart. It is not safe for concurrent use.
type ImageSurface struct {
	name   string
	format Format
	width  int
	height int
	live   *ImageHandle
}

func NewImageSurface(name string, format Format) *ImageSurface {
	return &ImageSurface{
		name:   name,
		format: format,
		width:  defaultWidth,
		height: defaultHeight,
	}
}

func (s *ImageSurface) Name() string {
	return s.name
}

func (s *ImageSurface) Format() Format {
	return s.format
}

// Current returns the live chart, or nil once it has been destroyed.
func (s *ImageSurface) Current() *ImageHandle {
	return s.live
}

func (s *ImageSurface) Draw(spec Spec) (Handle, error) {
	if s.live != nil {
		return nil, ErrSurfaceInUse
	}
	if spec.Type != TypePie {
		return nil, fmt.Errorf("unsupported chart type %q", spec.Type)
	}

	pie := gochart.PieChart{
		Width:  s.width,
		Height: s.height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: legendHeight, Left: 8, Right: 8, Bottom: 8},
		},
		Values: pieValues(spec),
	}
	if spec.Legend.Display {
		pie.Elements = []gochart.Renderable{legendRenderable(spec)}
	}

	var buf bytes.Buffer
	if err := pie.Render(s.format.provider(), &buf); err != nil {
		return nil, fmt.Errorf("render %s pie: %w", s.format, err)
	}

	handle := &ImageHandle{surface: s, data: buf.Bytes(), contentType: s.format.ContentType()}
	s.live = handle
	return handle, nil
}

// pieValues converts a Spec into go-chart slices. go-chart skips zero
// slices, so an all-zero Spec is drawn as a single neutral disc.
func pieValues(spec Spec) []gochart.Value {
	if spec.Total() == 0 {
		return []gochart.Value{{
			Label: noDataLabel,
			Value: 1,
			Style: gochart.Style{FillColor: colorFor("gray"), StrokeColor: drawing.ColorWhite},
		}}
	}

	values := make([]gochart.Value, 0, len(spec.Values))
	for i, v := range spec.Values {
		values = append(values, gochart.Value{
			Label: fmt.Sprintf("%s %s", spec.Labels[i], FormatPercentage(v, spec.Total())),
			Value: v,
			Style: gochart.Style{
				FillColor:   colorFor(spec.Colors[i]),
				StrokeColor: drawing.ColorWhite,
				FontColor:   drawing.ColorWhite,
			},
		})
	}
	return values
}

// legendRenderable draws one swatch and label per slice in a row above the pie.
func legendRenderable(spec Spec) gochart.Renderable {
	return func(r gochart.Renderer, canvasBox gochart.Box, defaults gochart.Style) {
		const swatch = 14
		top := canvasBox.Top - legendHeight + (legendHeight-swatch)/2
		left := canvasBox.Left + 12

		r.SetFont(defaults.Font)
		r.SetFontSize(11)
		r.SetFontColor(drawing.ColorBlack)

		for i, label := range spec.Labels {
			x := left + i*(canvasBox.Width()/len(spec.Labels))
			r.SetFillColor(colorFor(spec.Colors[i]))
			r.SetStrokeColor(colorFor(spec.Colors[i]))
			r.SetStrokeWidth(1)
			r.MoveTo(x, top)
			r.LineTo(x+swatch, top)
			r.LineTo(x+swatch, top+swatch)
			r.LineTo(x, top+swatch)
			r.Close()
			r.FillStroke()
			r.Text(label, x+swatch+6, top+swatch-2)
		}
	}
}

// ImageHandle is one rendered chart image.
type ImageHandle struct {
	surface     *ImageSurface
	data        []byte
	contentType string
	destroyed   bool
}

func (h *ImageHandle) Bytes() []byte {
	return h.data
}

func (h *ImageHandle) ContentType() string {
	return h.contentType
}

func (h *ImageHandle) Destroyed() bool {
	return h.destroyed
}

// Destroy releases the image and frees the surface. It is idempotent.
func (h *ImageHandle) Destroy() error {
	if h.destroyed {
		return nil
	}
	h.destroyed = true
	h.data = nil
	if h.surface != nil && h.surface.live == h {
		h.surface.live = nil
	}
	return nil
}
