package rendering

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-loom/loom/pkg/graphics"
)

// TextLayout contains measured metrics for a laid-out string.
type TextLayout struct {
	Text    string
	Size    graphics.Size
	Ascent  float64
	Descent float64
	Face    font.Face
}

// TextFactory creates text layout objects. It is supplied by the platform
// window and handed to widgets through the layout, update, and event
// contexts; the core itself never shapes text.
type TextFactory interface {
	NewTextLayout(text string) *TextLayout
}

// FaceTextFactory measures text against a font.Face.
type FaceTextFactory struct {
	Face font.Face
}

// NewTextLayout measures the given string.
func (f *FaceTextFactory) NewTextLayout(text string) *TextLayout {
	face := f.Face
	if face == nil {
		face = basicfont.Face7x13
	}
	metrics := face.Metrics()
	ascent := fixedToFloat(metrics.Ascent)
	descent := fixedToFloat(metrics.Descent)
	width := fixedToFloat(font.MeasureString(face, text))
	return &TextLayout{
		Text:    text,
		Size:    graphics.Size{Width: width, Height: ascent + descent},
		Ascent:  ascent,
		Descent: descent,
		Face:    face,
	}
}

// BasicTextFactory returns a factory backed by the bundled fixed-size face.
// Hosts without a real font stack (and tests) use this.
func BasicTextFactory() *FaceTextFactory {
	return &FaceTextFactory{Face: basicfont.Face7x13}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
