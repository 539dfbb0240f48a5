package canvas

import (
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// LineStyle describes a stroke. A non-empty Dash draws a dashed line with
// round caps.
type LineStyle struct {
	Width float64
	Color Color
	Dash  []float64
}

// RectStyle describes how a rectangle is painted. A nil Stroke or Fill
// skips the border or the background.
type RectStyle struct {
	Width  float64
	Stroke *Color
	Fill   *Color
}

// Line draws a segment on the current page.
func (d *Document) Line(x1, y1, x2, y2 float64, s LineStyle) {
	d.record(lineOp{x1: x1, y1: y1, x2: x2, y2: y2, style: s})
}

// Rect draws a rectangle on the current page.
func (d *Document) Rect(x, y, w, h float64, s RectStyle) {
	d.record(rectOp{x: x, y: y, w: w, h: h, style: s})
}

// Image places a JPEG, PNG or GIF file on the current page. A zero width
// keeps the aspect ratio of the image for height h. It returns the width
// used, or an error when the file cannot be read.
//
// The image is registered with the PDF right away; an unreadable file
// leaves the document usable.
func (d *Document) Image(path string, x, y, w, h float64) (float64, error) {
	if err := d.pdf.Error(); err != nil {
		return 0, err
	}
	info := d.pdf.RegisterImageOptions(path, fpdf.ImageOptions{})
	if err := d.pdf.Error(); err != nil || info == nil {
		d.pdf.ClearError()
		if err == nil {
			err = errors.New("not registered")
		}
		return 0, fmt.Errorf("failed to load image %s: %w", path, err)
	}
	if info.Width() == 0 || info.Height() == 0 {
		return 0, fmt.Errorf("image %s is empty", path)
	}
	if w <= 0 {
		w = h * info.Width() / info.Height()
	}

	d.record(imageOp{path: path, x: x, y: y, w: w, h: h})
	return w, nil
}

// Watermark writes text diagonally across the current page.
func (d *Document) Watermark(text string, f Font, c Color) {
	if text == "" {
		return
	}
	d.record(watermarkOp{text: d.enc(text), font: f, color: c})
}
