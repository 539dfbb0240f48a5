package canvas

import (
	"math"

	"github.com/go-pdf/fpdf"
)

// op is a recorded drawing operation.
type op interface {
	replay(d *Document)
}

type textOp struct {
	x, y, w, h float64
	text       string
	font       Font
	color      Color
	align      Align
	fill       *Color
}

func (o textOp) replay(d *Document) {
	d.use(o.font)
	d.pdf.SetTextColor(o.color.R, o.color.G, o.color.B)
	if o.fill != nil {
		d.pdf.SetFillColor(o.fill.R, o.fill.G, o.fill.B)
	}
	d.pdf.SetXY(o.x, o.y)
	d.pdf.CellFormat(o.w, o.h, o.text, "", 0, string(o.align), o.fill != nil, 0, "")
}

type lineOp struct {
	x1, y1, x2, y2 float64
	style          LineStyle
}

func (o lineOp) replay(d *Document) {
	s := o.style
	d.pdf.SetLineWidth(s.Width)
	d.pdf.SetDrawColor(s.Color.R, s.Color.G, s.Color.B)
	if len(s.Dash) > 0 {
		d.pdf.SetDashPattern(s.Dash, 0)
		d.pdf.SetLineCapStyle("round")
	}
	d.pdf.Line(o.x1, o.y1, o.x2, o.y2)
	if len(s.Dash) > 0 {
		d.pdf.SetDashPattern([]float64{}, 0)
		d.pdf.SetLineCapStyle("butt")
	}
}

type rectOp struct {
	x, y, w, h float64
	style      RectStyle
}

func (o rectOp) replay(d *Document) {
	s := o.style
	mode := ""
	if s.Stroke != nil {
		d.pdf.SetLineWidth(s.Width)
		d.pdf.SetDrawColor(s.Stroke.R, s.Stroke.G, s.Stroke.B)
		mode += "D"
	}
	if s.Fill != nil {
		d.pdf.SetFillColor(s.Fill.R, s.Fill.G, s.Fill.B)
		mode = "F" + mode
	}
	if mode == "" {
		return
	}
	d.pdf.Rect(o.x, o.y, o.w, o.h, mode)
}

// imageOp refers to an image registered by Image.
type imageOp struct {
	path       string
	x, y, w, h float64
}

func (o imageOp) replay(d *Document) {
	d.pdf.ImageOptions(o.path, o.x, o.y, o.w, o.h, false, fpdf.ImageOptions{}, 0, "")
}

type watermarkOp struct {
	text  string
	font  Font
	color Color
}

// replay writes the text centered on the page along its diagonal.
func (o watermarkOp) replay(d *Document) {
	d.use(o.font)
	d.pdf.SetTextColor(o.color.R, o.color.G, o.color.B)

	cx, cy := d.width/2, d.height/2
	angle := math.Atan2(d.height, d.width) * 180 / math.Pi
	w := d.pdf.GetStringWidth(o.text)

	d.pdf.TransformBegin()
	d.pdf.TransformRotate(angle, cx, cy)
	d.pdf.Text(cx-w/2, cy, o.text)
	d.pdf.TransformEnd()
}
