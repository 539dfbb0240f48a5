package canvas

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Weight is the stroke weight of a font face.
type Weight int

const (
	Light Weight = iota
	Regular
	Medium
	Bold
)

// Font selects a face and a size in points.
type Font struct {
	Weight Weight
	Size   float64
}

// Color is an RGB color.
type Color struct {
	R, G, B int
}

// Hex parses a "RRGGBB" color. Malformed values yield black.
func Hex(s string) Color {
	var c Color
	fmt.Sscanf(strings.TrimPrefix(s, "#"), "%02x%02x%02x", &c.R, &c.G, &c.B)
	return c
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// Align is the horizontal alignment of a text box.
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

type face struct {
	family, style string
}

type fontSet struct {
	utf8  bool
	faces [4]face
}

func (fs fontSet) face(w Weight) face {
	if w < Light || w > Bold {
		w = Regular
	}
	return fs.faces[w]
}

var coreFaces = [4]face{
	Light:   {"Helvetica", ""},
	Regular: {"Helvetica", ""},
	Medium:  {"Helvetica", "B"},
	Bold:    {"Helvetica", "B"},
}

var ubuntuFiles = [4]string{
	Light:   "Ubuntu-L.ttf",
	Regular: "Ubuntu-R.ttf",
	Medium:  "Ubuntu-M.ttf",
	Bold:    "Ubuntu-B.ttf",
}

func loadFonts(pdf *fpdf.Fpdf, dir string) (fontSet, error) {
	if dir == "" {
		return fontSet{faces: coreFaces}, nil
	}

	fs := fontSet{utf8: true}
	for w, file := range ubuntuFiles {
		if _, err := os.Stat(filepath.Join(dir, file)); err != nil {
			return fontSet{}, fmt.Errorf("font %s: %w", file, err)
		}
		family := strings.TrimSuffix(strings.ToLower(file), ".ttf")
		pdf.AddUTF8Font(family, "", file)
		if pdf.Err() {
			return fontSet{}, fmt.Errorf("failed to load font %s: %w", file, pdf.Error())
		}
		fs.faces[w] = face{family: family}
	}
	return fs, nil
}

// use selects f on the underlying pdf for measuring or drawing.
func (d *Document) use(f Font) {
	fc := d.fonts.face(f.Weight)
	d.pdf.SetFont(fc.family, fc.style, f.Size)
}

// StringWidth returns the width of s written with f, in millimeters.
func (d *Document) StringWidth(s string, f Font) float64 {
	d.use(f)
	return d.pdf.GetStringWidth(d.enc(s))
}

// SplitText breaks s into the lines a box of width w holds with f. Line
// feeds in s are kept and an empty s yields no line.
func (d *Document) SplitText(s string, w float64, f Font) []string {
	if s == "" {
		return nil
	}
	d.use(f)
	if d.fonts.utf8 {
		return d.pdf.SplitText(s, w)
	}
	var lines []string
	for _, l := range d.pdf.SplitLines([]byte(d.enc(s)), w) {
		lines = append(lines, string(l))
	}
	return lines
}

// TextHeight returns the height s takes once wrapped to w.
func (d *Document) TextHeight(s string, w, lineHeight float64, f Font) float64 {
	return float64(len(d.SplitText(s, w, f))) * lineHeight
}

// TextBox is a block of wrapped text.
type TextBox struct {
	X, Y float64
	// W is the box width; zero extends the box to the right margin.
	W          float64
	LineHeight float64
	Text       string
	Font       Font
	Color      Color
	Align      Align
	// Fill paints the background of every line when set.
	Fill *Color
}

// WriteText writes a wrapped text box starting at (b.X, b.Y) and leaves the
// cursor below its last line. When automatic page break is enabled, lines
// that would cross the break margin continue on the next page at the top
// margin. It returns the number of lines written.
func (d *Document) WriteText(b TextBox) int {
	if d.page == 0 {
		d.AddPage()
	}
	if b.W <= 0 {
		b.W = d.width - d.margins.Right - b.X
	}
	if b.Align == "" {
		b.Align = AlignLeft
	}

	d.y = b.Y
	lines := d.SplitText(b.Text, b.W, b.Font)
	for _, l := range lines {
		if d.autoBreak && d.y+b.LineHeight > d.height-d.breakMargin {
			d.advance()
		}
		d.record(textOp{
			x: b.X, y: d.y, w: b.W, h: b.LineHeight,
			text:  l,
			font:  b.Font,
			color: b.Color,
			align: b.Align,
			fill:  b.Fill,
		})
		d.y += b.LineHeight
	}
	return len(lines)
}
