package canvas

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestDocument(t *testing.T) *Document {
	t.Helper()
	d, err := New(Options{Margins: Margins{Left: 10, Top: 10, Right: 10, Bottom: 10}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return d
}

var body = Font{Weight: Regular, Size: 10}

func TestNewPageFormats(t *testing.T) {
	tests := []struct {
		format string
		width  float64
		height float64
	}{
		{"", 210, 297},
		{"A4", 210, 297},
		{"Letter", 215.9, 279.4},
		{"Executive", 184.15, 266.7},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			d, err := New(Options{Format: tt.format})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			w, h := d.PageSize()
			if diff := w - tt.width; diff > 0.1 || diff < -0.1 {
				t.Errorf("width = %v, want %v", w, tt.width)
			}
			if diff := h - tt.height; diff > 0.1 || diff < -0.1 {
				t.Errorf("height = %v, want %v", h, tt.height)
			}
		})
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(Options{Format: "B7"}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("New(B7) error = %v, want ErrUnknownFormat", err)
	}
	if _, err := New(Options{Format: "Custom"}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("New(Custom) without size error = %v, want ErrUnknownFormat", err)
	}
	if _, err := New(Options{FontDir: t.TempDir()}); err == nil {
		t.Error("New() with an empty font dir should fail")
	}
}

func TestHex(t *testing.T) {
	if got := Hex("B5054D"); got != (Color{181, 5, 77}) {
		t.Errorf("Hex(B5054D) = %v", got)
	}
	if got := Hex("#DEE3E6"); got != (Color{222, 227, 230}) {
		t.Errorf("Hex(#DEE3E6) = %v", got)
	}
}

func TestWriteTextWraps(t *testing.T) {
	d := newTestDocument(t)
	d.AddPage()

	text := strings.Repeat("lorem ipsum ", 40)
	n := d.WriteText(TextBox{X: 10, Y: 20, W: 50, LineHeight: 4, Text: text, Font: body})
	if n < 2 {
		t.Fatalf("WriteText() lines = %d, want wrapped text", n)
	}
	if got, want := d.Y(), 20+float64(n)*4; got != want {
		t.Errorf("Y() = %v, want %v", got, want)
	}
	if got := d.OpCount(1); got != n {
		t.Errorf("OpCount(1) = %d, want %d", got, n)
	}
	if got := d.TextHeight(text, 50, 4, body); got != float64(n)*4 {
		t.Errorf("TextHeight() = %v, want %v", got, float64(n)*4)
	}
}

func TestWriteTextKeepsLineFeeds(t *testing.T) {
	d := newTestDocument(t)
	if got := d.SplitText("one\ntwo\nthree", 100, body); len(got) != 3 {
		t.Errorf("SplitText() = %q, want 3 lines", got)
	}
	if got := d.SplitText("", 100, body); len(got) != 0 {
		t.Errorf("SplitText(\"\") = %q, want no line", got)
	}
}

func TestAutoPageBreakAppendsPage(t *testing.T) {
	d := newTestDocument(t)
	d.AddPage()
	d.SetTopMargin(40)
	d.SetAutoPageBreak(true, 20)

	d.WriteText(TextBox{X: 10, Y: 270, W: 100, LineHeight: 5, Text: "a\nb\nc", Font: body})

	if got := d.PageCount(); got != 2 {
		t.Fatalf("PageCount() = %d, want 2", got)
	}
	if got := d.Page(); got != 2 {
		t.Errorf("Page() = %d, want 2", got)
	}
	if got := d.Y(); got != 50 {
		t.Errorf("Y() = %v, want 50", got)
	}
}

func TestAutoPageBreakReusesNextPage(t *testing.T) {
	d := newTestDocument(t)
	d.AddPage()
	d.AddPage()
	d.SetPage(1)
	d.SetAutoPageBreak(true, 20)

	d.WriteText(TextBox{X: 10, Y: 275, W: 100, LineHeight: 5, Text: "a\nb", Font: body})

	if got := d.PageCount(); got != 2 {
		t.Errorf("PageCount() = %d, want 2", got)
	}
	if got := d.Page(); got != 2 {
		t.Errorf("Page() = %d, want 2", got)
	}
}

func TestRollbackRestoresState(t *testing.T) {
	d := newTestDocument(t)
	d.AddPage()
	d.WriteText(TextBox{X: 10, Y: 20, W: 100, LineHeight: 5, Text: "kept", Font: body})

	d.Begin()
	d.SetAutoPageBreak(true, 20)
	d.Line(10, 30, 200, 30, LineStyle{Width: 0.2})
	d.WriteText(TextBox{X: 10, Y: 270, W: 100, LineHeight: 5, Text: "a\nb\nc\nd", Font: body})
	if d.PageCount() != 2 {
		t.Fatalf("PageCount() in transaction = %d, want 2", d.PageCount())
	}
	d.Rollback()

	if got := d.PageCount(); got != 1 {
		t.Errorf("PageCount() = %d, want 1", got)
	}
	if got := d.Page(); got != 1 {
		t.Errorf("Page() = %d, want 1", got)
	}
	if got := d.Y(); got != 25 {
		t.Errorf("Y() = %v, want 25", got)
	}
	if got := d.OpCount(1); got != 1 {
		t.Errorf("OpCount(1) = %d, want 1", got)
	}
	if d.autoBreak {
		t.Error("auto page break should be restored")
	}
}

func TestNestedTransactions(t *testing.T) {
	d := newTestDocument(t)
	d.AddPage()

	d.Begin()
	d.Rect(10, 10, 20, 20, RectStyle{Fill: &White})
	d.Begin()
	d.Rect(10, 40, 20, 20, RectStyle{Fill: &White})
	d.Rollback()
	d.Commit()

	if got := d.OpCount(1); got != 1 {
		t.Errorf("OpCount(1) = %d, want 1", got)
	}

	// Unbalanced calls are ignored.
	d.Commit()
	d.Rollback()
	if got := d.OpCount(1); got != 1 {
		t.Errorf("OpCount(1) after unbalanced calls = %d, want 1", got)
	}
}

func TestImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")

	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	d := newTestDocument(t)
	d.AddPage()
	w, err := d.Image(path, 10, 10, 0, 22)
	if err != nil {
		t.Fatalf("Image() error = %v", err)
	}
	if w != 44 {
		t.Errorf("Image() width = %v, want 44", w)
	}

	if _, err := d.Image(filepath.Join(dir, "missing.png"), 10, 10, 0, 22); err == nil {
		t.Error("Image() on a missing file should fail")
	}

	corrupt := filepath.Join(dir, "corrupt.png")
	if err := os.WriteFile(corrupt, []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Image(corrupt, 10, 10, 0, 22); err == nil {
		t.Error("Image() on a corrupt file should fail")
	}
	if _, err := d.Image(path, 60, 10, 0, 11); err != nil {
		t.Errorf("Image() after a failed load error = %v", err)
	}

	var buf bytes.Buffer
	if err := d.Output(&buf); err != nil {
		t.Fatalf("Output() error = %v", err)
	}
}

func TestOutput(t *testing.T) {
	d := newTestDocument(t)
	d.AddPage()
	d.Watermark("Brouillon", Font{Weight: Bold, Size: 50}, Color{255, 192, 203})
	d.Rect(10, 10, 190, 6, RectStyle{Width: 0.2, Stroke: &Black, Fill: &White})
	d.Line(10, 30, 200, 30, LineStyle{Width: 0.15, Color: Black, Dash: []float64{0.05, 1.4}})
	d.WriteText(TextBox{X: 10, Y: 40, W: 100, LineHeight: 5, Text: "Désignation à 20 €", Font: body, Align: AlignRight})

	var buf bytes.Buffer
	if err := d.Output(&buf); err != nil {
		t.Fatalf("Output() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("Output() does not start with the PDF magic: %q", buf.Bytes()[:8])
	}

	if err := d.Output(&buf); !errors.Is(err, ErrAlreadyWritten) {
		t.Errorf("second Output() error = %v, want ErrAlreadyWritten", err)
	}
}
