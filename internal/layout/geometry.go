package layout

import (
	"codecouleurs/internal/canvas"
	"codecouleurs/internal/document"
)

// Vertical rhythm, in millimeters.
const (
	oneMoreLine      = 5.0
	firstAfterHeader = 48.0
	tabHeaderHeight  = 6.0
	firstRowOffset   = tabHeaderHeight + 1

	invoiceTabTop  = 100.0
	proposalTabTop = 105.0

	descLineHeight = 4.0
	bodyLineHeight = 3.5
)

// Colors of the template.
var (
	pink      = canvas.Hex("B5054D")
	lightGrey = canvas.Hex("DEE3E6")
	darkGrey  = canvas.Hex("81919A")
	greyWrite = canvas.Hex("6F7479")
	red       = canvas.Hex("C80000")
	black     = canvas.Black
	white     = canvas.White

	watermarkColor = canvas.Color{R: 255, G: 192, B: 203}
)

var (
	separatorStyle = canvas.LineStyle{Width: 0.15, Color: darkGrey, Dash: []float64{0.05, 1.4}}
	columnStyle    = canvas.LineStyle{Width: 0.2, Color: darkGrey}
	paymentsStyle  = canvas.LineStyle{Width: 0.2, Color: black}
)

// geometry holds the page dimensions and column positions of a render.
type geometry struct {
	width, height            float64
	left, top, right, bottom float64

	posxDesc     float64
	posxTVA      float64
	posxUP       float64
	posxQty      float64
	posxDiscount float64
	posTotalHT   float64

	tabTop        float64
	tabTopNewPage float64
	footerHeight  float64
}

func newGeometry(c *canvas.Document, kind document.Kind, repeatHead bool) geometry {
	w, h := c.PageSize()
	m := c.Margins()
	g := geometry{
		width: w, height: h,
		left: m.Left, top: m.Top, right: m.Right, bottom: m.Bottom,

		posxDesc:     m.Left + 1,
		posxTVA:      88,
		posxUP:       116,
		posxQty:      129,
		posxDiscount: 144,
		posTotalHT:   172,

		tabTop:        invoiceTabTop,
		tabTopNewPage: 10,
		footerHeight:  m.Bottom + 8,
	}
	if kind == document.Proposal {
		g.tabTop = proposalTabTop
	}
	if repeatHead {
		g.tabTopNewPage = 42
	}
	// US executive and other narrow formats.
	if g.narrow() {
		g.posxTVA -= 20
		g.posxUP -= 20
		g.posxQty -= 20
		g.posxDiscount -= 20
		g.posTotalHT -= 20
	}
	return g
}

func (g geometry) narrow() bool { return g.width < 210 }

// contentWidth is the width between the left and right margins.
func (g geometry) contentWidth() float64 { return g.width - g.left - g.right }

