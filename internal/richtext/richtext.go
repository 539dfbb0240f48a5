// Package richtext turns the light HTML found in line descriptions and notes
// into plain text with explicit line breaks.
package richtext

import (
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	tagRegex   = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
	spaceRegex = regexp.MustCompile(`[ \t\r\n\f]+`)
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// IsHTML reports whether s carries at least one tag.
func IsHTML(s string) bool {
	return tagRegex.MatchString(s)
}

// Plain converts s to plain text. Text without tags keeps its own line
// breaks and only has entities decoded; in HTML, whitespace collapses and
// block elements and <br> produce the line breaks.
func Plain(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if !IsHTML(s) {
		return strings.TrimSpace(html.UnescapeString(s))
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				b.WriteString(string(z.Raw()))
			}
			return tidy(b.String())
		case html.TextToken:
			b.WriteString(spaceRegex.ReplaceAllString(string(z.Text()), " "))
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Br:
				b.WriteString("\n")
			case atom.Li:
				newLine(&b)
				b.WriteString("- ")
			case atom.P, atom.Div, atom.Ul, atom.Ol, atom.Table, atom.Tr, atom.H1, atom.H2, atom.H3, atom.H4:
				newLine(&b)
			case atom.Td, atom.Th:
				b.WriteString(" ")
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.P, atom.Div, atom.Li, atom.Ul, atom.Ol, atom.Table, atom.Tr, atom.H1, atom.H2, atom.H3, atom.H4:
				newLine(&b)
			}
		}
	}
}

// newLine ends the current line unless the builder already sits at the
// start of one.
func newLine(b *strings.Builder) {
	s := b.String()
	if s == "" || strings.HasSuffix(s, "\n") {
		return
	}
	b.WriteString("\n")
}

func tidy(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	s = strings.Join(lines, "\n")
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// SplitTitle returns the first line of a description and what follows it.
// Descriptions are drawn as a title line followed by a lighter body.
func SplitTitle(desc string) (title, body string) {
	desc = Plain(desc)
	title, body, _ = strings.Cut(desc, "\n")
	return strings.TrimSpace(title), strings.TrimSpace(body)
}
