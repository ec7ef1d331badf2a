package svgpath

import (
	"io"
	"strings"

	"github.com/dirtybirdnj/gellyscape/text"
	"golang.org/x/net/html"
)

// Node builds the path element as an HTML node tree.
func (e PathElement) Node() *html.Node {
	return &html.Node{
		Type: html.ElementNode,
		Data: "path",
		Attr: []html.Attribute{
			{Key: "d", Val: e.D},
			{Key: "style", Val: e.Style},
		},
	}
}

// WriteMarkup writes a single <path> element.
func (e PathElement) WriteMarkup(w io.Writer) error {
	return html.Render(w, e.Node())
}

// Markup returns a single <path> element.
func (e PathElement) Markup() string {
	return render(e.Node())
}

// Node builds the text element as an HTML node tree.
func (e TextElement) Node() *html.Node {
	n := &html.Node{
		Type: html.ElementNode,
		Data: "text",
		Attr: []html.Attribute{
			{Key: "x", Val: formatNumber(e.X, e.Precision)},
			{Key: "y", Val: formatNumber(e.Y, e.Precision)},
			{Key: "font-size", Val: formatNumber(e.FontSize, e.Precision)},
			{Key: "fill", Val: string(e.Fill)},
		},
	}
	if e.Font != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "data-font", Val: strings.TrimPrefix(e.Font, "/")})
	}
	if e.Direction == text.RTL {
		n.Attr = append(n.Attr, html.Attribute{Key: "direction", Val: "rtl"})
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: e.Text})
	return n
}

// WriteMarkup writes a single <text> element.
func (e TextElement) WriteMarkup(w io.Writer) error {
	return html.Render(w, e.Node())
}

// Markup returns a single <text> element with escaped content.
func (e TextElement) Markup() string {
	return render(e.Node())
}

func render(n *html.Node) string {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return ""
	}
	return sb.String()
}
