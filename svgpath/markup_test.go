package svgpath

import (
	"strings"
	"testing"

	"github.com/dirtybirdnj/gellyscape/text"
)

func TestPathElement_Markup(t *testing.T) {
	el := PathElement{D: "M 0 0 L 1 1", Style: "fill:none;stroke:#000000;stroke-width:1"}
	want := `<path d="M 0 0 L 1 1" style="fill:none;stroke:#000000;stroke-width:1"></path>`
	if got := el.Markup(); got != want {
		t.Errorf("Markup() = %s, want %s", got, want)
	}

	var sb strings.Builder
	if err := el.WriteMarkup(&sb); err != nil {
		t.Fatalf("WriteMarkup() error = %v", err)
	}
	if sb.String() != want {
		t.Errorf("WriteMarkup() = %s", sb.String())
	}
}

func TestTextElement_Markup(t *testing.T) {
	tests := []struct {
		name string
		el   TextElement
		want string
	}{
		{
			"escaped",
			TextElement{X: 1.25, Y: 2, Text: `A<B & "C"`, Font: "/F1", FontSize: 12, Fill: "#000000", Precision: 3},
			`<text x="1.25" y="2" font-size="12" fill="#000000" data-font="F1">A&lt;B &amp; &#34;C&#34;</text>`,
		},
		{
			"rtl",
			TextElement{Text: "שלום", FontSize: 9.5, Fill: "#ff0000", Direction: text.RTL, Precision: 3},
			`<text x="0" y="0" font-size="9.5" fill="#ff0000" direction="rtl">שלום</text>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.el.Markup(); got != tt.want {
				t.Errorf("Markup() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}
