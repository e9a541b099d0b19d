package render

import (
	"fmt"

	"github.com/pedigraph/pedigraph/pkg/graph"
)

// Format identifies an output artifact format.
type Format string

// Supported artifact formats.
const (
	FormatSVG  Format = "svg"
	FormatJSON Format = "json"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatDOT  Format = "dot"
)

// ParseFormat validates a format string from a flag or API parameter.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatSVG, FormatJSON, FormatPNG, FormatPDF, FormatDOT:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (svg, json, png, pdf, dot)", s)
	}
}

// Options configures artifact rendering.
type Options struct {
	// Scale multiplies PNG resolution. 2.0 suits high-DPI displays.
	// Ignored for other formats. Default: 1.0.
	Scale float64

	// JunctionDots draws a small dot at every junction in SVG output.
	JunctionDots bool

	// RowLabels draws generation labels on the left edge of each row,
	// overriding the layout's per-row visibility flag.
	RowLabels bool
}

// Artifact renders a layout document into the requested format. PNG and PDF
// are derived from the SVG rendering and require rsvg-convert on PATH.
//
// FormatDOT is not a layout format - DOT export works on the tree document,
// see [ToDOT] - so requesting it here is an error.
func Artifact(l graph.Layout, format Format, opts Options) ([]byte, error) {
	if opts.Scale == 0 {
		opts.Scale = 1.0
	}

	switch format {
	case FormatJSON:
		return graph.MarshalLayout(l)
	case FormatSVG:
		return RenderSVG(l, svgOptions(opts)...), nil
	case FormatPNG:
		return ToPNG(RenderSVG(l, svgOptions(opts)...), opts.Scale)
	case FormatPDF:
		return ToPDF(RenderSVG(l, svgOptions(opts)...))
	case FormatDOT:
		return nil, fmt.Errorf("dot export operates on the tree document, not the layout")
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func svgOptions(opts Options) []SVGOption {
	var svgOpts []SVGOption
	if opts.JunctionDots {
		svgOpts = append(svgOpts, WithJunctionDots())
	}
	if opts.RowLabels {
		svgOpts = append(svgOpts, WithRowLabels())
	}
	return svgOpts
}
