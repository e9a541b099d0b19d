// Package pipeline provides the layout pipeline for pedigraph.
//
// This package implements the complete import → layout → render pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of two cached stages over an imported tree document:
//
//  1. Layout: Compute the orthogonal diagram for the tree
//  2. Render: Generate output artifacts (SVG, PNG, PDF, JSON)
//
// The layout engine itself is pure; all caching lives here, keyed by the
// content hash of the tree document and the options that affect output.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, tree, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout only
//	l, err := runner.ComputeLayout(ctx, tree, opts)
//
//	// Render an existing layout
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pedigraph/pedigraph/pkg/cache"
	"github.com/pedigraph/pedigraph/pkg/graph"
	"github.com/pedigraph/pedigraph/pkg/layout"
	"github.com/pedigraph/pedigraph/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultFormat is the artifact format rendered when none is requested.
const DefaultFormat = string(render.FormatSVG)

// DefaultScale is the PNG resolution multiplier.
const DefaultScale = 1.0

// ValidFormats is the set of layout artifact formats the pipeline renders.
// DOT export works on the tree document and bypasses the layout stage, so
// it is not listed here.
var ValidFormats = map[string]bool{
	string(render.FormatSVG):  true,
	string(render.FormatPNG):  true,
	string(render.FormatPDF):  true,
	string(render.FormatJSON): true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options; zero values fall back to the engine defaults.
	HorizontalSpacing    float64 `json:"horizontal_spacing,omitempty"`
	VerticalSpacing      float64 `json:"vertical_spacing,omitempty"`
	NodeWidth            float64 `json:"node_width,omitempty"`
	NodeHeight           float64 `json:"node_height,omitempty"`
	SpouseGap            float64 `json:"spouse_gap,omitempty"`
	ChildOrder           string  `json:"child_order,omitempty"`
	ShowGenerationLabels bool    `json:"show_generation_labels,omitempty"`

	// Render options
	Formats      []string `json:"formats,omitempty"`
	Scale        float64  `json:"scale,omitempty"`
	JunctionDots bool     `json:"junction_dots,omitempty"`
	RowLabels    bool     `json:"row_labels,omitempty"`

	// Refresh bypasses cached layouts and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// TreeHash is the content hash of the tree document.
	TreeHash string

	// Layout is the computed diagram.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PersonCount int
	NodeCount   int
	EdgeCount   int
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid for the pipeline.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutOptions converts the serialized options to engine options. The
// engine performs its own range validation.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		HorizontalSpacing:    o.HorizontalSpacing,
		VerticalSpacing:      o.VerticalSpacing,
		NodeWidth:            o.NodeWidth,
		NodeHeight:           o.NodeHeight,
		SpouseGap:            o.SpouseGap,
		ChildOrder:           layout.ChildOrder(o.ChildOrder),
		ShowGenerationLabels: o.ShowGenerationLabels,
	}
}

// RenderOptions converts the serialized options to renderer options.
func (o *Options) RenderOptions() render.Options {
	return render.Options{
		Scale:        o.Scale,
		JunctionDots: o.JunctionDots,
		RowLabels:    o.RowLabels,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		HorizontalSpacing:    o.HorizontalSpacing,
		VerticalSpacing:      o.VerticalSpacing,
		NodeWidth:            o.NodeWidth,
		NodeHeight:           o.NodeHeight,
		SpouseGap:            o.SpouseGap,
		ChildOrder:           o.ChildOrder,
		ShowGenerationLabels: o.ShowGenerationLabels,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Scale:  o.Scale,
	}
}
