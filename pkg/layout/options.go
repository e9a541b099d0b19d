package layout

import "github.com/pedigraph/pedigraph/pkg/errors"

// Default layout dimensions, in layout units.
const (
	// DefaultHorizontalSpacing is the minimum horizontal gap between sibling
	// subtrees in the same generation row.
	DefaultHorizontalSpacing = 40.0

	// DefaultVerticalSpacing is the vertical gap between generation rows.
	// Junctions sit at the midpoint of this gap.
	DefaultVerticalSpacing = 60.0

	// DefaultNodeWidth is the width of a person node box.
	DefaultNodeWidth = 120.0

	// DefaultNodeHeight is the height of a person node box and therefore of
	// each generation row.
	DefaultNodeHeight = 48.0

	// DefaultSpouseGap is the horizontal gap between spouses within one
	// couple block.
	DefaultSpouseGap = 16.0
)

// ChildOrder selects the tiebreak used to order children within a family
// unit when the input carries no explicit order.
type ChildOrder string

const (
	// ChildOrderInput orders children by their position in the input
	// sequence. This is the default.
	ChildOrderInput ChildOrder = "input"

	// ChildOrderBirthDate orders children by birth date where present;
	// children without a birth date keep their input order and sort last.
	ChildOrderBirthDate ChildOrder = "birthdate"
)

// Options configures one layout computation. All fields are optional; zero
// values are replaced by the documented defaults. The engine reads nothing
// but this struct - no ambient or global configuration.
type Options struct {
	// HorizontalSpacing is the minimum gap between sibling subtrees.
	// Default: DefaultHorizontalSpacing.
	HorizontalSpacing float64

	// VerticalSpacing is the gap between generation rows.
	// Default: DefaultVerticalSpacing.
	VerticalSpacing float64

	// NodeWidth and NodeHeight size every person node box.
	// Defaults: DefaultNodeWidth, DefaultNodeHeight.
	NodeWidth  float64
	NodeHeight float64

	// SpouseGap is the gap between spouses inside a couple block.
	// Default: DefaultSpouseGap.
	SpouseGap float64

	// ShowGenerationLabels controls the label-visibility flag emitted on
	// generation rows. Default: false.
	ShowGenerationLabels bool

	// ChildOrder selects the sibling ordering tiebreak.
	// Default: ChildOrderInput.
	ChildOrder ChildOrder
}

// normalized returns a copy with defaults applied, or a configuration error
// when a value is out of range. Options are validated before any graph work
// begins; a negative spacing never reaches the planner.
func (o Options) normalized() (Options, error) {
	if o.HorizontalSpacing < 0 {
		return Options{}, errors.New(errors.ErrCodeInvalidOptions, "horizontal spacing must not be negative: %v", o.HorizontalSpacing)
	}
	if o.VerticalSpacing < 0 {
		return Options{}, errors.New(errors.ErrCodeInvalidOptions, "vertical spacing must not be negative: %v", o.VerticalSpacing)
	}
	if o.NodeWidth < 0 {
		return Options{}, errors.New(errors.ErrCodeInvalidOptions, "node width must not be negative: %v", o.NodeWidth)
	}
	if o.NodeHeight < 0 {
		return Options{}, errors.New(errors.ErrCodeInvalidOptions, "node height must not be negative: %v", o.NodeHeight)
	}
	if o.SpouseGap < 0 {
		return Options{}, errors.New(errors.ErrCodeInvalidOptions, "spouse gap must not be negative: %v", o.SpouseGap)
	}

	if o.HorizontalSpacing == 0 {
		o.HorizontalSpacing = DefaultHorizontalSpacing
	}
	if o.VerticalSpacing == 0 {
		o.VerticalSpacing = DefaultVerticalSpacing
	}
	if o.NodeWidth == 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.NodeHeight == 0 {
		o.NodeHeight = DefaultNodeHeight
	}
	if o.SpouseGap == 0 {
		o.SpouseGap = DefaultSpouseGap
	}

	switch o.ChildOrder {
	case "":
		o.ChildOrder = ChildOrderInput
	case ChildOrderInput, ChildOrderBirthDate:
	default:
		return Options{}, errors.New(errors.ErrCodeInvalidOptions, "unknown child order: %q", o.ChildOrder)
	}

	return o, nil
}

// rowY returns the top y-coordinate of a generation row.
func (o Options) rowY(level int) float64 {
	return float64(level) * (o.NodeHeight + o.VerticalSpacing)
}
