package layout

import (
	"testing"

	"github.com/pedigraph/pedigraph/pkg/errors"
)

func TestOptions_Defaults(t *testing.T) {
	o, err := Options{}.normalized()
	if err != nil {
		t.Fatalf("normalized() error = %v", err)
	}
	if o.HorizontalSpacing != DefaultHorizontalSpacing {
		t.Errorf("HorizontalSpacing = %v, want %v", o.HorizontalSpacing, DefaultHorizontalSpacing)
	}
	if o.VerticalSpacing != DefaultVerticalSpacing {
		t.Errorf("VerticalSpacing = %v, want %v", o.VerticalSpacing, DefaultVerticalSpacing)
	}
	if o.NodeWidth != DefaultNodeWidth || o.NodeHeight != DefaultNodeHeight {
		t.Errorf("node size = %vx%v, want %vx%v", o.NodeWidth, o.NodeHeight, DefaultNodeWidth, DefaultNodeHeight)
	}
	if o.SpouseGap != DefaultSpouseGap {
		t.Errorf("SpouseGap = %v, want %v", o.SpouseGap, DefaultSpouseGap)
	}
	if o.ChildOrder != ChildOrderInput {
		t.Errorf("ChildOrder = %q, want %q", o.ChildOrder, ChildOrderInput)
	}
}

func TestOptions_ExplicitValuesKept(t *testing.T) {
	o, err := Options{
		HorizontalSpacing: 10,
		VerticalSpacing:   20,
		NodeWidth:         30,
		NodeHeight:        40,
		SpouseGap:         5,
		ChildOrder:        ChildOrderBirthDate,
	}.normalized()
	if err != nil {
		t.Fatalf("normalized() error = %v", err)
	}
	if o.HorizontalSpacing != 10 || o.VerticalSpacing != 20 ||
		o.NodeWidth != 30 || o.NodeHeight != 40 || o.SpouseGap != 5 {
		t.Errorf("explicit dimensions were overridden: %+v", o)
	}
	if o.ChildOrder != ChildOrderBirthDate {
		t.Errorf("ChildOrder = %q, want %q", o.ChildOrder, ChildOrderBirthDate)
	}
}

func TestOptions_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"NegativeHorizontalSpacing", Options{HorizontalSpacing: -1}},
		{"NegativeVerticalSpacing", Options{VerticalSpacing: -0.5}},
		{"NegativeNodeWidth", Options{NodeWidth: -120}},
		{"NegativeNodeHeight", Options{NodeHeight: -48}},
		{"NegativeSpouseGap", Options{SpouseGap: -16}},
		{"UnknownChildOrder", Options{ChildOrder: "alphabetical"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.normalized()
			if got := errors.GetCode(err); got != errors.ErrCodeInvalidOptions {
				t.Errorf("error code = %q, want %q", got, errors.ErrCodeInvalidOptions)
			}

			// The engine rejects options before touching the input.
			if _, err := Compute(nil, tt.opts); err == nil {
				t.Error("Compute() accepted invalid options")
			}
		})
	}
}

func TestOptions_RowY(t *testing.T) {
	o, _ := Options{NodeHeight: 50, VerticalSpacing: 30}.normalized()
	if got := o.rowY(0); got != 0 {
		t.Errorf("rowY(0) = %v, want 0", got)
	}
	if got := o.rowY(3); got != 240 {
		t.Errorf("rowY(3) = %v, want 240", got)
	}
}

func TestEdgeKind_String(t *testing.T) {
	tests := []struct {
		kind EdgeKind
		want string
	}{
		{EdgeSpouse, "spouse"},
		{EdgeParentChild, "parent-child"},
		{EdgeDistribution, "distribution"},
		{EdgeKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("EdgeKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
