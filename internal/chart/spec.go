package chart

import (
	"fmt"
	"strconv"

	"github.com/feLLpe04/Project3/internal/aggregate"
)

// Slice labels and colors, in the order the chart draws them.
var (
	Labels = [3]string{"Male", "Female", "Undefined"}
	Colors = [3]string{"red", "blue", "gray"}
)

const TypePie = "pie"

// Legend describes where the legend is drawn relative to the pie.
type Legend struct {
	Display  bool   `json:"display"`
	Position string `json:"position"`
}

// Spec is everything a surface needs to draw one pie chart.
type Spec struct {
	Type     string    `json:"type"`
	Labels   []string  `json:"labels"`
	Values   []float64 `json:"values"`
	Colors   []string  `json:"colors"`
	Legend   Legend    `json:"legend"`
	Tooltips []string  `json:"tooltips"`
	total    float64
}

// NewSpec builds the chart description for a set of totals.
func NewSpec(totals aggregate.Totals) Spec {
	values := totals.Values()
	spec := Spec{
		Type:   TypePie,
		Labels: append([]string(nil), Labels[:]...),
		Values: values[:],
		Colors: append([]string(nil), Colors[:]...),
		Legend: Legend{Display: true, Position: "top"},
		total:  totals.Sum(),
	}

	spec.Tooltips = make([]string, len(spec.Values))
	for i := range spec.Values {
		spec.Tooltips[i] = spec.TooltipLabel(i)
	}
	return spec
}

// Total is the sum of all slice values.
func (s Spec) Total() float64 {
	return s.total
}

// TooltipLabel formats the hover text for slice i as "<label>: <value> (<pct>%)".
func (s Spec) TooltipLabel(i int) string {
	if i < 0 || i >= len(s.Values) {
		return ""
	}
	return fmt.Sprintf("%s: %s (%s)", s.Labels[i], FormatValue(s.Values[i]), FormatPercentage(s.Values[i], s.total))
}

// FormatPercentage returns value's share of total with one decimal place and
// a percent sign. A zero total yields "0.0%".
func FormatPercentage(value, total float64) string {
	if total == 0 {
		return "0.0%"
	}
	return strconv.FormatFloat(value/total*100, 'f', 1, 64) + "%"
}

// FormatValue prints a death count the shortest exact way: 10, 10.5.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
