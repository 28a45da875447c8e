package dimensions

import (
	"github.com/feLLpe04/Project3/internal/mortality"
)

// Dimensions holds the distinct years and causes of a dataset, in the order
// each value was first seen. Causes always starts with mortality.AllCauses.
type Dimensions struct {
	Years  []string `json:"years"`
	Causes []string `json:"causes"`
}

// Extract derives the year and cause dimensions from records without
// sorting or modifying them.
func Extract(records []mortality.Record) Dimensions {
	dims := Dimensions{
		Years:  make([]string, 0),
		Causes: []string{mortality.AllCauses},
	}

	seenYears := make(map[string]struct{})
	seenCauses := map[string]struct{}{mortality.AllCauses: {}}

	for _, r := range records {
		year := mortality.NormalizeYear(string(r.Year))
		if _, ok := seenYears[year]; !ok {
			seenYears[year] = struct{}{}
			dims.Years = append(dims.Years, year)
		}
		if _, ok := seenCauses[r.CauseName]; !ok {
			seenCauses[r.CauseName] = struct{}{}
			dims.Causes = append(dims.Causes, r.CauseName)
		}
	}

	return dims
}

// DefaultSelection is the view shown before any user interaction: the first
// year and all causes. It reports false when there are no years.
func (d Dimensions) DefaultSelection() (mortality.Selection, bool) {
	if len(d.Years) == 0 {
		return mortality.Selection{}, false
	}
	return mortality.Selection{Year: d.Years[0], Cause: mortality.AllCauses}, true
}

func (d Dimensions) HasYear(year string) bool {
	year = mortality.NormalizeYear(year)
	for _, y := range d.Years {
		if y == year {
			return true
		}
	}
	return false
}

func (d Dimensions) HasCause(cause string) bool {
	for _, c := range d.Causes {
		if c == cause {
			return true
		}
	}
	return false
}
