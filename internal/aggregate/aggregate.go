package aggregate

import (
	"github.com/feLLpe04/Project3/internal/mortality"
)

// Totals is the per-sex death count for one selection.
type Totals struct {
	Male      float64 `json:"male"`
	Female    float64 `json:"female"`
	Undefined float64 `json:"undefined"`
}

// Values returns the buckets in chart order: Male, Female, Undefined.
func (t Totals) Values() [3]float64 {
	return [3]float64{t.Male, t.Female, t.Undefined}
}

func (t Totals) Sum() float64 {
	return t.Male + t.Female + t.Undefined
}

// Summary describes how a Compute call consumed the dataset.
type Summary struct {
	Totals         Totals  `json:"totals"`
	MatchedRecords int     `json:"matchedRecords"`
	DroppedDeaths  float64 `json:"droppedDeaths"`
}

// Compute filters records by selection and sums Total_deaths by sex.
func Compute(records []mortality.Record, selection mortality.Selection) Totals {
	return Summarize(records, selection).Totals
}

// Summarize is Compute plus bookkeeping. Rows whose Sex is not Male, Female
// or "" match the selection but land in no bucket; their deaths are counted
// in DroppedDeaths.
func Summarize(records []mortality.Record, selection mortality.Selection) Summary {
	var summary Summary
	m := newMatcher(selection)

	for _, r := range records {
		if !m.matches(r) {
			continue
		}
		summary.MatchedRecords++

		switch r.Sex {
		case mortality.SexMale:
			summary.Totals.Male += r.TotalDeaths
		case mortality.SexFemale:
			summary.Totals.Female += r.TotalDeaths
		case mortality.SexUndefined:
			summary.Totals.Undefined += r.TotalDeaths
		default:
			summary.DroppedDeaths += r.TotalDeaths
		}
	}

	return summary
}

// Filter returns the records matching selection, in dataset order.
func Filter(records []mortality.Record, selection mortality.Selection) []mortality.Record {
	m := newMatcher(selection)
	matched := make([]mortality.Record, 0)
	for _, r := range records {
		if m.matches(r) {
			matched = append(matched, r)
		}
	}
	return matched
}

// matcher is Selection.Matches with the selected year normalized once.
type matcher struct {
	year     string
	cause    string
	anyCause bool
}

func newMatcher(s mortality.Selection) matcher {
	return matcher{
		year:     mortality.NormalizeYear(s.Year),
		cause:    s.Cause,
		anyCause: s.Cause == mortality.AllCauses,
	}
}

func (m matcher) matches(r mortality.Record) bool {
	if mortality.NormalizeYear(string(r.Year)) != m.year {
		return false
	}
	return m.anyCause || r.CauseName == m.cause
}
