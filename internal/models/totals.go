package models

import (
	"github.com/feLLpe04/Project3/internal/aggregate"
	"github.com/feLLpe04/Project3/internal/chart"
	"github.com/feLLpe04/Project3/internal/mortality"
)

// DimensionsEntry lists the values offered by the two selectors.
type DimensionsEntry struct {
	Years        []string `json:"years"`
	Causes       []string `json:"causes"`
	DefaultYear  string   `json:"defaultYear"`
	DefaultCause string   `json:"defaultCause"`
}

// TotalsEntry is the aggregate and chart for one selection.
type TotalsEntry struct {
	Selection      mortality.Selection `json:"selection"`
	Totals         aggregate.Totals    `json:"totals"`
	MatchedRecords int                 `json:"matchedRecords"`
	Chart          chart.Spec          `json:"chart"`
}

func NewTotalsEntry(selection mortality.Selection, summary aggregate.Summary) TotalsEntry {
	return TotalsEntry{
		Selection:      selection,
		Totals:         summary.Totals,
		MatchedRecords: summary.MatchedRecords,
		Chart:          chart.NewSpec(summary.Totals),
	}
}
