package dimensions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feLLpe04/Project3/internal/mortality"
)

func TestExtract(t *testing.T) {
	records := []mortality.Record{
		{Year: "2021", CauseName: "Flu"},
		{Year: "2020", CauseName: "Heart disease"},
		{Year: "2021", CauseName: "Flu"},
		{Year: "2020.0", CauseName: "Cancer"},
		{Year: "2019", CauseName: ""},
	}

	dims := Extract(records)

	assert.Equal(t, []string{"2021", "2020", "2019"}, dims.Years, "first-seen order, deduplicated")
	assert.Equal(t, []string{mortality.AllCauses, "Flu", "Heart disease", "Cancer", ""}, dims.Causes)
}

func TestExtractDoesNotDuplicateSentinel(t *testing.T) {
	dims := Extract([]mortality.Record{{Year: "2020", CauseName: mortality.AllCauses}})
	assert.Equal(t, []string{mortality.AllCauses}, dims.Causes)
}

func TestExtractEmpty(t *testing.T) {
	dims := Extract(nil)

	assert.NotNil(t, dims.Years)
	assert.Empty(t, dims.Years)
	assert.Equal(t, []string{mortality.AllCauses}, dims.Causes)

	_, ok := dims.DefaultSelection()
	assert.False(t, ok)
}

func TestDefaultSelection(t *testing.T) {
	dims := Extract([]mortality.Record{{Year: "2020", CauseName: "Flu"}, {Year: "2021", CauseName: "Flu"}})

	sel, ok := dims.DefaultSelection()
	assert.True(t, ok)
	assert.Equal(t, mortality.Selection{Year: "2020", Cause: mortality.AllCauses}, sel)
}

func TestHasYearAndCause(t *testing.T) {
	dims := Extract([]mortality.Record{{Year: "2020", CauseName: "Flu"}})

	assert.True(t, dims.HasYear("2020"))
	assert.True(t, dims.HasYear("2020.0"))
	assert.False(t, dims.HasYear("2021"))
	assert.True(t, dims.HasCause("Flu"))
	assert.True(t, dims.HasCause(mortality.AllCauses))
	assert.False(t, dims.HasCause("flu"))
}
