package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feLLpe04/Project3/internal/aggregate"
	"github.com/feLLpe04/Project3/internal/chart"
	"github.com/feLLpe04/Project3/internal/dataset"
	"github.com/feLLpe04/Project3/internal/mortality"
)

func testDataset() *dataset.Dataset {
	return dataset.NewDataset("test", []mortality.Record{
		{Year: "2020", CauseName: "Flu", Sex: mortality.SexMale, TotalDeaths: 10},
		{Year: "2020", CauseName: "Flu", Sex: mortality.SexFemale, TotalDeaths: 5},
		{Year: "2021", CauseName: "Flu", Sex: mortality.SexMale, TotalDeaths: 1},
		{Year: "2021", CauseName: "Heart disease", Sex: "", TotalDeaths: 3},
	})
}

type renderCounter struct {
	renders int
}

func (c *renderCounter) ChartRendered(string) { c.renders++ }

func newTestDashboard(data *dataset.Dataset) (*Dashboard, *Dropdown, *Dropdown, *chart.ImageSurface, *renderCounter) {
	surface := chart.NewImageSurface(ChartSurfaceID, chart.FormatSVG)
	counter := &renderCounter{}
	presenter := chart.NewPresenter(surface).WithObserver(counter)
	years := NewDropdown(YearSelectorID)
	causes := NewDropdown(CauseSelectorID)
	return New(data, presenter, years, causes, nil), years, causes, surface, counter
}

func optionValues(d *Dropdown) []string {
	values := make([]string, 0, len(d.Options()))
	for _, o := range d.Options() {
		values = append(values, o.Value)
	}
	return values
}

func TestBindPopulatesSelectorsAndRendersDefault(t *testing.T) {
	board, years, causes, surface, counter := newTestDashboard(testDataset())
	require.True(t, board.Ready())
	require.NoError(t, board.Bind())

	assert.Equal(t, []string{"2020", "2021"}, optionValues(years))
	assert.Equal(t, []string{mortality.AllCauses, "Flu", "Heart disease"}, optionValues(causes))
	assert.Equal(t, Option{Value: "2020", Text: "2020"}, years.Options()[0])

	assert.True(t, board.Rendered())
	assert.Equal(t, mortality.Selection{Year: "2020", Cause: mortality.AllCauses}, board.Selection())
	assert.Equal(t, aggregate.Totals{Male: 10, Female: 5}, board.Totals())
	assert.Equal(t, "Male: 10 (66.7%)", board.Spec().Tooltips[0])
	assert.Equal(t, 1, counter.renders)
	assert.NotNil(t, surface.Current())
	assert.Same(t, surface.Current(), board.Handle())
}

func TestSelectionChangeRedraws(t *testing.T) {
	board, years, causes, surface, counter := newTestDashboard(testDataset())
	require.NoError(t, board.Bind())
	first := surface.Current()

	years.Select("2021")
	assert.Equal(t, mortality.Selection{Year: "2021", Cause: mortality.AllCauses}, board.Selection())
	assert.Equal(t, aggregate.Totals{Male: 1, Undefined: 3}, board.Totals())
	assert.True(t, first.Destroyed(), "previous chart is destroyed before redraw")

	causes.Select("Heart disease")
	assert.Equal(t, mortality.Selection{Year: "2021", Cause: "Heart disease"}, board.Selection())
	assert.Equal(t, aggregate.Totals{Undefined: 3}, board.Totals())
	assert.Equal(t, 1, board.Summary().MatchedRecords)

	assert.Equal(t, 3, counter.renders)
	assert.NoError(t, board.Err())
}

func TestSelectionWithNoMatches(t *testing.T) {
	board, _, causes, _, _ := newTestDashboard(testDataset())
	require.NoError(t, board.Bind())

	causes.Select("Cancer")
	assert.Equal(t, aggregate.Totals{}, board.Totals())
	assert.True(t, board.Rendered())
	assert.Equal(t, "Male: 0 (0.0%)", board.Spec().Tooltips[0])
}

func TestBindWithoutDataset(t *testing.T) {
	board, years, causes, surface, counter := newTestDashboard(nil)

	assert.False(t, board.Ready())
	require.NoError(t, board.Bind())

	assert.Empty(t, years.Options())
	assert.Empty(t, causes.Options())
	assert.False(t, board.Rendered())
	assert.Nil(t, surface.Current())
	assert.Zero(t, counter.renders)
}

func TestBindWithEmptyDataset(t *testing.T) {
	board, years, causes, surface, _ := newTestDashboard(dataset.NewDataset("empty", nil))
	require.NoError(t, board.Bind())

	assert.Empty(t, years.Options())
	assert.Equal(t, []string{mortality.AllCauses}, optionValues(causes))
	assert.False(t, board.Rendered())
	assert.Nil(t, surface.Current())
}

func TestClose(t *testing.T) {
	board, _, _, surface, _ := newTestDashboard(testDataset())
	require.NoError(t, board.Bind())

	require.NoError(t, board.Close())
	assert.Nil(t, surface.Current())
	assert.Nil(t, board.Handle())
	assert.False(t, board.Rendered())
	assert.NoError(t, board.Close())
}
