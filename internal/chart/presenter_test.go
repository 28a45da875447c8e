package chart

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feLLpe04/Project3/internal/aggregate"
)

type fakeHandle struct {
	spec       Spec
	destroyed  bool
	destroyErr error
	surface    *fakeSurface
}

func (h *fakeHandle) Destroy() error {
	if h.destroyErr != nil {
		return h.destroyErr
	}
	h.destroyed = true
	h.surface.live = nil
	return nil
}

type fakeSurface struct {
	live  *fakeHandle
	draws int
}

func (s *fakeSurface) Name() string { return "fake" }

func (s *fakeSurface) Draw(spec Spec) (Handle, error) {
	if s.live != nil {
		return nil, ErrSurfaceInUse
	}
	s.draws++
	s.live = &fakeHandle{spec: spec, surface: s}
	return s.live, nil
}

type countingObserver map[string]int

func (o countingObserver) ChartRendered(surface string) { o[surface]++ }

func TestPresenterRenderDestroysPrevious(t *testing.T) {
	surface := &fakeSurface{}
	observer := countingObserver{}
	presenter := NewPresenter(surface).WithObserver(observer)

	first, err := presenter.Render(nil, aggregate.Totals{Male: 1})
	require.NoError(t, err)

	second, err := presenter.Render(first, aggregate.Totals{Female: 2})
	require.NoError(t, err)

	assert.True(t, first.(*fakeHandle).destroyed)
	assert.False(t, second.(*fakeHandle).destroyed)
	assert.Equal(t, []float64{0, 2, 0}, second.(*fakeHandle).spec.Values)
	assert.Equal(t, 2, surface.draws)
	assert.Equal(t, 2, observer["fake"])
	assert.Same(t, surface, presenter.Surface())
}

func TestPresenterRequiresDestroyBeforeRedraw(t *testing.T) {
	surface := &fakeSurface{}
	presenter := NewPresenter(surface)

	_, err := presenter.Render(nil, aggregate.Totals{Male: 1})
	require.NoError(t, err)

	_, err = presenter.Render(nil, aggregate.Totals{Male: 2})
	assert.ErrorIs(t, err, ErrSurfaceInUse)
}

func TestPresenterDestroyFailure(t *testing.T) {
	surface := &fakeSurface{}
	presenter := NewPresenter(surface)

	prev, err := presenter.Render(nil, aggregate.Totals{Male: 1})
	require.NoError(t, err)
	boom := errors.New("boom")
	prev.(*fakeHandle).destroyErr = boom

	_, err = presenter.Render(prev, aggregate.Totals{Male: 2})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, surface.draws)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"svg": FormatSVG, "pie.svg": FormatSVG, "png": FormatPNG, "pie.png": FormatPNG} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("pie.gif")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	assert.Equal(t, "image/svg+xml", FormatSVG.ContentType())
	assert.Equal(t, "image/png", FormatPNG.ContentType())
}

func TestImageSurfaceSVG(t *testing.T) {
	surface := NewImageSurface("pieChart", FormatSVG)
	assert.Equal(t, "pieChart", surface.Name())
	assert.Equal(t, FormatSVG, surface.Format())

	handle, err := surface.Draw(NewSpec(aggregate.Totals{Male: 10, Female: 5}))
	require.NoError(t, err)

	img := handle.(*ImageHandle)
	assert.Same(t, img, surface.Current())
	assert.Equal(t, "image/svg+xml", img.ContentType())
	assert.Contains(t, string(img.Bytes()), "<svg")
	assert.Contains(t, string(img.Bytes()), "Female")

	_, err = surface.Draw(NewSpec(aggregate.Totals{Male: 1}))
	assert.ErrorIs(t, err, ErrSurfaceInUse)

	require.NoError(t, img.Destroy())
	assert.True(t, img.Destroyed())
	assert.Nil(t, img.Bytes())
	assert.Nil(t, surface.Current())
	assert.NoError(t, img.Destroy(), "destroy is idempotent")

	_, err = surface.Draw(NewSpec(aggregate.Totals{Male: 1}))
	assert.NoError(t, err)
}

func TestImageSurfacePNG(t *testing.T) {
	surface := NewImageSurface("pieChart", FormatPNG)

	handle, err := surface.Draw(NewSpec(aggregate.Totals{Male: 3, Female: 1, Undefined: 1}))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(handle.(*ImageHandle).Bytes(), []byte("\x89PNG")))
}

func TestImageSurfaceZeroTotals(t *testing.T) {
	surface := NewImageSurface("pieChart", FormatSVG)

	handle, err := surface.Draw(NewSpec(aggregate.Totals{}))
	require.NoError(t, err)
	assert.Contains(t, string(handle.(*ImageHandle).Bytes()), noDataLabel)
}

func TestImageSurfaceRejectsOtherTypes(t *testing.T) {
	surface := NewImageSurface("pieChart", FormatSVG)
	spec := NewSpec(aggregate.Totals{Male: 1})
	spec.Type = "bar"

	_, err := surface.Draw(spec)
	assert.Error(t, err)
	assert.Nil(t, surface.Current())
}

func TestPieValues(t *testing.T) {
	values := pieValues(NewSpec(aggregate.Totals{Male: 10, Female: 5}))
	require.Len(t, values, 3)
	assert.Equal(t, "Male 66.7%", values[0].Label)
	assert.Equal(t, colorFor("red"), values[0].Style.FillColor)
	assert.Equal(t, colorFor("gray"), colorFor("unknown"))

	empty := pieValues(NewSpec(aggregate.Totals{}))
	require.Len(t, empty, 1)
	assert.Equal(t, noDataLabel, empty[0].Label)
}
