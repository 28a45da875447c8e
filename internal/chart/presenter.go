package chart

import (
	"errors"
	"fmt"

	"github.com/feLLpe04/Project3/internal/aggregate"
)

// ErrSurfaceInUse is returned when a surface is asked to draw while an
// earlier chart instance on it has not been destroyed.
var ErrSurfaceInUse = errors.New("chart surface already holds a live chart")

// Handle is one drawn chart instance.
type Handle interface {
	Destroy() error
}

// Surface is a drawing target that holds at most one chart at a time.
type Surface interface {
	Name() string
	Draw(spec Spec) (Handle, error)
}

// RenderObserver is notified after every successful render.
type RenderObserver interface {
	ChartRendered(surface string)
}

// Presenter turns aggregate totals into a chart on a surface.
type Presenter struct {
	surface  Surface
	observer RenderObserver
}

func NewPresenter(surface Surface) *Presenter {
	return &Presenter{surface: surface}
}

// WithObserver registers an observer for completed renders.
func (p *Presenter) WithObserver(observer RenderObserver) *Presenter {
	p.observer = observer
	return p
}

func (p *Presenter) Surface() Surface {
	return p.surface
}

// Render destroys prev (which may be nil) and draws a fresh chart for totals.
// Charts are never updated in place.
func (p *Presenter) Render(prev Handle, totals aggregate.Totals) (Handle, error) {
	if prev != nil {
		if err := prev.Destroy(); err != nil {
			return nil, fmt.Errorf("destroy previous chart: %w", err)
		}
	}

	handle, err := p.surface.Draw(NewSpec(totals))
	if err != nil {
		return nil, fmt.Errorf("draw chart on %s: %w", p.surface.Name(), err)
	}

	if p.observer != nil {
		p.observer.ChartRendered(p.surface.Name())
	}
	return handle, nil
}
