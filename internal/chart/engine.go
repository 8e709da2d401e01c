// Package chart owns the lazy initialization of the charting dependency and
// the lifecycle of rendered chart instances. Slots are stable widget
// identifiers; at most one live instance occupies a slot at any time, and the
// slot table is owned exclusively by the Engine.
package chart

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/and161185/hr-console/model"
)

// ErrNotReady means the charting dependency is not initialized or its load
// failed; callers fall back to text-only output.
var ErrNotReady = errors.New("charting dependency not ready")

type loadState int

const (
	loadIdle loadState = iota
	loadInFlight
	loadDone
)

// Instance is one live chart occupying a slot. PNG is empty when the series
// had nothing to draw.
type Instance struct {
	Spec model.ChartSpec
	PNG  []byte
}

// Engine renders charts into slots after a single-flight load of the
// charting dependency.
type Engine struct {
	mu      sync.Mutex
	state   loadState
	loadErr error
	waiters []func()
	loader  func() error
	slots   map[string]*Instance
}

// New creates an engine that loads the default chart font on first use.
func New() *Engine {
	return NewWithLoader(func() error {
		_, err := chart.GetDefaultFont()
		return err
	})
}

// DI: custom dependency loader
func NewWithLoader(loader func() error) *Engine {
	return &Engine{loader: loader, slots: make(map[string]*Instance)}
}

// EnsureReady invokes onReady once the charting dependency load has
// completed. The first caller starts exactly one load attempt; concurrent and
// later callers share its outcome and never re-trigger the load. onReady runs
// even when the load failed, so the caller can proceed degraded.
func (e *Engine) EnsureReady(onReady func()) {
	e.mu.Lock()
	switch e.state {
	case loadDone:
		e.mu.Unlock()
		onReady()
		return
	case loadInFlight:
		e.waiters = append(e.waiters, onReady)
		e.mu.Unlock()
		return
	}
	e.state = loadInFlight
	e.waiters = append(e.waiters, onReady)
	e.mu.Unlock()

	go func() {
		err := e.loader()

		e.mu.Lock()
		e.state = loadDone
		e.loadErr = err
		waiters := e.waiters
		e.waiters = nil
		e.mu.Unlock()

		for _, w := range waiters {
			w()
		}
	}()
}

// Ready reports whether the charting dependency loaded successfully.
func (e *Engine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == loadDone && e.loadErr == nil
}

// Render places a new chart instance into slot, releasing any instance that
// occupied it before. An empty or all-zero series produces an instance with
// no image, keeping the slot claimed so stale visuals never survive a
// re-query.
func (e *Engine) Render(slot string, spec model.ChartSpec) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != loadDone || e.loadErr != nil {
		return ErrNotReady
	}

	delete(e.slots, slot)

	inst := &Instance{Spec: spec}
	if drawable(spec) {
		png, err := renderPNG(spec)
		if err != nil {
			return fmt.Errorf("render %s: %w", slot, err)
		}
		inst.PNG = png
	}
	e.slots[slot] = inst
	return nil
}

// Release frees the slot. Releasing an empty slot is a no-op.
func (e *Engine) Release(slot string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.slots, slot)
}

// Snapshot returns the instance currently occupying slot.
func (e *Engine) Snapshot(slot string) (*Instance, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	inst, ok := e.slots[slot]
	return inst, ok
}

// Slots returns the occupied slot identifiers in stable order.
func (e *Engine) Slots() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := make([]string, 0, len(e.slots))
	for name := range e.slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// drawable reports whether the series has anything the chart library can
// draw: at least one positive value, and two points for line charts.
func drawable(spec model.ChartSpec) bool {
	if spec.Series.Len() == 0 {
		return false
	}
	if spec.Kind == model.ChartLine && spec.Series.Len() < 2 {
		return false
	}
	for _, v := range spec.Series.Values {
		if v > 0 {
			return true
		}
	}
	return false
}
