// Package animation drives keyframe animations: it keeps registered
// keyframe definitions, interpolates animated properties between keyframe
// stops and runs the controller state machine on top of a progress driver.
package animation

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylebridge/common"
)

var (
	// ErrEmptyKeyframes is returned when keyframe definition has no usable stops.
	ErrEmptyKeyframes = errors.New("empty keyframes")
	// ErrUnknownKeyframes is returned when animation references keyframes
	// which are not registered.
	ErrUnknownKeyframes = errors.New("unknown keyframes")
)

const idPrefix = "keyframes-"

// Definition is registered keyframe set.
type Definition struct {
	ID        string
	Keyframes Keyframes
	Stops     []Stop
}

// Registry stores keyframe definitions under generated ids. It is safe for
// concurrent use. Intended lifecycle is register once, resolve many times.
type Registry struct {
	log *zap.Logger

	mu   sync.RWMutex
	next int
	defs map[string]Definition
}

// NewRegistry returns empty keyframe registry.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		log:  log.Named("keyframes"),
		defs: make(map[string]Definition),
	}
}

// Register validates keyframes and stores them under a new id. Every call
// produces a new id, even for identical input. Invalid selectors and values
// are logged and skipped, definition without any valid stop is rejected.
func (r *Registry) Register(kf Keyframes) (string, error) {
	if len(kf) == 0 {
		return "", ErrEmptyKeyframes
	}
	stops, err := ParseStops(kf)
	for _, e := range multierr.Errors(err) {
		r.log.Warn("Invalid keyframe ignored", zap.Error(e))
	}
	if len(stops) == 0 {
		return "", fmt.Errorf("%w: no valid stops", ErrEmptyKeyframes)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	id := idPrefix + strconv.Itoa(r.next)
	r.defs[id] = Definition{ID: id, Keyframes: kf, Stops: stops}
	r.log.Debug("Keyframes registered", zap.String("id", id), zap.Int("stops", len(stops)))
	return id, nil
}

// Resolve returns definition registered under id.
func (r *Registry) Resolve(id string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[id]
	return def, ok
}

// Clear drops all definitions and resets id counter. Controllers still
// referencing old ids would not find their keyframes on the next start.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.log.Debug("Keyframes cleared", zap.Int("count", len(r.defs)))
	r.defs = make(map[string]Definition)
	r.next = 0
}

// IDs returns registered ids in natural order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return common.SortedKeys(r.defs)
}
