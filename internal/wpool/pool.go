// Package wpool implements weighted random sampling with optional removal of
// drawn items. Draws are O(log n), removal keeps the prefix sums valid without
// rebuilding them.
package wpool

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"
)

var (
	ErrEmptyPool     = errors.New("pool has no items to draw from")
	ErrInvalidWeight = errors.New("weight must be a positive finite number")
)

type Item[T any] struct {
	Weight float64
	Item   T
}

// Source is a source of uniform float64 values in [0, 1).
// *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

type Options struct {
	// WithReplacement keeps drawn items in the pool.
	WithReplacement bool
	// EqualWeights ignores stored weights and samples uniformly.
	EqualWeights bool
}

// Pool is not safe for concurrent use.
type Pool[T any] struct {
	opts Options
	rng  Source

	// items[:active] are eligible for sampling, the tail holds removed items
	// until the next reset.
	items  []Item[T]
	cdf    []float64
	active int
	resets int
}

func New[T any](items []Item[T], opts Options, rng Source) (*Pool[T], error) {
	if len(items) == 0 {
		return nil, ErrEmptyPool
	}
	var total float64
	for i, item := range items {
		if !validWeight(item.Weight) {
			return nil, fmt.Errorf("item %d has weight %v: %w", i, item.Weight, ErrInvalidWeight)
		}
		total += item.Weight
	}
	if !validWeight(total) {
		return nil, fmt.Errorf("total weight %v overflows: %w", total, ErrInvalidWeight)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	p := &Pool[T]{
		opts:  opts,
		rng:   rng,
		items: append([]Item[T](nil), items...),
		cdf:   make([]float64, len(items)),
	}
	p.Reset()
	return p, nil
}

func validWeight(w float64) bool {
	return w > 0 && !math.IsInf(w, 1) && !math.IsNaN(w)
}

// Reset makes every item eligible again and rebuilds the prefix sums.
func (p *Pool[T]) Reset() {
	p.active = len(p.items)

	var sum float64
	for i := range p.items {
		if p.opts.EqualWeights {
			sum = float64(i + 1)
		} else {
			sum += p.items[i].Weight
		}
		p.cdf[i] = sum
	}
}

// Draw picks an active item with probability proportional to its weight.
//
// Without replacement the drawn item is excluded from later draws. Drawing the
// last active item refills the pool instead of leaving it empty, so a new cycle
// starts on the next call and Draw never runs dry.
func (p *Pool[T]) Draw() (Item[T], error) {
	if p.active == 0 {
		return Item[T]{}, ErrEmptyPool
	}

	r := p.rng.Float64() * p.cdf[p.active-1]
	index := p.search(r)
	item := p.items[index]

	if !p.opts.WithReplacement {
		if p.active > 1 {
			p.remove(index)
		} else {
			p.Reset()
			p.resets++
		}
	}

	return item, nil
}

// search returns the leftmost active position whose prefix sum is >= r.
func (p *Pool[T]) search(r float64) int {
	i := sort.Search(p.active, func(i int) bool {
		return p.cdf[i] >= r
	})
	// r can exceed the last prefix sum only through rounding drift
	if i == p.active {
		i = p.active - 1
	}
	return i
}

// remove swaps items[index] with the last active item and shrinks the active
// range by one.
func (p *Pool[T]) remove(index int) {
	p.active--
	last := p.active
	p.items[index], p.items[last] = p.items[last], p.items[index]

	if p.opts.EqualWeights || p.items[index].Weight == p.items[last].Weight {
		return
	}

	delta := p.items[index].Weight - p.items[last].Weight
	for i := index; i < last; i++ {
		p.cdf[i] += delta
	}
}

// Len returns the number of items, removed ones included.
func (p *Pool[T]) Len() int {
	return len(p.items)
}

// Active returns the number of items eligible for the next draw.
func (p *Pool[T]) Active() int {
	return p.active
}

// Total returns the sampling mass of the active items.
func (p *Pool[T]) Total() float64 {
	if p.active == 0 {
		return 0
	}
	return p.cdf[p.active-1]
}

// Resets counts how many times Draw refilled an exhausted pool.
func (p *Pool[T]) Resets() int {
	return p.resets
}
