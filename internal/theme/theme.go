// Package theme holds the body themes a page can be painted with.  A theme
// is a CSS class on <body>; the stylesheet defines one palette per class.
//
// A fresh theme is picked for every request.  The Picker interface lets the
// locals composer take a fixed picker in tests and a random one in
// production.
package theme

import (
	"math/rand/v2"
	"sync"
)

// ID names one body theme.
type ID string

const (
	Blue   ID = "blue"
	Green  ID = "green"
	Red    ID = "red"
	Yellow ID = "yellow"
	Purple ID = "purple"
	Orange ID = "orange"
)

// All lists every theme in a stable order.
var All = []ID{Blue, Green, Red, Yellow, Purple, Orange}

// Valid reports whether id is one of All.
func Valid(id ID) bool {
	for _, t := range All {
		if t == id {
			return true
		}
	}
	return false
}

// Picker chooses a theme for one request.
type Picker interface {
	Pick() ID
}

// RandomPicker picks uniformly from All.  Safe for concurrent use.
type RandomPicker struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandomPicker seeds the picker from src.  A nil src uses the runtime's
// global generator.
func NewRandomPicker(src rand.Source) *RandomPicker {
	p := &RandomPicker{}
	if src != nil {
		p.rnd = rand.New(src)
	}
	return p
}

// Pick returns one of All.
func (p *RandomPicker) Pick() ID {
	if p.rnd == nil {
		return All[rand.IntN(len(All))]
	}
	p.mu.Lock()
	i := p.rnd.IntN(len(All))
	p.mu.Unlock()
	return All[i]
}

// Fixed always returns the same theme.
type Fixed ID

// Pick implements Picker.
func (f Fixed) Pick() ID { return ID(f) }
