package testfixtures

import (
	"fmt"
	"sync"
)

// IDGenerator hands out deterministic identifiers of the form "<prefix>-N".
type IDGenerator struct {
	mu      sync.Mutex
	prefix  string
	counter int
}

// NewIDGenerator returns a generator using the given prefix. An empty prefix
// defaults to "id".
func NewIDGenerator(prefix string) *IDGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &IDGenerator{prefix: prefix}
}

// Next returns the next identifier in sequence.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("%s-%d", g.prefix, g.counter)
}

// NextFunc returns a function suitable for injecting as a service's ID source.
func (g *IDGenerator) NextFunc() func() string {
	return g.Next
}

// SetPrefix replaces the prefix used for subsequent identifiers.
func (g *IDGenerator) SetPrefix(prefix string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prefix = prefix
}

// SetCounter resets the sequence so the next identifier is "<prefix>-<n+1>".
func (g *IDGenerator) SetCounter(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter = n
}
