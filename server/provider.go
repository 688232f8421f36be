// Package server exposes a finalized catalog over an HTTP JSON API with
// Prometheus metrics.
package server

import (
	"sync/atomic"

	"github.com/c360studio/patternbook/catalog"
)

// Provider hands out the active catalog snapshot. Swap installs a new
// catalog atomically so in-flight requests keep reading the one they
// started with while a reload replaces it.
type Provider struct {
	current atomic.Pointer[catalog.Catalog]
}

// NewProvider creates a provider serving the given catalog.
func NewProvider(c *catalog.Catalog) *Provider {
	p := &Provider{}
	p.current.Store(c)
	return p
}

// Catalog returns the active snapshot.
func (p *Provider) Catalog() *catalog.Catalog {
	return p.current.Load()
}

// Swap installs a new catalog and returns the previous one.
func (p *Provider) Swap(c *catalog.Catalog) *catalog.Catalog {
	return p.current.Swap(c)
}
