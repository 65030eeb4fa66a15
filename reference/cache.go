/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package reference

import (
	"sync"

	"github.com/humaidq/nourishnav/growth"
)

// Cache loads reference sets once and hands the same immutable value to every
// caller. A failed load is remembered and returned to every later caller until
// Reload succeeds.
type Cache struct {
	loader Loader

	mu     sync.Mutex
	loaded bool
	sets   *growth.ReferenceSets
	err    error
}

// NewCache wraps a loader.
func NewCache(loader Loader) *Cache {
	return &Cache{loader: loader}
}

// Get returns the cached reference sets, loading them on first use.
func (c *Cache) Get() (*growth.ReferenceSets, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		c.load()
	}

	return c.sets, c.err
}

// Reload discards the cached result and loads again.
func (c *Cache) Reload() (*growth.ReferenceSets, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.load()

	return c.sets, c.err
}

func (c *Cache) load() {
	c.loaded = true

	if c.loader == nil {
		c.sets, c.err = nil, errNotInitialized
		return
	}

	c.sets, c.err = c.loader.Load()
	if c.err != nil {
		logger.Error("failed to load reference sets", "error", c.err)
	}
}
