package pipeline

import (
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/material"
)

// cache is the implementation of the Cache interface.
type cache struct {
	mu        *sync.Mutex
	pipelines map[Key]Pipeline
}

// Cache stores pipelines by specialization key.
type Cache interface {
	// Get returns the pipeline for a key.
	//
	// Parameters:
	//   - k: the specialization key
	//
	// Returns:
	//   - Pipeline: the cached pipeline
	//   - bool: false when no pipeline is cached for k
	Get(k Key) (Pipeline, bool)

	// Put stores p under its key, releasing any pipeline it replaces.
	Put(p Pipeline)

	// Evict releases and removes every pipeline built from the given shader.
	//
	// Parameters:
	//   - ref: the shader whose specializations are stale
	//
	// Returns:
	//   - int: the number of pipelines removed
	Evict(ref material.ShaderRef) int

	// Keys returns the cached keys sorted by their String form.
	Keys() []Key

	// Len returns the number of cached pipelines.
	Len() int

	// Clear releases and removes every pipeline.
	Clear()
}

var _ Cache = &cache{}

// NewCache creates an empty pipeline cache.
func NewCache() Cache {
	return &cache{
		mu:        &sync.Mutex{},
		pipelines: make(map[Key]Pipeline),
	}
}

func (c *cache) Get(k Key) (Pipeline, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pipelines[k]
	return p, ok
}

func (c *cache) Put(p Pipeline) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if old, ok := c.pipelines[p.Key()]; ok && old != p {
		old.Release()
	}
	c.pipelines[p.Key()] = p
}

func (c *cache) Evict(ref material.ShaderRef) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for k, p := range c.pipelines {
		if k.Shader == ref {
			p.Release()
			delete(c.pipelines, k)
			n++
		}
	}
	return n
}

func (c *cache) Keys() []Key {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]Key, 0, len(c.pipelines))
	for k := range c.pipelines {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

func (c *cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pipelines)
}

func (c *cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, p := range c.pipelines {
		p.Release()
		delete(c.pipelines, k)
	}
}
