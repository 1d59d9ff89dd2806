package scene

import (
	"errors"
	"fmt"
)

// Uniform names used by the scene shader.
const (
	UniformModel = "modelMatrix"
	UniformView  = "viewMatrix"
	UniformProj  = "projMatrix"
	UniformColor = "color"
)

// Uniforms lists every uniform the scene shader must expose.
var Uniforms = []string{UniformModel, UniformView, UniformProj, UniformColor}

// ErrUniformNotFound is returned when a program has no active uniform of the
// requested name.
var ErrUniformNotFound = errors.New("uniform not found")

// LookupFunc queries the backend for a uniform location. Negative means absent.
type LookupFunc func(program uint32, name string) int32

type uniformKey struct {
	program uint32
	name    string
}

// UniformCache resolves uniform locations once per program and name.
type UniformCache struct {
	lookup  LookupFunc
	locs    map[uniformKey]int32
	lookups int
}

// NewUniformCache creates a cache backed by lookup.
func NewUniformCache(lookup LookupFunc) *UniformCache {
	return &UniformCache{
		lookup: lookup,
		locs:   make(map[uniformKey]int32),
	}
}

// Resolve looks up and caches names for program. It fails on the first
// missing uniform.
func (c *UniformCache) Resolve(program uint32, names ...string) error {
	for _, name := range names {
		if _, err := c.Location(program, name); err != nil {
			return err
		}
	}
	return nil
}

// Location returns the cached location, querying the backend on first use.
func (c *UniformCache) Location(program uint32, name string) (int32, error) {
	key := uniformKey{program, name}
	if loc, ok := c.locs[key]; ok {
		return loc, nil
	}
	c.lookups++
	loc := c.lookup(program, name)
	if loc < 0 {
		return -1, fmt.Errorf("program %d: %q: %w", program, name, ErrUniformNotFound)
	}
	c.locs[key] = loc
	return loc, nil
}

// MustLocation returns the location of a uniform that Resolve already found.
// An unresolved name reports -1, which GL ignores.
func (c *UniformCache) MustLocation(program uint32, name string) int32 {
	if loc, ok := c.locs[uniformKey{program, name}]; ok {
		return loc
	}
	return -1
}

// Forget drops every location cached for program.
func (c *UniformCache) Forget(program uint32) {
	for key := range c.locs {
		if key.program == program {
			delete(c.locs, key)
		}
	}
}

// Lookups returns how many backend queries were made.
func (c *UniformCache) Lookups() int { return c.lookups }
