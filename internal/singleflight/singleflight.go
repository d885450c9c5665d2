// Package singleflight coalesces concurrent calls with the same key so only
// one executes; duplicates wait and receive the owner's result. Used by the
// client to merge concurrent status polls for the same request ID.
package singleflight

import "sync"

// Group manages a set of in-flight calls keyed by string.
type Group struct {
	mu sync.Mutex
	m  map[string]*call
}

type call struct {
	wg  sync.WaitGroup
	val []byte
	err error
}

// New creates an empty Group.
func New() *Group {
	return &Group{m: make(map[string]*call)}
}

// Do executes fn, ensuring only one execution is in flight for key at a time.
// Duplicate callers block until the owner completes and receive the same
// result. The returned byte slice is shared; callers must not mutate it.
func (g *Group) Do(key string, fn func() ([]byte, error)) ([]byte, error) {
	g.mu.Lock()
	if c, ok := g.m[key]; ok {
		g.mu.Unlock()
		c.wg.Wait()
		return c.val, c.err
	}

	c := &call{}
	c.wg.Add(1)
	g.m[key] = c
	g.mu.Unlock()

	c.val, c.err = fn()

	g.mu.Lock()
	if g.m[key] == c {
		delete(g.m, key)
	}
	g.mu.Unlock()

	c.wg.Done()
	return c.val, c.err
}

// Forget removes key so the next Do call executes fn even if an earlier call
// for the key is still running.
func (g *Group) Forget(key string) {
	g.mu.Lock()
	delete(g.m, key)
	g.mu.Unlock()
}
