package ssdist

import (
	"sync"

	"github.com/RustamC/wotan/rrgraph"
)

// Pool recycles Oracle scratch across jobs, amortizing the O(n) slice
// allocations across the many thousands of jobs one run dispatches.
type Pool struct {
	store *rrgraph.Store
	pool  sync.Pool
}

// NewPool builds a Pool bound to store.
func NewPool(store *rrgraph.Store) *Pool {
	p := &Pool{store: store}
	p.pool.New = func() interface{} { return New(store) }
	return p
}

// Get returns an Oracle ready for Reset.
func (p *Pool) Get() *Oracle { return p.pool.Get().(*Oracle) }

// Put returns an Oracle to the pool once its job is finished.
func (p *Pool) Put(o *Oracle) { p.pool.Put(o) }
