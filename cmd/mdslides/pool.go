package main

import (
	"runtime"
	"sync"

	mdslides "github.com/alnah/go-mdslides"
)

// MaxPoolSize bounds the worker flag. Each service may own a browser
// instance, so unbounded pools would exhaust memory long before helping.
const MaxPoolSize = 32

// ServicePool manages a pool of mdslides.Service instances for parallel
// processing. Services are created lazily on first acquire to avoid paying
// browser startup for workers that never run.
type ServicePool struct {
	size     int
	opts     []mdslides.Option
	services []*mdslides.Service
	sem      chan Builder
	mu       sync.Mutex
	created  int
	closed   bool
}

// NewServicePool creates a pool with capacity for n Service instances,
// each configured with the given options.
func NewServicePool(n int, opts ...mdslides.Option) *ServicePool {
	if n < 1 {
		n = 1
	}

	return &ServicePool{
		size:     n,
		opts:     opts,
		services: make([]*mdslides.Service, 0, n),
		sem:      make(chan Builder, n),
	}
}

// Compile-time check that ServicePool implements Pool.
var _ Pool = (*ServicePool)(nil)

// Acquire gets a service from the pool, creating one if needed.
// Blocks if all services are in use.
func (p *ServicePool) Acquire() Builder {
	// Try to get an existing service (non-blocking)
	select {
	case svc := <-p.sem:
		return svc
	default:
	}

	// Check if we can create a new service
	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create new service outside the lock
		svc := mdslides.New(p.opts...)

		p.mu.Lock()
		p.services = append(p.services, svc)
		p.mu.Unlock()

		return svc
	}
	p.mu.Unlock()

	// All services created, wait for one to be released
	return <-p.sem
}

// Release returns a service to the pool.
func (p *ServicePool) Release(svc Builder) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.sem <- svc
	}
}

// Close releases all engine resources.
func (p *ServicePool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	services := p.services
	p.mu.Unlock()

	var lastErr error
	for _, svc := range services {
		if err := svc.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Size returns the pool capacity.
func (p *ServicePool) Size() int {
	return p.size
}

// resolvePoolSize determines the optimal pool size.
// Priority: explicit flag > GOMAXPROCS-based calculation.
func resolvePoolSize(flagWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	available := runtime.GOMAXPROCS(0)
	n := available / 2

	// Minimum 1, maximum 8
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}
