package pipeline

import (
	"image"
	"sync"

	"github.com/pkg/errors"
	"github.com/swdee/go-detdecode"
	"github.com/swdee/go-detdecode/postprocess/result"
	"github.com/swdee/go-detdecode/preprocess"
)

// Pool is a simple pipeline pool so independent images can be prepared and
// decoded concurrently, each goroutine holding its own Pipeline
type Pool struct {
	// pool of pipelines
	pipelines chan *Pipeline
	// size of pool
	size  int
	close sync.Once
	// mu guards closed against Return racing with Close
	mu     sync.RWMutex
	closed bool
}

// NewPool creates a new pipeline pool
func NewPool(size int, cfg Config) (*Pool, error) {

	if size < 1 {
		size = 1
	}

	p := &Pool{
		pipelines: make(chan *Pipeline, size),
		size:      size,
	}

	for i := 0; i < size; i++ {
		pl, err := New(cfg)

		if err != nil {
			// close any instances that may have been created before receiving
			// the error
			p.Close()
			return nil, err
		}

		// attach to pool
		p.Return(pl)
	}

	return p, nil
}

// Get a pipeline from the pool, blocking until one is available.  It
// returns nil once the pool is closed
func (p *Pool) Get() *Pipeline {
	return <-p.pipelines
}

// Return a pipeline to the pool.  Pipelines returned after the pool is
// closed are closed instead
func (p *Pool) Return(pl *Pipeline) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		_ = pl.Close()
		return
	}

	select {
	case p.pipelines <- pl:
	default:
		// pool is full
	}
}

// Size returns the number of pipelines in the pool
func (p *Pool) Size() int {
	return p.size
}

// Decode borrows a pipeline from the pool to decode a single Model output
func (p *Pool) Decode(out *detdecode.Output, t preprocess.Transform,
	size image.Point) ([]result.DetectResult, error) {

	pl := p.Get()

	if pl == nil {
		return nil, errors.New("pipeline pool is closed")
	}

	defer p.Return(pl)

	return pl.Decode(out, t, size)
}

// Close the pool and all pipelines in it
func (p *Pool) Close() {
	p.close.Do(func() {
		// close channel
		p.mu.Lock()
		p.closed = true
		close(p.pipelines)
		p.mu.Unlock()

		// close all pipelines
		for next := range p.pipelines {
			_ = next.Close()
		}
	})
}
