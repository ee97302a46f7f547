// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package render

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hirdrac/rend/hitlist"
	"github.com/hirdrac/rend/shader"
	"github.com/hirdrac/rend/stats"
)

// task is one image-row strip a worker claims and renders in full.
type task struct {
	minX, minY, maxX, maxY int
}

// worker is one goroutine's thread-local render state: a JobState plus
// a halt flag the pool sets to cut a worker loose before it drains its
// queue.
type worker struct {
	js   *shader.JobState
	halt atomic.Bool
}

// Pool drives a fixed number of worker goroutines pulling tasks off a
// shared, mutex-guarded stack, using Go's sync.Mutex+sync.Cond for the
// lock/wait pair a work-stealing pool needs. Tasks are popped LIFO.
type Pool struct {
	cam    *Camera
	tracer shader.Tracer
	fb     Plotter

	mu    sync.Mutex
	cond  *sync.Cond
	tasks []task

	workers []*worker
	wg      sync.WaitGroup
	Stats   stats.Info
}

// NewPool returns a Pool ready to render cam's image through tracer onto
// fb. Start begins the actual worker goroutines.
func NewPool(cam *Camera, tracer shader.Tracer, fb Plotter) *Pool {
	p := &Pool{cam: cam, tracer: tracer, fb: fb}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Jobs reports the number of worker goroutines currently started.
func (p *Pool) Jobs() int { return len(p.workers) }

// Start splits the camera's region into row-strip tasks (strip height
// height/(max(n,4)*20), clamped to [1,16]), then launches n worker
// goroutines to drain them.
func (p *Pool) Start(n int) {
	if n < 0 {
		n = 0
	}

	min, max := p.cam.RegionMin(), p.cam.RegionMax()
	num := n
	if num < 4 {
		num = 4
	}
	num *= 20
	height := max[1] - min[1]
	incY := height / num
	if incY < 1 {
		incY = 1
	} else if incY > 16 {
		incY = 16
	}

	p.tasks = p.tasks[:0]
	for y := min[1]; y <= max[1]; y += incY {
		yEnd := y + incY - 1
		if yEnd > max[1] {
			yEnd = max[1]
		}
		p.tasks = append(p.tasks, task{minX: min[0], minY: y, maxX: max[0], maxY: yEnd})
	}

	p.workers = make([]*worker, n)
	for i := range p.workers {
		w := &worker{js: &shader.JobState{
			Cache: &hitlist.HitCache{},
			Stats: &stats.Info{},
			Rng:   rand.New(rand.NewSource(randomSeed())),
		}}
		p.workers[i] = w
		p.wg.Add(1)
		go func(w *worker) {
			defer p.wg.Done()
			p.jobMain(w)
		}(w)
	}
}

// jobMain repeatedly claims the next task from the shared stack and
// renders it until the stack empties or the worker is halted, then
// broadcasts so any WaitForJobs caller notices the queue has drained.
func (p *Pool) jobMain(w *worker) {
	for !w.halt.Load() {
		p.mu.Lock()
		if len(p.tasks) == 0 {
			w.halt.Store(true)
			p.mu.Unlock()
			p.cond.Broadcast()
			return
		}
		n := len(p.tasks) - 1
		t := p.tasks[n]
		p.tasks = p.tasks[:n]
		p.mu.Unlock()

		p.cam.Render(w.js, p.tracer, p.fb, t.minX, t.minY, t.maxX, t.maxY)
	}
}

// WaitForJobs blocks until the task queue drains or timeout elapses,
// returning the number of tasks still pending (0 once rendering is
// done). sync.Cond has no timed wait, so the wait itself runs in a
// helper goroutine that reports back over a channel.
func (p *Pool) WaitForJobs(timeout time.Duration) int {
	done := make(chan struct{})
	go func() {
		p.mu.Lock()
		for len(p.tasks) > 0 {
			p.cond.Wait()
		}
		p.mu.Unlock()
		close(done)
	}()

	select {
	case <-done:
		return 0
	case <-time.After(timeout):
		p.mu.Lock()
		n := len(p.tasks)
		p.mu.Unlock()
		return n
	}
}

// Stop halts every worker, waits for its goroutine to exit, and folds
// its per-worker stats into Pool.Stats -- any task still queued when
// Stop is called is left unrendered.
func (p *Pool) Stop() {
	for _, w := range p.workers {
		w.halt.Store(true)
	}
	p.wg.Wait()
	for _, w := range p.workers {
		p.Stats.Add(w.js.Stats)
	}
}

// randomSeed draws an RNG seed from the OS's randomness source.
func randomSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return int64(time.Now().UnixNano())
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
