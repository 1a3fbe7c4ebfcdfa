package systems

import (
	"runtime"
	"sync"
)

// span is a contiguous particle range handed to one worker.
type span struct {
	start, end int
}

// fieldPool runs a per-particle function over disjoint chunks using
// persistent workers, so a tick pays no goroutine start-up cost.
type fieldPool struct {
	numWorkers int
	fn         func(start, end int)

	workChan chan span
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newFieldPool(workers int) *fieldPool {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &fieldPool{numWorkers: workers}
}

// start launches the workers. fn must only touch particles in [start, end).
func (p *fieldPool) start(fn func(start, end int)) {
	if p.running {
		return
	}
	p.fn = fn
	p.workChan = make(chan span, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// stop signals all workers to exit and waits for them.
func (p *fieldPool) stop() {
	if !p.running {
		return
	}
	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

func (p *fieldPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.stopChan:
			return
		case s, ok := <-p.workChan:
			if !ok {
				return
			}
			p.fn(s.start, s.end)
			p.doneChan <- struct{}{}
		}
	}
}

// run splits [0, count) into one chunk per worker and blocks until all are done.
func (p *fieldPool) run(count int) {
	chunk := (count + p.numWorkers - 1) / p.numWorkers
	sent := 0
	for start := 0; start < count; start += chunk {
		end := start + chunk
		if end > count {
			end = count
		}
		p.workChan <- span{start: start, end: end}
		sent++
	}
	for i := 0; i < sent; i++ {
		<-p.doneChan
	}
}
