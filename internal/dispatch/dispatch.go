// ABOUTME: Execution-context abstraction separating UI-affine and background-affine delivery
// ABOUTME: Serial models the host's interactive queue; Goroutine is the background default

package dispatch

import (
	"log/slog"
	"sync"
)

// Dispatcher schedules a function for execution on some execution context.
// Implementations decide where and in what order fn runs; Dispatch itself
// must not wait for fn to complete.
type Dispatcher interface {
	Dispatch(fn func())
}

// Func adapts an ordinary function to the Dispatcher interface.
type Func func(fn func())

// Dispatch calls f(fn).
func (f Func) Dispatch(fn func()) { f(fn) }

// Goroutine runs each dispatched function on its own goroutine. This is
// the background-affine default used for create/fetch/list delivery.
type Goroutine struct{}

// Dispatch starts fn on a new goroutine.
func (Goroutine) Dispatch(fn func()) { go fn() }

// Serial executes dispatched functions one at a time, in submission order,
// on a single dedicated goroutine. It stands in for the host platform's
// interactive (main) queue when no real one is available, and is the
// expected shape of any adapter bridging to one: downstream consumers of
// join results mutate interactive membership state and rely on this
// ordering.
type Serial struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	stopped bool
	done    chan struct{}
	logger  *slog.Logger
}

// NewSerial creates a running serial dispatcher. Pass nil logger for
// default.
func NewSerial(name string, logger *slog.Logger) *Serial {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Serial{
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		logger: logger.With("component", "dispatch", "queue", name),
	}
	go s.run()
	return s
}

func (s *Serial) run() {
	defer close(s.done)
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			if s.stopped {
				s.mu.Unlock()
				return
			}
			s.mu.Unlock()
			<-s.wake
			continue
		}
		fn := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()
		fn()
	}
}

// Dispatch enqueues fn for execution. Functions run strictly in the order
// they were dispatched. Dispatch never blocks, so a function running on
// the queue may safely dispatch follow-up work onto the same queue.
// Dispatching after Stop drops fn.
func (s *Serial) Dispatch(fn func()) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		s.logger.Debug("dropped dispatch after stop")
		return
	}
	s.queue = append(s.queue, fn)
	s.mu.Unlock()
	s.signal()
}

// Stop drains the queue and terminates the worker goroutine. It blocks
// until every previously dispatched function has run.
func (s *Serial) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.stopped = true
	s.mu.Unlock()
	s.signal()
	<-s.done
}

// signal nudges the worker without blocking; a single buffered token is
// enough because the worker re-checks the queue under the lock.
func (s *Serial) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}
