// Package mainthread serializes toolkit calls onto one locked OS thread.
//
// Toolkits such as Cocoa (through SDL) only accept calls from the process
// main thread, and Win32 ties a window's message queue to the thread that
// created it. The main goroutine is pinned to the main thread at init. A
// program that calls Run hands that thread over; otherwise a dedicated
// locked goroutine is started on first use.
package mainthread

import (
	"runtime"
	"sync"
	"sync/atomic"
)

func init() {
	runtime.LockOSThread()
}

// Thread executes queued functions in order on one OS thread.
type Thread struct {
	calls chan func()
}

func newThread() *Thread {
	return &Thread{calls: make(chan func(), 16)}
}

var (
	mainThread = newThread()
	serving    atomic.Bool

	workerOnce sync.Once
	worker     *Thread
)

// Run calls fn on a new goroutine and services Call requests on the calling
// goroutine until fn returns. Call it from main.
func Run(fn func()) {
	done := make(chan struct{})
	serving.Store(true)
	defer serving.Store(false)

	go func() {
		defer close(done)
		fn()
	}()

	for {
		select {
		case f := <-mainThread.calls:
			f()
		case <-done:
			return
		}
	}
}

// Serving reports whether Run currently owns the main thread.
func Serving() bool {
	return serving.Load()
}

// Default returns the main thread when Run is serving, or the shared
// worker thread otherwise. A backend must keep using the thread it was
// created on.
func Default() *Thread {
	if serving.Load() {
		return mainThread
	}
	workerOnce.Do(func() {
		worker = newThread()
		go func() {
			runtime.LockOSThread()
			for f := range worker.calls {
				f()
			}
		}()
	})
	return worker
}

// Call runs f on t and waits for it to return.
func (t *Thread) Call(f func()) {
	done := make(chan struct{})
	t.calls <- func() {
		defer close(done)
		f()
	}
	<-done
}

// CallErr is Call for functions returning an error.
func (t *Thread) CallErr(f func() error) error {
	var err error
	t.Call(func() { err = f() })
	return err
}
