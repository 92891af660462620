package com

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrCallTimeout is returned when the caller stops waiting for a job that
	// is already running. The job itself still runs to completion.
	ErrCallTimeout = errors.New("COM call did not finish before the deadline")
	// ErrClosed is returned for jobs submitted after Close.
	ErrClosed = errors.New("COM apartment is closed")
)

// Apartment owns one OS thread with COM initialised in single-threaded
// apartment mode. Office objects must only be touched from the thread that
// created them, so every call goes through Do.
//
// Jobs run one at a time. A job must not call Do on the same apartment.
type Apartment struct {
	jobs      chan *job
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

type job struct {
	fn  func() error
	res chan error
}

// OpenApartment starts the apartment thread and runs initialize on it.
// uninitialize runs on the same thread when the apartment is closed.
func OpenApartment(initialize func() error, uninitialize func()) (*Apartment, error) {
	a := &Apartment{
		jobs: make(chan *job),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	ready := make(chan error, 1)
	go a.loop(initialize, uninitialize, ready)
	if err := <-ready; err != nil {
		return nil, errors.Wrap(err, "failed to initialize COM")
	}
	return a, nil
}

func (a *Apartment) loop(initialize func() error, uninitialize func(), ready chan<- error) {
	defer close(a.done)
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if initialize != nil {
		if err := initialize(); err != nil {
			ready <- err
			return
		}
	}
	if uninitialize != nil {
		defer uninitialize()
	}
	ready <- nil

	for {
		select {
		case j := <-a.jobs:
			j.res <- run(j.fn)
		case <-a.quit:
			return
		}
	}
}

func run(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v\n%s", r, debug.Stack())
		}
	}()
	return fn()
}

// Do runs fn on the apartment thread and waits for it.
func (a *Apartment) Do(ctx context.Context, fn func() error) error {
	j := &job{fn: fn, res: make(chan error, 1)}
	select {
	case a.jobs <- j:
	case <-ctx.Done():
		return ctx.Err()
	case <-a.quit:
		return ErrClosed
	}
	select {
	case err := <-j.res:
		return err
	case <-ctx.Done():
		return errors.Wrap(ErrCallTimeout, ctx.Err().Error())
	}
}

// Close stops the apartment after the running job, if any, and waits for
// the thread to uninitialise COM.
func (a *Apartment) Close() {
	a.closeOnce.Do(func() {
		close(a.quit)
	})
	<-a.done
}
