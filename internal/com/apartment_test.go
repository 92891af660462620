package com

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApartmentRunsJobsSerially(t *testing.T) {
	var initialized, uninitialized atomic.Bool
	a, err := OpenApartment(func() error {
		initialized.Store(true)
		return nil
	}, func() {
		uninitialized.Store(true)
	})
	require.NoError(t, err)
	assert.True(t, initialized.Load())

	var running, maxRunning atomic.Int32
	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			done <- a.Do(context.Background(), func() error {
				n := running.Add(1)
				if n > maxRunning.Load() {
					maxRunning.Store(n)
				}
				time.Sleep(time.Millisecond)
				running.Add(-1)
				return nil
			})
		}()
	}
	for i := 0; i < 8; i++ {
		require.NoError(t, <-done)
	}
	assert.Equal(t, int32(1), maxRunning.Load())

	a.Close()
	assert.True(t, uninitialized.Load())
	assert.ErrorIs(t, a.Do(context.Background(), func() error { return nil }), ErrClosed)
}

func TestApartmentInitFailure(t *testing.T) {
	_, err := OpenApartment(func() error { return errors.New("no COM here") }, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no COM here")
}

func TestApartmentRecoversPanics(t *testing.T) {
	a, err := OpenApartment(nil, nil)
	require.NoError(t, err)
	defer a.Close()

	err = a.Do(context.Background(), func() error { panic("boom") })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	assert.NoError(t, a.Do(context.Background(), func() error { return nil }), "apartment survives a panic")
}

func TestApartmentTimeoutWhileRunning(t *testing.T) {
	a, err := OpenApartment(nil, nil)
	require.NoError(t, err)
	defer a.Close()

	release := make(chan struct{})
	finished := make(chan struct{})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err = a.Do(ctx, func() error {
		<-release
		close(finished)
		return nil
	})
	assert.ErrorIs(t, err, ErrCallTimeout)

	close(release)
	<-finished
}

func TestApartmentContextDoneBeforePickup(t *testing.T) {
	a, err := OpenApartment(nil, nil)
	require.NoError(t, err)
	defer a.Close()

	block := make(chan struct{})
	go a.Do(context.Background(), func() error {
		<-block
		return nil
	})
	time.Sleep(5 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = a.Do(ctx, func() error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrCallTimeout)
	close(block)
}
