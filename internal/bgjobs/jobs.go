package bgjobs

import (
	"context"
	"sync"

	"github.com/petuhovskiy/qsampler/internal/log"
)

// Register is a registry of all background jobs.
// Has a wait group to wait for all jobs to finish.
type Register struct {
	all sync.WaitGroup
}

func NewRegister() *Register {
	return &Register{}
}

// Go a new background task.
func (r *Register) Go(f func()) {
	r.all.Add(1)

	go func() {
		defer r.all.Done()
		f()
	}()
}

// WaitAll blocks until all jobs finish or ctx is done.
func (r *Register) WaitAll(ctx context.Context) error {
	log.Debug(ctx, "waiting for all background jobs to finish")

	done := make(chan struct{})
	go func() {
		r.all.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
