package main

import (
	"context"
	"sync"
	"time"

	"github.com/beeper/gitlab-build-gateway/internal/gitlab"
	"github.com/beeper/gitlab-build-gateway/internal/matrix"
)

// monitorConfig encapsulates configuration options for the monitor component.
type monitorConfig struct {
	healthcheckInterval time.Duration
}

// monitor is a component that continuously checks connectivity to the two
// collaborators the gateway depends on-- the GitLab API and the Matrix
// homeserver-- so that a broken token or unreachable endpoint is noticed
// before the next build completes.
type monitor struct {
	config monitorConfig
	// All of the monitor's goroutines will send fatal errors here
	errCh chan error
	// These internal functions are overridable for testing purposes
	runGitlabHealthcheckLoopFn func(context.Context)
	runMatrixHealthcheckLoopFn func(context.Context)
	gitlabClient               gitlab.Client
	sender                     matrix.Sender
}

// newMonitor initializes and returns a monitor.
func newMonitor(
	gitlabClient gitlab.Client,
	sender matrix.Sender,
	config monitorConfig,
) *monitor {
	m := &monitor{
		config: config,
		errCh:  make(chan error),
	}
	m.runGitlabHealthcheckLoopFn = m.runGitlabHealthcheckLoop
	m.runMatrixHealthcheckLoopFn = m.runMatrixHealthcheckLoop
	m.gitlabClient = gitlabClient
	m.sender = sender
	return m
}

// run coordinates the monitor's healthcheck loops. If any one of them
// encounters an unrecoverable error, everything shuts down.
func (m *monitor) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		m.runGitlabHealthcheckLoopFn(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		m.runMatrixHealthcheckLoopFn(ctx)
	}()

	// Wait for an error or a completed context
	var err error
	select {
	case err = <-m.errCh:
		cancel() // Shut it all down
	case <-ctx.Done():
		err = ctx.Err()
	}

	// Adapt wg to a channel that can be used in a select
	doneCh := make(chan struct{})
	go func() {
		defer close(doneCh)
		wg.Wait()
	}()

	select {
	case <-doneCh:
	case <-time.After(3 * time.Second):
		// Probably doesn't matter that this is hardcoded. Relatively speaking, 3
		// seconds is a lot of time for things to wrap up.
	}

	return err
}
