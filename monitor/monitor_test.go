package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/beeper/gitlab-build-gateway/internal/gitlab"
	"github.com/beeper/gitlab-build-gateway/internal/matrix"
	"github.com/stretchr/testify/require"
)

func TestNewMonitor(t *testing.T) {
	monitor := newMonitor(
		&gitlab.MockClient{},
		&matrix.MockSender{},
		monitorConfig{},
	)
	require.NotNil(t, monitor.errCh)
	require.NotNil(t, monitor.runGitlabHealthcheckLoopFn)
	require.NotNil(t, monitor.runMatrixHealthcheckLoopFn)
	require.NotNil(t, monitor.gitlabClient)
	require.NotNil(t, monitor.sender)
}

func TestRun(t *testing.T) {
	testCases := []struct {
		name          string
		cancelUpFront bool
		setup         func() *monitor
		assertions    func(error)
	}{
		{
			name: "healthcheck loop produced error",
			setup: func() *monitor {
				monitor := newMonitor(
					&gitlab.MockClient{},
					&matrix.MockSender{},
					monitorConfig{},
				)
				monitor.runGitlabHealthcheckLoopFn = func(ctx context.Context) {
					select {
					case monitor.errCh <- errors.New("something went wrong"):
					case <-ctx.Done():
					}
				}
				monitor.runMatrixHealthcheckLoopFn = func(ctx context.Context) {
					<-ctx.Done()
				}
				return monitor
			},
			assertions: func(err error) {
				require.Error(t, err)
				require.Contains(t, err.Error(), "something went wrong")
			},
		},
		{
			name:          "context canceled",
			cancelUpFront: true,
			setup: func() *monitor {
				monitor := newMonitor(
					&gitlab.MockClient{},
					&matrix.MockSender{},
					monitorConfig{},
				)
				monitor.runGitlabHealthcheckLoopFn = func(ctx context.Context) {
					<-ctx.Done()
				}
				monitor.runMatrixHealthcheckLoopFn = func(ctx context.Context) {
					<-ctx.Done()
				}
				return monitor
			},
			assertions: func(err error) {
				require.Error(t, err)
				require.Equal(t, context.Canceled, err)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			monitor := testCase.setup()
			if testCase.cancelUpFront {
				cancel()
			}
			errCh := make(chan error)
			go func() {
				errCh <- monitor.run(ctx)
			}()
			select {
			case err := <-errCh:
				testCase.assertions(err)
			case <-time.After(5 * time.Second):
				require.Fail(t, "timed out waiting for run to return")
			}
		})
	}
}
