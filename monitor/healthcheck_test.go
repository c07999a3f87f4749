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

func TestRunGitlabHealthcheckLoop(t *testing.T) {
	testCases := []struct {
		name       string
		monitor    *monitor
		assertions func(error)
	}{
		{
			name: "error pinging GitLab API server",
			monitor: &monitor{
				gitlabClient: &gitlab.MockClient{
					VersionFn: func(context.Context) error {
						return errors.New("something went wrong")
					},
				},
			},
			assertions: func(err error) {
				require.Contains(
					t,
					err.Error(),
					"error checking GitLab API server connectivity",
				)
				require.Contains(t, err.Error(), "something went wrong")
			},
		},
		{
			name: "success",
			monitor: &monitor{
				gitlabClient: &gitlab.MockClient{
					VersionFn: func(context.Context) error {
						return nil
					},
				},
			},
			assertions: func(err error) {
				require.NoError(t, err)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			monitor := testCase.monitor
			monitor.config = monitorConfig{healthcheckInterval: time.Second}
			monitor.errCh = make(chan error)
			go monitor.runGitlabHealthcheckLoop(ctx)
			// Listen for errors
			select {
			case err := <-monitor.errCh:
				testCase.assertions(err)
			case <-ctx.Done():
				testCase.assertions(nil)
			}
		})
	}
}

func TestRunMatrixHealthcheckLoop(t *testing.T) {
	testCases := []struct {
		name       string
		monitor    *monitor
		assertions func(error)
	}{
		{
			name: "error pinging Matrix homeserver",
			monitor: &monitor{
				sender: &matrix.MockSender{
					PingFn: func(context.Context) error {
						return errors.New("something went wrong")
					},
				},
			},
			assertions: func(err error) {
				require.Contains(
					t,
					err.Error(),
					"error checking Matrix homeserver connectivity",
				)
				require.Contains(t, err.Error(), "something went wrong")
			},
		},
		{
			name: "success",
			monitor: &monitor{
				sender: &matrix.MockSender{
					PingFn: func(context.Context) error {
						return nil
					},
				},
			},
			assertions: func(err error) {
				require.NoError(t, err)
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			monitor := testCase.monitor
			monitor.config = monitorConfig{healthcheckInterval: time.Second}
			monitor.errCh = make(chan error)
			go monitor.runMatrixHealthcheckLoop(ctx)
			// Listen for errors
			select {
			case err := <-monitor.errCh:
				testCase.assertions(err)
			case <-ctx.Done():
				testCase.assertions(nil)
			}
		})
	}
}
