package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// runGitlabHealthcheckLoop checks connectivity between the monitor and the
// GitLab API server.
func (m *monitor) runGitlabHealthcheckLoop(ctx context.Context) {
	ticker := time.NewTicker(m.config.healthcheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.gitlabClient.Version(ctx); err != nil {
				m.errCh <- errors.Wrap(
					err,
					"error checking GitLab API server connectivity",
				)
			}
		}
	}
}

// runMatrixHealthcheckLoop checks connectivity between the monitor and the
// Matrix homeserver.
func (m *monitor) runMatrixHealthcheckLoop(ctx context.Context) {
	ticker := time.NewTicker(m.config.healthcheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.sender.Ping(ctx); err != nil {
				m.errCh <- errors.Wrap(
					err,
					"error checking Matrix homeserver connectivity",
				)
			}
		}
	}
}
