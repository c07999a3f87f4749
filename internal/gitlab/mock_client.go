package gitlab

import (
	"context"
)

type MockClientFactory struct {
	NewClientFn func(baseURL, token string) Client
}

func (m *MockClientFactory) NewClient(baseURL, token string) Client {
	return m.NewClientFn(baseURL, token)
}

type MockClient struct {
	JobTraceFn func(
		ctx context.Context,
		projectID int64,
		jobID int64,
	) (string, error)
	VersionFn func(ctx context.Context) error
}

func (m *MockClient) JobTrace(
	ctx context.Context,
	projectID int64,
	jobID int64,
) (string, error) {
	return m.JobTraceFn(ctx, projectID, jobID)
}

func (m *MockClient) Version(ctx context.Context) error {
	return m.VersionFn(ctx)
}
