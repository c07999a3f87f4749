package gitlab

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Client is an interface for the narrow slice of the GitLab REST API v4 that
// the gateway consumes.
type Client interface {
	// JobTrace retrieves the execution trace of the specified job as plain
	// text.
	JobTrace(ctx context.Context, projectID, jobID int64) (string, error)
	// Version confirms connectivity by retrieving the GitLab instance's
	// version endpoint.
	Version(ctx context.Context) error
}

// ClientFactory is an interface for components that can construct a Client
// for a given GitLab instance. Configuration is hot-reloadable, so clients
// are built per snapshot rather than once at startup.
type ClientFactory interface {
	NewClient(baseURL, token string) Client
}

type clientFactory struct{}

// NewClientFactory returns an implementation of the ClientFactory interface.
func NewClientFactory() ClientFactory {
	return &clientFactory{}
}

func (c *clientFactory) NewClient(baseURL, token string) Client {
	return &client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			// A hung GitLab endpoint must not stall webhook dispatch
			// indefinitely.
			Timeout: 30 * time.Second,
		},
	}
}

type client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func (c *client) JobTrace(
	ctx context.Context,
	projectID int64,
	jobID int64,
) (string, error) {
	body, err := c.get(
		ctx,
		fmt.Sprintf(
			"%s/api/v4/projects/%d/jobs/%d/trace",
			c.baseURL,
			projectID,
			jobID,
		),
	)
	if err != nil {
		return "", errors.Wrapf(
			err,
			"error fetching trace for job %d of project %d",
			jobID,
			projectID,
		)
	}
	return string(body), nil
}

func (c *client) Version(ctx context.Context) error {
	_, err := c.get(ctx, fmt.Sprintf("%s/api/v4/version", c.baseURL))
	return errors.Wrap(err, "error fetching GitLab version")
}

func (c *client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "error creating request for %s", url)
	}
	req.Header.Set("PRIVATE-TOKEN", c.token)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf(
			"received status %d from GitLab",
			resp.StatusCode,
		)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "error reading response body")
	}
	return body, nil
}
