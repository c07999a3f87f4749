package webhooks

import (
	"context"
	"strconv"

	"github.com/beeper/gitlab-build-gateway/internal/config"
	"github.com/beeper/gitlab-build-gateway/internal/gitlab"
	"github.com/beeper/gitlab-build-gateway/internal/matrix"
	"github.com/pkg/errors"
)

// ErrUnknownProject indicates that a webhook referenced a project that does
// not exist in the gateway's configuration.
var ErrUnknownProject = errors.New("webhook references an unknown project")

// dispatchError couples a failure with the public detail line the HTTP layer
// may safely return to the caller. The underlying cause is logged, never
// surfaced.
type dispatchError struct {
	detail string
	cause  error
}

func (d *dispatchError) Error() string {
	return d.cause.Error()
}

func (d *dispatchError) Unwrap() error {
	return d.cause
}

// ConfigStore is an interface for components that can provide the current
// domain configuration snapshot.
type ConfigStore interface {
	// Get returns the current configuration snapshot.
	Get() *config.Config
}

// Service is an interface for components that can process GitLab build
// webhooks. Implementations of this interface are transport-agnostic.
type Service interface {
	// Handle processes one webhook destined for the given room and returns a
	// human-readable outcome line.
	Handle(ctx context.Context, roomID string, payload Payload) (string, error)
}

type service struct {
	configStore         ConfigStore
	gitlabClientFactory gitlab.ClientFactory
	sender              matrix.Sender
}

// NewService returns an implementation of the Service interface for
// processing GitLab build webhooks.
func NewService(
	configStore ConfigStore,
	gitlabClientFactory gitlab.ClientFactory,
	sender matrix.Sender,
) Service {
	return &service{
		configStore:         configStore,
		gitlabClientFactory: gitlabClientFactory,
		sender:              sender,
	}
}

func (s *service) Handle(
	ctx context.Context,
	roomID string,
	payload Payload,
) (string, error) {
	snapshot := s.configStore.Get()

	project, ok :=
		snapshot.Projects[strconv.FormatInt(payload.ProjectID, 10)]
	if !ok {
		return "", errors.Wrapf(
			ErrUnknownProject,
			"project %d",
			payload.ProjectID,
		)
	}

	if payload.BuildStatus != "success" {
		return "Non-success webhook ignored", nil
	}

	// From here on, the webhook has side effects in flight. Detach from the
	// request context so a disconnecting caller cannot abort a notification
	// that has already started sending. The upstream fetch still has its own
	// timeout.
	ctx = context.WithoutCancel(ctx)

	resolver, err := s.resolverFor(snapshot, project.Type)
	if err != nil {
		return "", errors.Wrapf(err, "error resolving project %d", payload.ProjectID)
	}
	res, err := resolver.resolve(ctx, project, payload)
	if err != nil {
		return "", err
	}
	if res.skip != "" {
		return res.skip, nil
	}

	message, err := composeMessage(project, payload, res.params)
	if err != nil {
		return "", errors.Wrapf(
			err,
			"error composing notification for project %d",
			payload.ProjectID,
		)
	}

	// Delivery is at-most-once; the CI system owns redelivery.
	if err = s.sender.SendNotice(ctx, roomID, message); err != nil {
		return "", &dispatchError{
			detail: "Failed to send notification to Matrix",
			cause:  err,
		}
	}
	return "Notification sent", nil
}
