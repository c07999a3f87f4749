package matrix

import (
	"context"

	"github.com/pkg/errors"
	"maunium.net/go/mautrix"
	"maunium.net/go/mautrix/event"
	"maunium.net/go/mautrix/format"
	"maunium.net/go/mautrix/id"
)

// Sender is an interface for components that can deliver notifications to a
// Matrix room.
type Sender interface {
	// SendNotice renders the given markdown message and sends it to the given
	// room as an m.notice event.
	SendNotice(ctx context.Context, roomID string, message string) error
	// Ping confirms connectivity to the homeserver.
	Ping(ctx context.Context) error
}

type sender struct {
	client *mautrix.Client
}

// NewSender returns a Sender that delivers messages through the given
// homeserver using a pre-provisioned access token.
func NewSender(
	homeserverURL string,
	userID string,
	accessToken string,
) (Sender, error) {
	client, err := mautrix.NewClient(
		homeserverURL,
		id.UserID(userID),
		accessToken,
	)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error creating Matrix client for homeserver %s",
			homeserverURL,
		)
	}
	return &sender{
		client: client,
	}, nil
}

func (s *sender) SendNotice(
	ctx context.Context,
	roomID string,
	message string,
) error {
	content := format.RenderMarkdown(message, true, false)
	content.MsgType = event.MsgNotice
	if _, err := s.client.SendMessageEvent(
		ctx,
		id.RoomID(roomID),
		event.EventMessage,
		&content,
	); err != nil {
		return errors.Wrapf(err, "error sending notice to room %s", roomID)
	}
	return nil
}

func (s *sender) Ping(ctx context.Context) error {
	if _, err := s.client.Versions(ctx); err != nil {
		return errors.Wrap(err, "error checking homeserver connectivity")
	}
	return nil
}
