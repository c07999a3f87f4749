package matrix

import (
	"context"
)

type MockSender struct {
	SendNoticeFn func(
		ctx context.Context,
		roomID string,
		message string,
	) error
	PingFn func(ctx context.Context) error
}

func (m *MockSender) SendNotice(
	ctx context.Context,
	roomID string,
	message string,
) error {
	return m.SendNoticeFn(ctx, roomID, message)
}

func (m *MockSender) Ping(ctx context.Context) error {
	return m.PingFn(ctx)
}
