package model

import "context"

// SMSGateway dispatches text messages through a delivery provider.
// Delivery is fire-and-forget: the error is used only for user-facing
// messaging, there is no retry policy.
type SMSGateway interface {
	Send(ctx context.Context, phoneNumber, message string) error
}
