package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// SMSGateway is a mock implementation of model.SMSGateway.
type SMSGateway struct {
	mock.Mock
}

func (m *SMSGateway) Send(ctx context.Context, phoneNumber, message string) error {
	args := m.Called(ctx, phoneNumber, message)
	return args.Error(0)
}
