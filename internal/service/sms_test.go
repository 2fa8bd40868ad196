package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/referral-server/internal/logger"
	"github.com/dtroode/referral-server/internal/mocks"
	"github.com/dtroode/referral-server/internal/model"
)

func TestSMS_Send(t *testing.T) {
	ctx := context.Background()

	gateway := &mocks.SMSGateway{}
	gateway.On("Send", ctx, "+79174044144", "hello").Return(nil).Once()

	svc := NewSMS(gateway, logger.New(0))

	require.NoError(t, svc.Send(ctx, "+7 917 404 41 44", "hello"))
	gateway.AssertExpectations(t)
}

func TestSMS_Send_InvalidPhoneNumber(t *testing.T) {
	ctx := context.Background()

	gateway := &mocks.SMSGateway{}
	svc := NewSMS(gateway, logger.New(0))

	err := svc.Send(ctx, "12345", "hello")
	require.ErrorIs(t, err, model.ErrInvalidPhoneNumber)
	gateway.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestSMS_Send_GatewayFailure(t *testing.T) {
	ctx := context.Background()

	gateway := &mocks.SMSGateway{}
	gateway.On("Send", ctx, "+79174044144", "hello").Return(assert.AnError).Once()

	svc := NewSMS(gateway, logger.New(0))

	err := svc.Send(ctx, "+79174044144", "hello")
	require.Error(t, err)
}
