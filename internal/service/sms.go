package service

import (
	"context"
	"fmt"

	"github.com/dtroode/referral-server/internal/logger"
	"github.com/dtroode/referral-server/internal/model"
	"github.com/dtroode/referral-server/internal/phone"
)

// SMS relays arbitrary messages through the gateway. Backs the raw
// send-sms utility endpoint.
type SMS struct {
	gateway model.SMSGateway
	logger  *logger.Logger
}

func NewSMS(gateway model.SMSGateway, logger *logger.Logger) *SMS {
	return &SMS{gateway: gateway, logger: logger}
}

func (s *SMS) Send(ctx context.Context, rawPhoneNumber, message string) error {
	phoneNumber, err := phone.Normalize(rawPhoneNumber)
	if err != nil {
		return err
	}

	if err := s.gateway.Send(ctx, phoneNumber, message); err != nil {
		s.logger.Error("SMS service: delivery failed",
			"phone_number", phoneNumber,
			"error", err.Error())
		return fmt.Errorf("%w: %s", model.ErrSMSDeliveryFailed, err)
	}

	s.logger.Info("SMS service: message sent", "phone_number", phoneNumber)
	return nil
}
