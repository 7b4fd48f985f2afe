package core

import "context"

type (
	SMSMessage struct {
		Recipient string
		Body      string
	}

	// SMSService is any service that can deliver text messages through an SMS gateway.
	SMSService interface {
		Send(ctx context.Context, msg SMSMessage) error
	}
)
