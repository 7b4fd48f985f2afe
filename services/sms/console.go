// Package smssvc carries the SMS gateway implementations. A real deployment
// would plug in Twilio or Africa's Talking here; the console service stands in
// for them until an account is provisioned.
package smssvc

import (
	"context"
	"log"
	"sync"

	"github.com/mbizohigh/chikoro/core"
)

type consoleService struct {
	disableOutput bool
}

var _ core.SMSService = (*consoleService)(nil)

func NewConsoleService() core.SMSService {
	return &consoleService{}
}

func (svc consoleService) Send(_ context.Context, msg core.SMSMessage) error {
	if !svc.disableOutput {
		log.Printf("Sending SMS to %s: %s", msg.Recipient, msg.Body)
	}
	return nil
}

// Mock captures sent messages for tests and can be told to fail.
type Mock struct {
	mu       sync.Mutex
	Sent     []core.SMSMessage
	FailWith error
}

var _ core.SMSService = (*Mock)(nil)

func NewMock() *Mock {
	return &Mock{}
}

func (svc *Mock) Send(_ context.Context, msg core.SMSMessage) error {
	if svc.FailWith != nil {
		return svc.FailWith
	}
	svc.mu.Lock()
	svc.Sent = append(svc.Sent, msg)
	svc.mu.Unlock()
	return nil
}
