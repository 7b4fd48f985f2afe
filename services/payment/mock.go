// Package paymentsvc carries the mobile-money processor implementations.
// The mock processor simulates an EcoCash/OneMoney settlement until the real
// gateway integration lands.
package paymentsvc

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/mbizohigh/chikoro/core/payment"
)

type mockProcessor struct {
	delay       time.Duration
	successRate float64
}

var _ payment.Processor = (*mockProcessor)(nil)

// NewMockProcessor simulates a gateway with a fixed settlement delay and a 90%
// success rate, matching what the sandbox gateway exhibits.
func NewMockProcessor() payment.Processor {
	return &mockProcessor{delay: 2 * time.Second, successRate: 0.9}
}

func (svc mockProcessor) Process(ctx context.Context, p payment.Payment) (payment.ProcessResult, error) {
	select {
	case <-ctx.Done():
		return payment.ProcessResult{}, ctx.Err()
	case <-time.After(svc.delay):
	}
	return payment.ProcessResult{
		Success:       rand.Float64() < svc.successRate,
		TransactionID: fmt.Sprintf("TXN%d", time.Now().UnixNano()/int64(time.Millisecond)),
	}, nil
}

// Stub is a deterministic processor for tests.
type Stub struct {
	Result payment.ProcessResult
	Err    error
	Last   *payment.Payment
}

var _ payment.Processor = (*Stub)(nil)

func (svc *Stub) Process(_ context.Context, p payment.Payment) (payment.ProcessResult, error) {
	svc.Last = &p
	return svc.Result, svc.Err
}
