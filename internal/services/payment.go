package services

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PaymentResult is the outcome of a charge attempt.
type PaymentResult struct {
	Success       bool      `json:"success"`
	TransactionID string    `json:"transactionId"`
	Amount        string    `json:"amount"`
	PaymentMethod string    `json:"paymentMethod"`
	Timestamp     time.Time `json:"timestamp"`
}

// PaymentProcessor charges a payment method. The storefront ships with a
// mock; a real gateway implementation slots in behind this interface, so
// callers must be prepared for latency and failures even though the mock
// never fails.
type PaymentProcessor interface {
	Charge(ctx context.Context, amount, method string) (*PaymentResult, error)
}

// MockPaymentProcessor simulates a gateway: every charge succeeds after a
// fixed delay.
type MockPaymentProcessor struct {
	delay time.Duration
}

// NewMockPaymentProcessor creates a new MockPaymentProcessor.
func NewMockPaymentProcessor(delay time.Duration) *MockPaymentProcessor {
	return &MockPaymentProcessor{delay: delay}
}

// Charge waits the configured delay, honoring context cancellation, and
// returns a successful result with a synthetic transaction id.
func (p *MockPaymentProcessor) Charge(ctx context.Context, amount, method string) (*PaymentResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.delay):
	}

	return &PaymentResult{
		Success:       true,
		TransactionID: "txn_" + uuid.New().String(),
		Amount:        amount,
		PaymentMethod: method,
		Timestamp:     time.Now(),
	}, nil
}
