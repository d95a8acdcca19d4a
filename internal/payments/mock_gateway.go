package payments

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"rentmatch-backend/internal/logger"
)

// ErrChargeDeclined is returned when the gateway declines the charge.
var ErrChargeDeclined = errors.New("charge declined")

// MockGateway is the local development and test gateway. Charges succeed and
// get a uuid reference unless the customer ref has been scripted to fail.
type MockGateway struct {
	mu       sync.Mutex
	declined map[string]bool
	charges  []MockCharge
}

type MockCharge struct {
	CustomerRef string
	AmountCents int32
	Description string
	ChargeRef   string
}

func NewMockGateway() *MockGateway {
	return &MockGateway{declined: make(map[string]bool)}
}

func (g *MockGateway) Name() string { return "mock" }

// DeclineCustomer scripts future charges for the customer ref to fail.
func (g *MockGateway) DeclineCustomer(customerRef string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.declined[customerRef] = true
}

// Charges returns a copy of every charge the gateway has accepted.
func (g *MockGateway) Charges() []MockCharge {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]MockCharge, len(g.charges))
	copy(out, g.charges)
	return out
}

func (g *MockGateway) ChargeStoredMethod(ctx context.Context, customerRef string, amountCents int32, description string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	logger.ExternalServiceCall("mock-gateway", "ChargeStoredMethod", "customer_ref", customerRef, "amount_cents", amountCents)
	if g.declined[customerRef] {
		logger.ExternalServiceResult("mock-gateway", "ChargeStoredMethod", ErrChargeDeclined)
		return "", ErrChargeDeclined
	}

	ref := "ch_" + uuid.NewString()
	g.charges = append(g.charges, MockCharge{
		CustomerRef: customerRef,
		AmountCents: amountCents,
		Description: description,
		ChargeRef:   ref,
	})
	logger.ExternalServiceResult("mock-gateway", "ChargeStoredMethod", nil, "charge_ref", ref)
	return ref, nil
}
