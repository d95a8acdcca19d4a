// Package payments isolates the card-processing boundary. Tokenization and
// the real processor integration live outside this repo; services only see
// the Gateway interface.
package payments

import "context"

type Gateway interface {
	// ChargeStoredMethod charges the customer's saved payment method and
	// returns the gateway's charge reference.
	ChargeStoredMethod(ctx context.Context, customerRef string, amountCents int32, description string) (string, error)

	// Name identifies the gateway on persisted transaction rows.
	Name() string
}
