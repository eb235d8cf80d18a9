package commands

import (
	"context"

	"github.com/google/uuid"
)

// InvoiceService is the outbound port to the billing collaborator. Checkout
// tolerates its failure: the stay completes and the failure is audited for
// retry by the back office.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, reservationID uuid.UUID, amount float64) error
}
