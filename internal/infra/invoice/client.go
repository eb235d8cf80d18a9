package invoice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pousada-pms/internal/pkg/errs"
	"pousada-pms/internal/usecase/commands"

	"github.com/google/uuid"
)

var errInvoiceRequestFailed = errs.New("invoice request failed")

// Client posts checkout invoices to the billing collaborator. Callers
// treat failures as non-fatal; see the checkout command.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) commands.InvoiceService {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) CreateInvoice(ctx context.Context, reservationID uuid.UUID, amount float64) error {
	payload, err := json.Marshal(map[string]any{
		"reservation_id": reservationID,
		"amount":         amount,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode invoice payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/invoices", bytes.NewReader(payload))
	if err != nil {
		return errs.Wrap(err, "failed to build invoice request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.Mark(err, errInvoiceRequestFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return errs.Mark(fmt.Errorf("billing service returned %d", resp.StatusCode), errInvoiceRequestFailed)
	}
	return nil
}
