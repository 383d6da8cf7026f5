package payment

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

// OfflineGateway skips the payment provider and sends the buyer straight to
// the success page. Used when no provider key is configured.
type OfflineGateway struct{}

// CreateCheckout implements Gateway
func (OfflineGateway) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Session, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	redirect, err := url.Parse(req.SuccessURL)
	if err != nil {
		return nil, err
	}
	q := redirect.Query()
	q.Set("course_id", strconv.FormatUint(uint64(req.CourseID), 10))
	q.Set("order_id", req.OrderID)
	redirect.RawQuery = q.Encode()

	raw, _ := json.Marshal(map[string]interface{}{"mode": "offline", "order_id": req.OrderID, "amount": req.Amount})
	return &Session{Token: req.OrderID, RedirectURL: redirect.String(), Raw: raw}, nil
}
