package payment

import (
	"context"
	"errors"
	"math"
)

// MinimumCharge is the smallest amount, in minor units, a session may carry
const MinimumCharge int64 = 50

var ErrInvalidRequest = errors.New("invalid checkout request")

// CheckoutRequest describes a single-item purchase
type CheckoutRequest struct {
	OrderID       string
	CourseID      uint
	CourseTitle   string
	Amount        int64 // minor units
	Currency      string
	CustomerName  string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
}

// Session is the hosted payment page opened for a request
type Session struct {
	Token       string
	RedirectURL string
	Raw         []byte
}

// Gateway creates hosted checkout sessions
type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*Session, error)
}

// ChargeAmount converts a major-unit price to minor units, floored at
// MinimumCharge
func ChargeAmount(price float64) int64 {
	amount := int64(math.Round(price * 100))
	if amount < MinimumCharge {
		return MinimumCharge
	}
	return amount
}

func (r CheckoutRequest) validate() error {
	if r.OrderID == "" || r.Amount <= 0 {
		return ErrInvalidRequest
	}
	return nil
}
