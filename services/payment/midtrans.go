package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// MidtransCurrency is the only currency Snap settles in
const MidtransCurrency = "idr"

// maxItemName is the longest item name Snap accepts, in bytes
const maxItemName = 50

var ErrUnsupportedCurrency = errors.New("unsupported checkout currency")

// MidtransGateway opens Snap hosted payment pages
type MidtransGateway struct {
	client snap.Client
}

// NewMidtransGateway builds a Snap client for the sandbox or production
// environment. Prices must already be stored in rupiah.
func NewMidtransGateway(serverKey string, production bool, currency string) (*MidtransGateway, error) {
	if !strings.EqualFold(currency, MidtransCurrency) {
		return nil, fmt.Errorf("%w: midtrans charges %s, got %q", ErrUnsupportedCurrency, MidtransCurrency, currency)
	}

	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	g := &MidtransGateway{}
	g.client.New(serverKey, env)
	return g, nil
}

// CreateCheckout implements Gateway
func (g *MidtransGateway) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Session, error) {
	snapReq, err := buildRequest(req)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, merr := g.client.CreateTransaction(snapReq)
	if merr != nil {
		return nil, fmt.Errorf("midtrans: %s", merr.GetMessage())
	}

	raw, _ := json.Marshal(res)
	return &Session{Token: res.Token, RedirectURL: res.RedirectURL, Raw: raw}, nil
}

// buildRequest maps a checkout onto a Snap transaction. Amount arrives in
// sen and Snap takes whole rupiah, so it is rounded up.
func buildRequest(req CheckoutRequest) (*snap.Request, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if !strings.EqualFold(req.Currency, MidtransCurrency) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, req.Currency)
	}

	gross := (req.Amount + 99) / 100

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.CustomerName,
			Email: req.CustomerEmail,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       strconv.FormatUint(uint64(req.CourseID), 10),
				Name:     truncate(req.CourseTitle, maxItemName),
				Price:    gross,
				Qty:      1,
				Category: "course",
			},
		},
	}
	if req.SuccessURL != "" {
		snapReq.Callbacks = &snap.Callbacks{Finish: req.SuccessURL}
	}
	return snapReq, nil
}

// truncate cuts s to at most n bytes without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
