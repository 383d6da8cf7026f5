package payment

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChargeAmount(t *testing.T) {
	cases := map[float64]int64{
		0:     MinimumCharge,
		0.1:   MinimumCharge,
		0.5:   50,
		19.99: 1999,
		100:   10000,
	}
	for price, want := range cases {
		if got := ChargeAmount(price); got != want {
			t.Fatalf("ChargeAmount(%v) = %d, want %d", price, got, want)
		}
	}
}

func TestOfflineGatewayRedirectsToSuccess(t *testing.T) {
	s, err := OfflineGateway{}.CreateCheckout(context.Background(), CheckoutRequest{
		OrderID:    "ord-1",
		CourseID:   42,
		Amount:     1999,
		SuccessURL: "http://localhost:8080/success",
	})
	if err != nil {
		t.Fatalf("CreateCheckout: %v", err)
	}

	u, err := url.Parse(s.RedirectURL)
	if err != nil {
		t.Fatalf("parse redirect: %v", err)
	}
	if u.Path != "/success" || u.Query().Get("course_id") != "42" || u.Query().Get("order_id") != "ord-1" {
		t.Fatalf("unexpected redirect %q", s.RedirectURL)
	}
	if len(s.Raw) == 0 {
		t.Fatal("expected raw payload")
	}
}

func TestGatewaysRejectInvalidRequest(t *testing.T) {
	midtransGateway, err := NewMidtransGateway("SB-Mid-server-test", false, "IDR")
	if err != nil {
		t.Fatalf("NewMidtransGateway: %v", err)
	}
	gateways := []Gateway{OfflineGateway{}, midtransGateway}
	for _, g := range gateways {
		if _, err := g.CreateCheckout(context.Background(), CheckoutRequest{Amount: 100}); err != ErrInvalidRequest {
			t.Fatalf("%T: expected ErrInvalidRequest, got %v", g, err)
		}
	}
}

func TestNewMidtransGatewayRequiresRupiah(t *testing.T) {
	if _, err := NewMidtransGateway("SB-Mid-server-test", false, "usd"); !errors.Is(err, ErrUnsupportedCurrency) {
		t.Fatalf("expected ErrUnsupportedCurrency, got %v", err)
	}
	if _, err := NewMidtransGateway("SB-Mid-server-test", false, "idr"); err != nil {
		t.Fatalf("idr should be accepted, got %v", err)
	}
}

func TestBuildRequestChargesWholeRupiah(t *testing.T) {
	req, err := buildRequest(CheckoutRequest{
		OrderID:       "ord-7",
		CourseID:      7,
		CourseTitle:   "Go Fundamentals",
		Amount:        ChargeAmount(150000),
		Currency:      "idr",
		CustomerName:  "ada",
		CustomerEmail: "ada@example.com",
		SuccessURL:    "http://localhost:8080/success?course_id=7",
	})
	if err != nil {
		t.Fatalf("buildRequest: %v", err)
	}

	if req.TransactionDetails.OrderID != "ord-7" || req.TransactionDetails.GrossAmt != 150000 {
		t.Fatalf("unexpected transaction details: %+v", req.TransactionDetails)
	}
	items := *req.Items
	if len(items) != 1 || items[0].Price != 150000 || items[0].Qty != 1 || items[0].ID != "7" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if req.CustomerDetail.Email != "ada@example.com" {
		t.Fatalf("unexpected customer: %+v", req.CustomerDetail)
	}
	if req.Callbacks == nil || req.Callbacks.Finish != "http://localhost:8080/success?course_id=7" {
		t.Fatalf("unexpected callbacks: %+v", req.Callbacks)
	}
}

func TestBuildRequestRoundsUpMinimumCharge(t *testing.T) {
	req, err := buildRequest(CheckoutRequest{OrderID: "ord-0", Amount: ChargeAmount(0), Currency: "IDR"})
	if err != nil {
		t.Fatalf("buildRequest: %v", err)
	}
	if req.TransactionDetails.GrossAmt != 1 {
		t.Fatalf("expected 1 rupiah, got %d", req.TransactionDetails.GrossAmt)
	}
}

func TestBuildRequestRejectsOtherCurrency(t *testing.T) {
	_, err := buildRequest(CheckoutRequest{OrderID: "ord-1", Amount: 1000, Currency: "usd"})
	if !errors.Is(err, ErrUnsupportedCurrency) {
		t.Fatalf("expected ErrUnsupportedCurrency, got %v", err)
	}
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	title := strings.Repeat("a", 49) + "é course"
	got := truncate(title, maxItemName)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated name is not valid UTF-8: %q", got)
	}
	if got != strings.Repeat("a", 49) {
		t.Fatalf("unexpected truncation %q", got)
	}
	if truncate("short", maxItemName) != "short" {
		t.Fatal("short names should pass through")
	}
}
