package receipt

import (
	"strings"
	"testing"
	"time"

	"github.com/moringa/darasa-api/utils/pdfvalidation"
)

func TestRenderReceipt(t *testing.T) {
	r := NewPDFRenderer("Moringa School", "")

	content, err := r.Render(Receipt{
		StudentName: "ada",
		Email:       "ada@example.com",
		CourseTitle: "Go Fundamentals",
		Price:       19.99,
		PurchasedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	check, err := pdfvalidation.Inspect(content)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if check.PageCount != 1 {
		t.Fatalf("expected 1 page, got %d", check.PageCount)
	}

	for _, want := range []string{"Moringa School", "Thank you for enrolling", "ada@example.com", "Go Fundamentals", "19.99", "2026-03-14"} {
		if !strings.Contains(check.Text, want) {
			t.Fatalf("receipt text missing %q:\n%s", want, check.Text)
		}
	}
}

func TestRenderIgnoresMissingLogo(t *testing.T) {
	r := NewPDFRenderer("Moringa School", "/nonexistent/logo.png")
	if _, err := r.Render(Receipt{StudentName: "x", PurchasedAt: time.Now()}); err != nil {
		t.Fatalf("missing logo should be skipped, got %v", err)
	}
}

func TestRenderKeepsAccentedText(t *testing.T) {
	r := NewPDFRenderer("École Moringa", "")

	content, err := r.Render(Receipt{
		StudentName: "José",
		Email:       "jose@example.com",
		CourseTitle: "Café Basics",
		Price:       5,
		PurchasedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	check, err := pdfvalidation.Inspect(content)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	for _, want := range []string{"École Moringa", "José", "Café Basics"} {
		if !strings.Contains(check.Text, want) {
			t.Fatalf("receipt text missing %q:\n%s", want, check.Text)
		}
	}
}
