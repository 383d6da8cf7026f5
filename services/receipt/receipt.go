package receipt

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/moringa/darasa-api/utils/pdfvalidation"
)

// Receipt is everything printed on a purchase receipt
type Receipt struct {
	StudentName string
	Email       string
	CourseTitle string
	Price       float64
	PurchasedAt time.Time
}

// Renderer turns a receipt into a downloadable document
type Renderer interface {
	Render(r Receipt) ([]byte, error)
}

// PDFRenderer renders single-page A4 receipts
type PDFRenderer struct {
	SchoolName string
	LogoPath   string
}

func NewPDFRenderer(schoolName, logoPath string) *PDFRenderer {
	return &PDFRenderer{SchoolName: schoolName, LogoPath: logoPath}
}

// Render implements Renderer
func (p *PDFRenderer) Render(r Receipt) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Course receipt", false)
	doc.SetAuthor(p.SchoolName, true)
	doc.AddPage()
	// core fonts are cp1252, so text must be translated from UTF-8
	tr := doc.UnicodeTranslatorFromDescriptor("")

	if p.LogoPath != "" {
		if _, err := os.Stat(p.LogoPath); err == nil {
			doc.ImageOptions(p.LogoPath, 10, 10, 30, 0, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
		}
	}

	doc.SetY(45)
	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 12, tr(p.SchoolName), "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 13)
	doc.CellFormat(0, 10, "Thank you for enrolling in our course.", "", 1, "C", false, 0, "")
	doc.Ln(8)

	rows := [][2]string{
		{"Student Name", r.StudentName},
		{"Email", r.Email},
		{"Course Title", r.CourseTitle},
		{"Price", fmt.Sprintf("$%.2f", r.Price)},
		{"Date of Purchase", r.PurchasedAt.Format("2006-01-02")},
	}
	for _, row := range rows {
		doc.SetFont("Helvetica", "B", 12)
		doc.CellFormat(50, 9, row[0]+":", "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 12)
		doc.CellFormat(0, 9, tr(row[1]), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}

	// fpdf reports layout problems only at output time, so confirm the
	// result parses before handing it to a client
	check, err := pdfvalidation.Inspect(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	if check.PageCount != 1 {
		return nil, fmt.Errorf("render receipt: expected 1 page, got %d", check.PageCount)
	}

	return buf.Bytes(), nil
}
