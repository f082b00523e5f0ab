package receipt

import (
	"bytes"
	"fmt"

	"atm/internal/domain"

	"github.com/go-pdf/fpdf"
)

const (
	pageCenter  = 105.0
	marginLeft  = 20.0
	marginRight = 190.0
	fontFamily  = "Helvetica"
	dateLayout  = "2006-01-02"
)

// Layout holds the bank details printed on every receipt
type Layout struct {
	BankName     string
	BranchName   string
	SupportPhone string
}

// PDFRenderer renders withdrawal receipts as single page A4 documents
type PDFRenderer struct {
	layout Layout
}

// NewPDFRenderer creates a renderer for the given bank layout
func NewPDFRenderer(layout Layout) *PDFRenderer {
	return &PDFRenderer{layout: layout}
}

// Render returns the PDF document for a receipt
func (r *PDFRenderer) Render(rec domain.Receipt) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle("ATM Receipt", true)
	pdf.SetAuthor(r.layout.BankName, true)
	pdf.AddPage()
	pdf.SetTextColor(40, 40, 40)

	// Bank and branch
	pdf.SetFont(fontFamily, "", 16)
	centerText(pdf, 20, tr(r.layout.BankName))
	pdf.SetFont(fontFamily, "", 12)
	centerText(pdf, 28, tr("Branch: "+r.layout.BranchName))

	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, 32, marginRight, 32)

	// Transaction
	pdf.SetFont(fontFamily, "", 12)
	pdf.Text(marginLeft, 40, "Receipt for ATM Transaction")
	pdf.SetFont(fontFamily, "", 10)
	pdf.Text(marginLeft, 50, tr("Name: "+rec.CustomerName))
	pdf.Text(marginLeft, 60, "Amount Withdrawn: "+domain.FormatAmount(rec.AmountWithdrawn))
	pdf.Text(marginLeft, 70, "Balance Remaining: "+domain.FormatAmount(rec.RemainingBalance))
	pdf.Text(marginLeft, 80, "Date: "+rec.Timestamp.Format(dateLayout))
	pdf.Text(marginLeft, 86, "Transaction: "+rec.ID.String())

	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, 90, marginRight, 90)

	// Footer
	pdf.SetFont(fontFamily, "", 10)
	centerText(pdf, 100, "Thank you for banking with us!")
	centerText(pdf, 108, tr("Customer Service: "+r.layout.SupportPhone))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}

	return buf.Bytes(), nil
}

// centerText writes text horizontally centred on the page at baseline y
func centerText(pdf *fpdf.Fpdf, y float64, text string) {
	pdf.Text(pageCenter-pdf.GetStringWidth(text)/2, y, text)
}
