// Package receipt renders settled invoices as printable PDF receipts.
package receipt

import (
	"bytes"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/tair/tiffin-pos/internal/pos/domain"
)

// core PDF fonts have no rupee glyph
const currency = "Rs."

const maxNameLen = 40

// Render writes inv as a single-page A4 receipt
func Render(w io.Writer, inv domain.Invoice, shopName string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetTitle(fmt.Sprintf("%s %s", shopName, inv.InvoiceID), true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, shopName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(190, 8, "Payment Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Invoice ID: %s", inv.InvoiceID), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s %s", inv.Date, inv.Time), "", 1, "R", false, 0, "")
	pdf.CellFormat(190, 7, fmt.Sprintf("Payment Method: %s", inv.PaymentMethod), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(85, 7, "Item", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Price", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Total", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, line := range inv.Items {
		name := line.Name
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		}
		pdf.CellFormat(85, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", line.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, Money(line.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, Money(line.Subtotal()), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(150, 8, "Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, Money(inv.Total), "1", 1, "R", true, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 11)
	pdf.CellFormat(190, 7, "Payment Successful. Thank you!", "", 1, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render receipt %s: %w", inv.InvoiceID, err)
	}
	return nil
}

// Bytes renders inv into memory
func Bytes(inv domain.Invoice, shopName string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, inv, shopName); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Money formats an amount with two decimals
func Money(amount float64) string {
	return fmt.Sprintf("%s %.2f", currency, amount)
}
