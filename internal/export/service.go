package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/elvis888361/invoice-extractor/internal/entity"
)

// Service produces XLSX bytes for an extracted invoice: a summary sheet with
// the header fields and a line-items sheet.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// InvoiceXLSX renders the document as a workbook.
func (s *Service) InvoiceXLSX(doc *entity.InvoiceDocument) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const summary = "Invoice"
	const itemsSheet = "Items"

	// The default sheet becomes the summary.
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}

	writeSummary(f, summary, doc)
	writeItems(f, itemsSheet, doc.Items)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"items", len(doc.Items),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, sheet string, doc *entity.InvoiceDocument) {
	row := 1
	write := func(label string, v any) {
		labelCell, _ := excelize.CoordinatesToCellName(1, row)
		valueCell, _ := excelize.CoordinatesToCellName(2, row)
		_ = f.SetCellValue(sheet, labelCell, label)
		_ = f.SetCellValue(sheet, valueCell, v)
		row++
	}

	write("Sender", strOr(doc.Sender.Company))
	write("Sender address", strOr(doc.Sender.Address))
	write("Receiver", strOr(doc.Receiver.Company))
	write("Country", doc.Company.Country)
	write("KVK number", strOr(doc.Company.KVKNumber))
	write("VAT number", strOr(doc.Company.VATNumber))
	write("Invoice number", strOr(doc.Invoice.Number))
	write("Invoice date", strOr(doc.Invoice.Date))
	write("Paid", doc.Invoice.Paid)
	write("Payment method", strOr(doc.Invoice.PaymentMethod))
	write("IBAN", strOr(doc.Bank.IBAN))
	write("Account holder", strOr(doc.Bank.AccountHolder))
	write("Subtotal excl. VAT", numOr(doc.SubtotalAmountExclVAT))
	write("VAT amount", numOr(doc.VATAmountItem))
	write("VAT percentage", numOr(doc.VATPercentage))
	write("Total incl. VAT", numOr(doc.TotalAmountInclVAT))
	if doc.DataValidation != nil {
		write("Completeness score", doc.DataValidation.CompletenessScore)
	}

	_ = f.SetColWidth(sheet, "A", "A", 22)
	_ = f.SetColWidth(sheet, "B", "B", 40)
}

func writeItems(f *excelize.File, sheet string, items []entity.LineItem) {
	headers := []string{
		"Article Number", "Name", "Quantity", "Unit Price",
		"Amount excl. VAT", "VAT %", "Amount incl. VAT", "VAT Amount",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, it := range items {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		write(1, it.ArticleNumber)
		write(2, it.Name)
		write(3, it.Quantity)
		write(4, it.ItemUnitPrice)
		write(5, it.ItemAmountExclVAT)
		write(6, it.ItemVATPercentage)
		write(7, it.ItemAmountInclVAT)
		write(8, it.ItemVATAmount)
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 16)
	_ = f.SetColWidth(sheet, "B", "B", 48)
	_ = f.SetColWidth(sheet, "C", "H", 16)
}

func strOr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func numOr(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
