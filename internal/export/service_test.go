package export

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/elvis888361/invoice-extractor/internal/entity"
)

func strp(s string) *string   { return &s }
func nump(v float64) *float64 { return &v }

func sampleDocument() *entity.InvoiceDocument {
	doc := &entity.InvoiceDocument{
		Items: []entity.LineItem{
			{
				ArticleNumber:     "0000771032",
				Name:              "Gipsplaat",
				Quantity:          "16",
				ItemUnitPrice:     "3,62",
				ItemAmountExclVAT: "57,92",
				ItemVATPercentage: "21%",
			},
		},
	}
	doc.Sender.Company = strp("Bouwmaat Haarlem XL")
	doc.Receiver.Company = strp("Rubo-ingenieurs")
	doc.Company.Country = "NL"
	doc.Company.KVKNumber = strp("30055682")
	doc.Invoice.Number = strp("1018876")
	doc.Invoice.Date = strp("10-06-2024")
	doc.Invoice.Paid = true
	doc.Bank.IBAN = strp("NL91ABNA0417164300")
	doc.TotalAmountInclVAT = nump(129.14)
	doc.SubtotalAmountExclVAT = nump(106.73)
	doc.DataValidation = &entity.ValidationReport{CompletenessScore: 88}
	return doc
}

func TestInvoiceXLSX(t *testing.T) {
	svc := NewService(nil)
	b, err := svc.InvoiceXLSX(sampleDocument())
	if err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	cell := func(sheet, ref string) string {
		t.Helper()
		v, err := f.GetCellValue(sheet, ref)
		if err != nil {
			t.Fatalf("read %s!%s: %v", sheet, ref, err)
		}
		return v
	}

	if got := cell("Invoice", "B1"); got != "Bouwmaat Haarlem XL" {
		t.Errorf("sender = %q", got)
	}
	if got := cell("Invoice", "B7"); got != "1018876" {
		t.Errorf("invoice number = %q", got)
	}
	if got := cell("Invoice", "B17"); got != "88" {
		t.Errorf("completeness = %q", got)
	}

	if got := cell("Items", "A1"); got != "Article Number" {
		t.Errorf("items header = %q", got)
	}
	if got := cell("Items", "A2"); got != "0000771032" {
		t.Errorf("item article = %q", got)
	}
	if got := cell("Items", "B2"); got != "Gipsplaat" {
		t.Errorf("item name = %q", got)
	}
}

func TestInvoiceXLSXEmptyDocument(t *testing.T) {
	svc := NewService(nil)
	b, err := svc.InvoiceXLSX(&entity.InvoiceDocument{})
	if err != nil {
		t.Fatal(err)
	}
	if len(b) == 0 {
		t.Error("empty workbook")
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) != 2 {
		t.Errorf("sheets = %v", sheets)
	}
}
