package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mburu1/ReceiptReprintApplication/app/logging"
	"github.com/mburu1/ReceiptReprintApplication/app/models"
	"github.com/mburu1/ReceiptReprintApplication/app/printing"
)

func printableReceipt() *models.ReceiptRecord {
	header := models.DefaultCompanyHeader()
	item, _ := models.NewLineItem("SKU1", "Hand Soap",
		decimal.NewFromInt(2), decimal.NewFromInt(10), decimal.NewFromInt(1))
	return &models.ReceiptRecord{
		TransactionNumber: 1001,
		TransactionTime:   time.Date(2023, 5, 12, 14, 30, 5, 0, time.UTC),
		CashierName:       "J",
		RegisterNumber:    "01",
		StoreID:           7,
		GrandTotal:        decimal.NewFromInt(21),
		Items:             []models.LineItem{item},
		CompanyInfo:       &header,
	}
}

func TestPrint_EscPosToFileTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipt.prn")
	svc := NewPrintService(nil, 203, nil, logging.Nop{})

	job := &models.PrintJob{
		Receipt: printableReceipt(),
		Settings: models.PrinterSettings{
			PrinterName:   "file",
			FontSize:      10,
			Method:        models.MethodEscPos,
			PaperSizeName: "Custom 80mm Roll",
		},
	}

	result, err := svc.Print(job, printing.Target{Name: "file", Type: "file", Address: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.JobID == "" {
		t.Fatal("missing job id")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(data) != result.BytesSent {
		t.Fatalf("wrote %d bytes, result says %d", len(data), result.BytesSent)
	}
	if data[0] != 0x1B || data[1] != 0x40 {
		t.Fatalf("output does not start with initialize: % X", data[:2])
	}
}

func TestPrint_DriverPathReturnsPage(t *testing.T) {
	svc := NewPrintService(printing.FixedPitchMeasurer{DPI: 203}, 203, nil, logging.Nop{})

	job := &models.PrintJob{
		Receipt: printableReceipt(),
		Settings: models.PrinterSettings{
			PrinterName:   "office",
			FontSize:      10,
			Method:        models.MethodDriver,
			PaperSizeName: "A4",
		},
	}

	result, err := svc.Print(job, printing.Target{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Page == nil || len(result.Page.Ops) == 0 {
		t.Fatal("driver path must produce a page")
	}
	if result.Page.PaperName != "A4" {
		t.Fatalf("paper = %s", result.Page.PaperName)
	}
}

func TestPrint_InvalidJobRejected(t *testing.T) {
	svc := NewPrintService(nil, 203, nil, logging.Nop{})

	r := printableReceipt()
	r.Items = nil
	job := &models.PrintJob{Receipt: r, Settings: models.DefaultPrinterSettings("x")}

	if _, err := svc.Print(job, printing.Target{}); err != ErrInvalidPrintJob {
		t.Fatalf("error = %v, want ErrInvalidPrintJob", err)
	}
	if _, err := svc.Print(nil, printing.Target{}); err != ErrInvalidPrintJob {
		t.Fatalf("nil job error = %v", err)
	}
}

func TestPrintTestPage_ToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testpage.prn")
	svc := NewPrintService(nil, 203, nil, logging.Nop{})

	settings := models.PrinterSettings{PrinterName: "dev", FontSize: 10}
	err := svc.PrintTestPage(settings, printing.Target{Name: "file", Type: "file", Address: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Fatalf("test page not written: %v", err)
	}
}
