package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mburu1/ReceiptReprintApplication/app/models"
	"github.com/mburu1/ReceiptReprintApplication/app/printing"
)

var reprintFlags struct {
	store     int
	printer   string
	method    string
	fontSize  int
	paperSize string
	outFile   string
	preview   bool
}

var reprintCmd = &cobra.Command{
	Use:   "reprint <transaction-number>",
	Short: "Look up a transaction and print its receipt again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		txn, err := strconv.Atoi(args[0])
		if err != nil || txn <= 0 {
			return fmt.Errorf("transaction number must be a positive integer, got %q", args[0])
		}

		receipts, err := newReceiptService()
		if err != nil {
			return err
		}

		var storeOverride *int
		if cmd.Flags().Changed("store") {
			storeOverride = &reprintFlags.store
		}

		receipt, err := receipts.GetReceipt(cmd.Context(), txn, storeOverride)
		if err != nil {
			return fmt.Errorf("looking up transaction %d: %w", txn, err)
		}
		if receipt == nil {
			return fmt.Errorf("transaction %d not found or not printable", txn)
		}

		job := &models.PrintJob{Receipt: receipt, Settings: reprintSettings()}
		printer := newPrintService()

		if reprintFlags.preview {
			data, page, err := printer.Preview(job)
			if err != nil {
				return err
			}
			fmt.Printf("transaction %d: %d items, grand total %s\n",
				receipt.TransactionNumber, len(receipt.Items), receipt.GrandTotal.StringFixed(2))
			fmt.Printf("escpos: %d bytes\n", len(data))
			fmt.Printf("page: %s, %dx%d hundredths at %d dpi, %d draw ops\n",
				page.PaperName, page.WidthHundredths, page.HeightHundredths, page.DPI, len(page.Ops))
			return nil
		}

		target := configuredTarget()
		if reprintFlags.outFile != "" {
			target = printing.Target{Name: "file", Type: "file", Address: reprintFlags.outFile}
		}
		if reprintFlags.printer != "" {
			target.Name = reprintFlags.printer
		}

		result, err := printer.Print(job, target)
		if err != nil {
			return fmt.Errorf("printing transaction %d: %w", txn, err)
		}
		fmt.Printf("printed transaction %d (job %s, %d bytes)\n", txn, result.JobID, result.BytesSent)
		return nil
	},
}

func reprintSettings() models.PrinterSettings {
	s := models.PrinterSettings{
		PrinterName:   cfg.Printer.Name,
		FontSize:      cfg.Printer.FontSize,
		Method:        models.PrintMethod(cfg.Printer.Method),
		PaperSizeName: cfg.Printer.PaperSize,
	}
	if reprintFlags.printer != "" {
		s.PrinterName = reprintFlags.printer
	}
	if reprintFlags.method != "" {
		s.Method = models.PrintMethod(reprintFlags.method)
	}
	if reprintFlags.fontSize != 0 {
		s.FontSize = reprintFlags.fontSize
	}
	if reprintFlags.paperSize != "" {
		s.PaperSizeName = reprintFlags.paperSize
	}
	if reprintFlags.outFile != "" && s.PrinterName == "" {
		s.PrinterName = reprintFlags.outFile
	}
	if s.PrinterName == "" {
		s.PrinterName = defaultPrinterName()
	}
	return s
}

// defaultPrinterName falls back to the system default printer when none
// is configured.
func defaultPrinterName() string {
	printers, err := printing.DetectSystemPrinters()
	if err != nil {
		return ""
	}
	for _, p := range printers {
		if p.IsDefault {
			return p.Name
		}
	}
	if len(printers) > 0 {
		return printers[0].Name
	}
	return ""
}

func init() {
	reprintCmd.Flags().IntVar(&reprintFlags.store, "store", 0, "override the transaction's store id for template lookup")
	reprintCmd.Flags().StringVar(&reprintFlags.printer, "printer", "", "target printer name")
	reprintCmd.Flags().StringVar(&reprintFlags.method, "method", "", "output method: escpos or driver")
	reprintCmd.Flags().IntVar(&reprintFlags.fontSize, "font-size", 0, "font size in points (6-20)")
	reprintCmd.Flags().StringVar(&reprintFlags.paperSize, "paper", "", "paper size name")
	reprintCmd.Flags().StringVar(&reprintFlags.outFile, "out", "", "write output to a file instead of a printer")
	reprintCmd.Flags().BoolVar(&reprintFlags.preview, "preview", false, "render without sending to a device")
	rootCmd.AddCommand(reprintCmd)
}
