package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mburu1/ReceiptReprintApplication/app/models"
	"github.com/mburu1/ReceiptReprintApplication/app/printing"
)

var testpageOut string

var testpageCmd = &cobra.Command{
	Use:   "testpage",
	Short: "Send a diagnostic slip with a QR code to the printer",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := models.PrinterSettings{
			PrinterName:   cfg.Printer.Name,
			FontSize:      cfg.Printer.FontSize,
			Method:        models.MethodEscPos,
			PaperSizeName: cfg.Printer.PaperSize,
		}
		if settings.PrinterName == "" {
			settings.PrinterName = defaultPrinterName()
		}

		target := configuredTarget()
		if testpageOut != "" {
			target = printing.Target{Name: "file", Type: "file", Address: testpageOut}
			if settings.PrinterName == "" {
				settings.PrinterName = testpageOut
			}
		}

		if err := newPrintService().PrintTestPage(settings, target); err != nil {
			return fmt.Errorf("printing test page: %w", err)
		}
		fmt.Println("test page sent")
		return nil
	},
}

func init() {
	testpageCmd.Flags().StringVar(&testpageOut, "out", "", "write the test page bytes to a file")
	rootCmd.AddCommand(testpageCmd)
}
