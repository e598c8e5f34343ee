package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mburu1/ReceiptReprintApplication/app/config"
	"github.com/mburu1/ReceiptReprintApplication/app/database"
	"github.com/mburu1/ReceiptReprintApplication/app/logging"
	"github.com/mburu1/ReceiptReprintApplication/app/printing"
	"github.com/mburu1/ReceiptReprintApplication/app/services"
)

var (
	cfg    *config.Config
	logger *logging.FileLogger
)

// Daily log files older than this are removed at startup.
const logRetentionDays = 30

var rootCmd = &cobra.Command{
	Use:   "receipt-reprint",
	Short: "Reprint point-of-sale receipts from the store database",
	Long: `receipt-reprint looks up past transactions in the store database and
reproduces their receipts, either as raw ESC/POS bytes for a thermal
printer or as a paginated page for a system printer driver.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		logger = logging.NewFileLogger(cfg.LogDir(), cfg.App.Debug)
		if err := logger.CleanOldLogs(logRetentionDays); err != nil {
			logger.Warning("Log cleanup failed", err.Error())
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Close()
		}
	},
}

// Execute runs the CLI. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newReceiptService connects to the configured database and assembles the
// reprint pipeline on top of it.
func newReceiptService() (*services.ReceiptService, error) {
	db, err := database.Connect(cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	repo := database.NewReceiptRepository(db, logger)
	return services.NewReceiptService(repo, logger), nil
}

func newPrintService() *services.PrintService {
	measurer := printing.FixedPitchMeasurer{DPI: cfg.Printer.DPI}
	return services.NewPrintService(measurer, cfg.Printer.DPI, nil, logger)
}

func configuredTarget() printing.Target {
	return printing.Target{
		Name:    cfg.Printer.Name,
		Type:    cfg.Printer.Type,
		Address: cfg.Printer.Address,
		Port:    cfg.Printer.Port,
	}
}
