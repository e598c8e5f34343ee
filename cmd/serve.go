package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mburu1/ReceiptReprintApplication/app/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reprint HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.RecoverPanic()

		receipts, err := newReceiptService()
		if err != nil {
			return err
		}

		router := api.NewRouter(receipts, newPrintService(), cfg)
		addr := ":" + cfg.App.Port

		logger.Info("starting HTTP server", "addr: "+addr)
		if err := router.Run(addr); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
