package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "List stores known to the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		receipts, err := newReceiptService()
		if err != nil {
			return err
		}
		stores, err := receipts.Stores(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing stores: %w", err)
		}
		if len(stores) == 0 {
			fmt.Println("no stores found")
			return nil
		}
		for _, s := range stores {
			fmt.Println(s.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storesCmd)
}
