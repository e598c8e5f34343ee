package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mburu1/ReceiptReprintApplication/app/printing"
)

var printersDiscover bool

var printersCmd = &cobra.Command{
	Use:   "printers",
	Short: "List printers visible to this machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		printers, err := printing.DetectSystemPrinters()
		if err != nil {
			return fmt.Errorf("detecting printers: %w", err)
		}

		if printersDiscover {
			network, err := printing.DiscoverNetworkPrinters(cmd.Context(), 3*time.Second)
			if err != nil {
				fmt.Printf("network discovery failed: %v\n", err)
			} else {
				printers = append(printers, network...)
			}
		}

		if len(printers) == 0 {
			fmt.Println("no printers found")
		}
		for _, p := range printers {
			marker := " "
			if p.IsDefault {
				marker = "*"
			}
			line := fmt.Sprintf("%s %-30s %-8s %s", marker, p.Name, p.Type, p.Address)
			if p.Port != 0 {
				line += fmt.Sprintf(":%d", p.Port)
			}
			fmt.Println(line)
		}

		if ports, err := printing.DetectSerialPorts(); err == nil && len(ports) > 0 {
			fmt.Println("serial ports:")
			for _, port := range ports {
				fmt.Println("    " + port)
			}
		}
		return nil
	},
}

func init() {
	printersCmd.Flags().BoolVar(&printersDiscover, "discover", false, "also browse the network for raw-port printers")
	rootCmd.AddCommand(printersCmd)
}
