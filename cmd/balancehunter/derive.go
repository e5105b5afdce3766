package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Amr-9/BalanceHunter/internal/ui"
	"github.com/Amr-9/BalanceHunter/pkg/generator"
	"github.com/Amr-9/BalanceHunter/pkg/generator/cpu"
)

func newDeriveCommand() *cobra.Command {
	var network string

	cmd := &cobra.Command{
		Use:   "derive [private-key]",
		Short: "Print the identifier and address of a private key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := generator.ParseNetwork(network)
			if err != nil {
				return err
			}

			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				key, err = ui.Prompt(cmd.InOrStdin(), cmd.ErrOrStderr(), "Private key")
				if err != nil {
					return err
				}
			}

			c, err := cpu.Derive(net, key)
			if err != nil {
				return err
			}
			codec, err := cpu.CodecFor(net)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-12s: %s\n", "network", net)
			fmt.Fprintf(out, "%-12s: %s\n", "private-key", c.PrivateKey)
			fmt.Fprintf(out, "%-12s: %s\n", "identifier", c.Identifier)
			fmt.Fprintf(out, "%-12s: %s\n", "address", codec.Display(c.Identifier))
			fmt.Fprintf(out, "%-12s: %s\n", "explorer", codec.ExplorerURL(c.Identifier))
			return nil
		},
	}
	cmd.Flags().StringVarP(&network, "network", "n", "ethereum", "network: ethereum, bitcoin or tron")
	return cmd
}
