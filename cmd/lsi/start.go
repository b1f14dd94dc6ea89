package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/larkspur-suite/larkspur-installer/internal/messages"
)

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.StartUse,
		Short: messages.StartShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newServiceFunc()
			if err != nil {
				return err
			}
			// Start only needs local state, so no manifest load here; it
			// works fully offline.
			if err := svc.Start(args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.StartDoneFmt, args[0])
			return nil
		},
	}
}
