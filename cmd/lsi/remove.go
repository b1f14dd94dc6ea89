package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/larkspur-suite/larkspur-installer/internal/messages"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.RemoveUse,
		Short: messages.RemoveShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newServiceFunc()
			if err != nil {
				return err
			}
			if _, err := svc.LoadManifest(cmd.Context()); err != nil {
				return err
			}
			if err := svc.Remove(args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.RemoveDoneFmt, args[0])
			return nil
		},
	}
}
