package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/larkspur-suite/larkspur-installer/internal/messages"
)

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newServiceFunc()
			if err != nil {
				return err
			}
			if _, err := svc.LoadManifest(cmd.Context()); err != nil {
				return err
			}
			if err := svc.Install(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.InstallDoneFmt, args[0])
			return nil
		},
	}
}
