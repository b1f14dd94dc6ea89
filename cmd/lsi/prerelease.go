package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/larkspur-suite/larkspur-installer/internal/messages"
)

func newPrereleaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.PrereleaseUse,
		Short: messages.PrereleaseShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var allow bool
			switch args[1] {
			case "on":
				allow = true
			case "off":
				allow = false
			default:
				return fmt.Errorf(messages.PrereleaseInvalidFmt, args[1])
			}

			svc, _, err := newServiceFunc()
			if err != nil {
				return err
			}
			if err := svc.SetPrerelease(args[0], allow); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.PrereleaseSetFmt, args[0], args[1])
			return nil
		},
	}
}
