package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/larkspur-suite/larkspur-installer/internal/messages"
	"github.com/larkspur-suite/larkspur-installer/internal/selfupdate"
)

// checkForUpdate is a seam for tests.
var checkForUpdate = selfupdate.Check

func newSelfUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.SelfUpdateUse,
		Short: messages.SelfUpdateShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, cfg, err := newServiceFunc()
			if err != nil {
				return err
			}
			result, err := checkForUpdate(cmd.Context(), cfg.UpdateEndpoint, Version, svc.Platform())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case result.CurrentIsDev:
				_, _ = fmt.Fprintf(out, messages.SelfUpdateDevBuildFmt, result.Latest)
			case !result.Outdated:
				_, _ = fmt.Fprintf(out, messages.SelfUpdateUpToDateFmt, result.Current)
				return nil
			default:
				_, _ = fmt.Fprintf(out, messages.SelfUpdateAvailableFmt, result.Latest, result.Current)
			}

			if !selfupdate.CanAutoUpdate(svc.Platform()) {
				_, _ = fmt.Fprint(out, messages.SelfUpdateManual)
			}
			if result.DownloadURL != "" {
				_, _ = fmt.Fprintf(out, messages.SelfUpdateDownloadFmt, result.DownloadURL)
			}
			return nil
		},
	}
}
