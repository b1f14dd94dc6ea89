package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/larkspur-suite/larkspur-installer/internal/installer"
	"github.com/larkspur-suite/larkspur-installer/internal/messages"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.ListUse,
		Short: messages.ListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, err := newServiceFunc()
			if err != nil {
				return err
			}
			result, err := svc.LoadManifest(cmd.Context())
			if err != nil {
				return err
			}
			printListing(cmd, result)
			return nil
		},
	}
}

func printListing(cmd *cobra.Command, result *installer.Result) {
	out := cmd.OutOrStdout()
	if result.Offline {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), messages.ListOfflineNotice)
		if len(result.Products) == 0 {
			_, _ = fmt.Fprint(out, messages.ListEmptyOffline)
			return
		}
	}

	_, _ = fmt.Fprintf(out, messages.ListHeaderFmt, "ID", "INSTALLED", "LATEST", "NAME")
	for _, st := range result.Products {
		installed := messages.ListNotInstalled
		if st.LocalVersion != nil {
			installed = *st.LocalVersion
		}
		latest := st.RemoteVersion
		name := st.Name
		if st.AllowPrerelease {
			latest = st.RemoteVersionPrerelease
			name += messages.ListPrereleaseMark
		}
		if !result.Offline && !st.HasOSMatch && !st.HasOSMatchPrerelease {
			name += " " + messages.ListNoOSMatch
		}
		_, _ = fmt.Fprintf(out, messages.ListRowFmt, st.ID, installed, latest, name)
	}
}
