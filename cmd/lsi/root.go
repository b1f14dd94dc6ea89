package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/larkspur-suite/larkspur-installer/internal/config"
	"github.com/larkspur-suite/larkspur-installer/internal/download"
	"github.com/larkspur-suite/larkspur-installer/internal/installer"
	"github.com/larkspur-suite/larkspur-installer/internal/messages"
	"github.com/larkspur-suite/larkspur-installer/internal/picker"
	"github.com/larkspur-suite/larkspur-installer/internal/platform"
	"github.com/larkspur-suite/larkspur-installer/internal/state"
	"github.com/larkspur-suite/larkspur-installer/internal/updatewarn"
)

// newServiceFunc is a seam for tests.
var newServiceFunc = newService

// newService wires a Service from the resolved configuration. The config
// file location only depends on the config dir, so paths are resolved
// once to find it and again after loading to honor install_root.
func newService() (*installer.Service, *config.Config, error) {
	paths, err := config.Resolve(nil)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(paths.ConfigFile)
	if err != nil {
		return nil, nil, err
	}
	paths, err = config.Resolve(cfg)
	if err != nil {
		return nil, nil, err
	}
	plat, err := platform.Detect()
	if err != nil {
		return nil, nil, err
	}
	svc, err := installer.New(installer.Options{
		Store:       state.NewStore(paths.StateFile),
		Paths:       paths,
		Platform:    plat,
		Downloader:  download.NewClient(nil),
		ManifestURL: cfg.ManifestURL,
		WorkOffline: cfg.WorkOffline,
	})
	if err != nil {
		return nil, nil, err
	}
	return svc, cfg, nil
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, cfg, err := newServiceFunc()
			if err != nil {
				return err
			}
			updatewarn.WarnIfOutdated(cmd.Context(), cfg.UpdateEndpoint, Version, svc.Platform(), cmd.ErrOrStderr())
			result, err := svc.LoadManifest(cmd.Context())
			if err != nil {
				return err
			}
			return runPicker(cmd, svc, picker.NewHuhUI(), result)
		},
	}
	cmd.AddCommand(
		newListCmd(),
		newInstallCmd(),
		newRemoveCmd(),
		newStartCmd(),
		newPrereleaseCmd(),
		newSelfUpdateCmd(),
	)
	return cmd
}

// runPicker drives the interactive menu until the user quits. Every
// mutating action is followed by a catalog reload so the menu reflects
// the new state.
func runPicker(cmd *cobra.Command, svc *installer.Service, ui picker.UI, result *installer.Result) error {
	for {
		id, err := picker.ChooseProduct(ui, result.Products)
		if err != nil {
			if errors.Is(err, picker.ErrAborted) {
				return nil
			}
			return err
		}
		if id == picker.QuitValue {
			return nil
		}

		st, ok := findStatus(result.Products, id)
		if !ok {
			continue
		}
		action, err := picker.ChooseAction(ui, st, result.Offline)
		if err != nil {
			if errors.Is(err, picker.ErrAborted) {
				continue
			}
			return err
		}

		mutated := true
		switch action {
		case picker.ActionInstall, picker.ActionUpdate:
			err = svc.Install(cmd.Context(), id)
		case picker.ActionRemove:
			err = svc.Remove(id)
		case picker.ActionStart:
			err = svc.Start(id)
			mutated = false
		case picker.ActionEnablePrerelease:
			err = svc.SetPrerelease(id, true)
		case picker.ActionDisablePrerelease:
			err = svc.SetPrerelease(id, false)
		default:
			mutated = false
		}
		if err != nil {
			return err
		}
		if mutated {
			result, err = svc.LoadManifest(cmd.Context())
			if err != nil {
				return err
			}
		}
	}
}

func findStatus(products []installer.ProductStatus, id string) (installer.ProductStatus, bool) {
	for _, st := range products {
		if st.ID == id {
			return st, true
		}
	}
	return installer.ProductStatus{}, false
}
