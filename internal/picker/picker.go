// Package picker drives the interactive product menu shown when lsi runs
// without a subcommand in a terminal.
package picker

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/huh"

	"github.com/larkspur-suite/larkspur-installer/internal/installer"
	"github.com/larkspur-suite/larkspur-installer/internal/messages"
	"github.com/larkspur-suite/larkspur-installer/internal/terminal"
)

// ErrAborted reports the user backing out of a prompt.
var ErrAborted = errors.New("aborted")

// Action is one menu entry applicable to a product.
type Action string

const (
	ActionInstall           Action = "install"
	ActionUpdate            Action = "update"
	ActionStart             Action = "start"
	ActionRemove            Action = "remove"
	ActionEnablePrerelease  Action = "enable-prerelease"
	ActionDisablePrerelease Action = "disable-prerelease"
	ActionBack              Action = "back"
)

// QuitValue is the select value reserved for leaving the product menu.
const QuitValue = ""

// Option is one selectable entry.
type Option struct {
	Label string
	Value string
}

// UI abstracts the prompt layer.
type UI interface {
	Select(title string, options []Option) (string, error)
}

// HuhUI implements UI using charmbracelet/huh.
type HuhUI struct {
	isTerminal func() bool
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhUI creates a HuhUI using the default terminal check.
func NewHuhUI() *HuhUI {
	return &HuhUI{isTerminal: terminal.IsInteractive}
}

func (ui *HuhUI) ensureInteractive() error {
	checker := ui.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if checker() {
		return nil
	}
	return fmt.Errorf(messages.PickerRequiresTerminal)
}

// Select shows a single-choice menu and returns the chosen value.
func (ui *HuhUI) Select(title string, options []Option) (string, error) {
	if err := ui.ensureInteractive(); err != nil {
		return "", err
	}
	opts := make([]huh.Option[string], 0, len(options))
	for _, o := range options {
		opts = append(opts, huh.NewOption(o.Label, o.Value))
	}
	var value string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title(title).Options(opts...).Value(&value),
	))
	if err := runFormFunc(form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrAborted
		}
		return "", err
	}
	return value, nil
}

// ProductOptions builds the product menu, one row per catalog entry plus a
// quit row.
func ProductOptions(products []installer.ProductStatus) []Option {
	options := make([]Option, 0, len(products)+1)
	for _, st := range products {
		options = append(options, Option{Label: productLabel(st), Value: st.ID})
	}
	options = append(options, Option{Label: messages.PickerQuit, Value: QuitValue})
	return options
}

func productLabel(st installer.ProductStatus) string {
	name := st.Name
	if name == "" {
		name = st.ID
	}
	if st.LocalVersion != nil {
		return fmt.Sprintf(messages.PickerProductRowFmt, name, *st.LocalVersion)
	}
	return fmt.Sprintf(messages.PickerProductRowNotInstalled, name)
}

// ActionOptions builds the per-product action menu. Install appears when
// the product is not installed and an artifact exists for this platform;
// Update when a newer version than the installed one is available. While
// offline only Start and Remove are offered.
func ActionOptions(st installer.ProductStatus, offline bool) []Option {
	var options []Option

	if !offline {
		remote, hasMatch := channelRemote(st)
		installed := st.LocalVersion != nil
		switch {
		case !installed && hasMatch:
			options = append(options, Option{
				Label: fmt.Sprintf(messages.PickerActionInstallFmt, remote),
				Value: string(ActionInstall),
			})
		case installed && hasMatch && remoteIsNewer(*st.LocalVersion, remote):
			options = append(options, Option{
				Label: fmt.Sprintf(messages.PickerActionUpdateFmt, remote),
				Value: string(ActionUpdate),
			})
		}
	}

	if st.CanStart {
		options = append(options, Option{Label: messages.PickerActionStart, Value: string(ActionStart)})
	}
	if st.LocalVersion != nil {
		options = append(options, Option{Label: messages.PickerActionRemove, Value: string(ActionRemove)})
	}
	if !offline {
		if st.AllowPrerelease {
			options = append(options, Option{Label: messages.PickerActionUseRelease, Value: string(ActionDisablePrerelease)})
		} else {
			options = append(options, Option{Label: messages.PickerActionUsePrerelease, Value: string(ActionEnablePrerelease)})
		}
	}

	options = append(options, Option{Label: messages.PickerActionBack, Value: string(ActionBack)})
	return options
}

// channelRemote picks the remote version and artifact flag for the
// product's active channel.
func channelRemote(st installer.ProductStatus) (string, bool) {
	if st.AllowPrerelease {
		return st.RemoteVersionPrerelease, st.HasOSMatchPrerelease
	}
	return st.RemoteVersion, st.HasOSMatch
}

// remoteIsNewer reports whether remote is a strictly newer version than
// local. Unparseable versions never offer an update.
func remoteIsNewer(local, remote string) bool {
	lv, err := semver.NewVersion(local)
	if err != nil {
		return false
	}
	rv, err := semver.NewVersion(remote)
	if err != nil {
		return false
	}
	return rv.GreaterThan(lv)
}

// ChooseProduct shows the product menu and returns the chosen product id,
// or QuitValue when the user leaves.
func ChooseProduct(ui UI, products []installer.ProductStatus) (string, error) {
	return ui.Select(messages.PickerProductTitle, ProductOptions(products))
}

// ChooseAction shows the action menu for one product.
func ChooseAction(ui UI, st installer.ProductStatus, offline bool) (Action, error) {
	name := st.Name
	if name == "" {
		name = st.ID
	}
	value, err := ui.Select(fmt.Sprintf(messages.PickerActionTitleFmt, name), ActionOptions(st, offline))
	if err != nil {
		return "", err
	}
	return Action(value), nil
}
