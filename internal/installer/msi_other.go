//go:build !windows

package installer

import (
	"context"
	"fmt"

	"github.com/larkspur-suite/larkspur-installer/internal/messages"
)

// runMsiInstaller rejects MSI artifacts off Windows; the manifest should
// never offer one in a non-windows download slot.
func runMsiInstaller(_ context.Context, _, _ string) error {
	return fmt.Errorf(messages.InstallerMsiUnsupported)
}
