//go:build windows

package installer

import (
	"context"
	"fmt"
	"os/exec"

	log "github.com/sirupsen/logrus"

	"github.com/larkspur-suite/larkspur-installer/internal/messages"
)

// runMsiInstaller hands the downloaded package to the Windows installer
// service and waits for it to finish.
func runMsiInstaller(ctx context.Context, artifactPath, productCode string) error {
	log.Infof("dispatching %s to msiexec (product code %s)", artifactPath, productCode)
	cmd := exec.CommandContext(ctx, "msiexec", "/i", artifactPath, "/qn", "/norestart")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf(messages.InstallerMsiFailedFmt, err, string(out))
	}
	return nil
}
