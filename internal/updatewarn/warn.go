package updatewarn

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/larkspur-suite/larkspur-installer/internal/config"
	"github.com/larkspur-suite/larkspur-installer/internal/messages"
	"github.com/larkspur-suite/larkspur-installer/internal/platform"
	"github.com/larkspur-suite/larkspur-installer/internal/selfupdate"
)

// CheckForUpdate is a seam for tests.
var CheckForUpdate = selfupdate.Check

// WarnIfOutdated emits update warnings to stderr when a newer installer
// release is available. It is a best-effort warning and never returns an
// error.
func WarnIfOutdated(ctx context.Context, endpoint, currentVersion string, plat platform.Platform, stderr io.Writer) {
	if strings.TrimSpace(os.Getenv(config.EnvWorkOffline)) != "" {
		return
	}
	if stderr == nil {
		stderr = io.Discard
	}

	warnColor := color.New(color.FgYellow)
	result, err := CheckForUpdate(ctx, endpoint, currentVersion, plat)
	if err != nil {
		_, _ = warnColor.Fprintf(stderr, messages.InitWarnUpdateCheckFailedFmt, err)
		return
	}
	if result.CurrentIsDev {
		_, _ = warnColor.Fprintf(stderr, messages.InitWarnDevBuildFmt, result.Latest)
		return
	}
	if result.Outdated {
		_, _ = warnColor.Fprintf(stderr, messages.InitWarnUpdateAvailableFmt, result.Latest, result.Current)
	}
}
