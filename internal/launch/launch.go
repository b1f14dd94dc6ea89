// Package launch spawns installed products as detached child processes.
package launch

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/larkspur-suite/larkspur-installer/internal/messages"
)

// Start launches executable detached in workDir, with extraEnv merged over
// the installer's own environment. It returns once the child has started;
// the child outlives this process.
func Start(executable, workDir string, extraEnv map[string]string) error {
	resolved, err := filepath.EvalSymlinks(executable)
	if err != nil {
		return fmt.Errorf(messages.LaunchResolveExecutableFmt, executable, err)
	}

	log.Debugf("starting %s in %s with %d extra environment variables",
		resolved, workDir, len(extraEnv))

	cmd := exec.Command(resolved)
	cmd.Dir = workDir
	cmd.Env = mergeEnv(os.Environ(), extraEnv)
	cmd.SysProcAttr = detachedProcAttr()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf(messages.LaunchStartFmt, resolved, err)
	}
	return cmd.Process.Release()
}

// mergeEnv appends extra pairs after the base environment; later entries
// win, so the .env file overrides inherited variables.
func mergeEnv(base []string, extra map[string]string) []string {
	if len(extra) == 0 {
		return base
	}
	merged := make([]string, 0, len(base)+len(extra))
	merged = append(merged, base...)

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		merged = append(merged, k+"="+extra[k])
	}
	return merged
}
