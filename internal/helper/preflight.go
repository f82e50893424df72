package helper

import (
	"fmt"
	"os/exec"
	"strings"
)

// Preflight checks that the binaries a run needs are on PATH: mv always, and
// bash when a helper is configured. The helper line itself is bash source, so
// its first word may be a builtin or keyword; a missing program surfaces per
// file as exit status 127.
func Preflight(helperLine string) error {
	needed := []string{"mv"}
	if strings.TrimSpace(helperLine) != "" {
		needed = append(needed, "bash")
	}

	var missing []string
	for _, bin := range needed {
		if _, err := exec.LookPath(bin); err != nil {
			missing = append(missing, bin)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("required binaries not found in PATH: %s", strings.Join(missing, ", "))
	}
	return nil
}
