package scaffold

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/jorge-barreto/smv/internal/config"
	"github.com/jorge-barreto/smv/internal/ux"
)

var configTemplate = `# smv defaults. Flags on the command line override these.
# Run 'smv docs config' for every field.

delimiter: "%"
# helper: "exiftool -s3 -d '%Y %m' -DateTimeOriginal"
helper-timeout: 30
mv-flags: "-n"
make-path: false
ignore-case: false
on-error: abort
max-vars: 100
max-helper-output: 65536
# journal: .smv-journal.json
`

// Init writes an example config file into targetDir.
func Init(fsys afero.Fs, targetDir string) (string, error) {
	path := filepath.Join(targetDir, config.DefaultPath)
	if ok, err := afero.Exists(fsys, path); err != nil {
		return "", err
	} else if ok {
		return "", fmt.Errorf("%s already exists in %s", config.DefaultPath, targetDir)
	}

	if err := afero.WriteFile(fsys, path, []byte(configTemplate), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", config.DefaultPath, err)
	}
	return path, nil
}

// PrintNextSteps tells the user what Init created.
func PrintNextSteps(path string) {
	fmt.Printf("\n%s%s✓ Created %s%s\n\n", ux.Bold, ux.Green, path, ux.Reset)
	fmt.Printf("  Next steps:\n")
	fmt.Printf("    1. Set a %shelper%s if you want per-file variables\n", ux.Cyan, ux.Reset)
	fmt.Printf("    2. Run %ssmv -n 'SOURCE' 'DEST'%s to preview a rename\n\n", ux.Cyan, ux.Reset)
}
