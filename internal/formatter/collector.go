// Package formatter applies an external code-formatting tool in-place to
// every recognized source file under a set of root directories.
package formatter

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	twerrors "github.com/eelitiawan/taskweave/internal/errors"
)

// DefaultExtensions returns the recognized source and header extensions.
// Matching is case-sensitive and includes the leading dot.
func DefaultExtensions() map[string]struct{} {
	return map[string]struct{}{
		".h":   {},
		".cpp": {},
		".hpp": {},
		".cc":  {},
		".cxx": {},
	}
}

// ExtensionSet converts a list of extensions into the set form CollectFiles
// expects.
func ExtensionSet(extensions []string) map[string]struct{} {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[ext] = struct{}{}
	}

	return set
}

// CollectFiles recursively walks each root and returns the absolute paths
// of all files whose extension is a member of the extension set. Roots
// that do not exist are treated as empty; an empty result is not an error.
// The set is rebuilt fresh on every call and never cached.
func CollectFiles(roots []string, extensions map[string]struct{}) ([]string, error) {
	files := []string{}

	for _, root := range roots {
		if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
			continue
		}

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if _, ok := extensions[filepath.Ext(path)]; !ok {
				return nil
			}

			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			files = append(files, abs)

			return nil
		})
		if err != nil {
			return nil, twerrors.NewIOError("walk source root", err).WithPath(root)
		}
	}

	return files, nil
}
