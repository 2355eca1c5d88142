package cli

import (
	"encoding/json"
	"os"

	"github.com/weldtool/weld/pkg/deps"
	"github.com/weldtool/weld/pkg/errors"
)

// loadImports reads an imports mapping produced by an external import
// scanner: a JSON object from dependency name to the module names imported
// under it, e.g. {"requests": ["requests", "requests.adapters"]}.
//
// An empty path yields an empty mapping, so a scope the scanner did not
// cover diffs as fully unused rather than erroring.
func loadImports(path string) (deps.Imports, error) {
	if path == "" {
		return deps.Imports{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "imports file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidImports, err, "reading imports file: %s", path)
	}

	var m map[string][]string
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidImports, err, "imports file is not a name-to-modules JSON object: %s", path)
	}

	return deps.Imports(m), nil
}
