package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/weldtool/weld/pkg/errors"
)

const checkManifest = `[project]
name = "acme-lib"
dependencies = [
    "requests>=2.28",
    "acme_core",
]

[tool.uv.sources]
acme_core = { workspace = true }
`

func writeJSON(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunCheck_Clean(t *testing.T) {
	manifest := writeManifest(t, checkManifest)
	opts := checkOpts{
		extImports: writeJSON(t, "ext.json", `{"requests": ["requests"]}`),
		intImports: writeJSON(t, "int.json", `{"acme_core": ["acme.core"]}`),
	}

	if err := runCheck(context.Background(), manifest, opts); err != nil {
		t.Errorf("runCheck = %v, want nil", err)
	}
}

func TestRunCheck_Drift(t *testing.T) {
	manifest := writeManifest(t, checkManifest)
	opts := checkOpts{
		extImports: writeJSON(t, "ext.json", `{"undeclared": ["undeclared"]}`),
	}

	err := runCheck(context.Background(), manifest, opts)
	if !errors.Is(err, errors.ErrCodeDependencyDrift) {
		t.Errorf("runCheck = %v, want DEPENDENCY_DRIFT", err)
	}
}

func TestRunCheck_MissingManifest(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "pyproject.toml")
	err := runCheck(context.Background(), missing, checkOpts{})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("runCheck = %v, want FILE_NOT_FOUND", err)
	}
}

func TestRunCheck_MalformedManifest(t *testing.T) {
	manifest := writeManifest(t, "]( not toml")
	err := runCheck(context.Background(), manifest, checkOpts{})
	if !errors.Is(err, errors.ErrCodeMalformedDocument) {
		t.Errorf("runCheck = %v, want MALFORMED_DOCUMENT", err)
	}
}
