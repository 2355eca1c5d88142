package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/weldtool/weld/pkg/errors"
)

func TestLoadImports(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "imports.json")
	content := `{"requests": ["requests", "requests.adapters"], "httpx": ["httpx"]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	imports, err := loadImports(path)
	if err != nil {
		t.Fatalf("loadImports failed: %v", err)
	}

	if !reflect.DeepEqual(imports["requests"], []string{"requests", "requests.adapters"}) {
		t.Errorf("imports[requests] = %v", imports["requests"])
	}
	if len(imports) != 2 {
		t.Errorf("len(imports) = %d, want 2", len(imports))
	}
}

func TestLoadImports_EmptyPath(t *testing.T) {
	imports, err := loadImports("")
	if err != nil {
		t.Fatalf("loadImports failed: %v", err)
	}
	if len(imports) != 0 {
		t.Errorf("imports = %v, want empty", imports)
	}
}

func TestLoadImports_Missing(t *testing.T) {
	_, err := loadImports(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadImports_BadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "imports.json")
	if err := os.WriteFile(path, []byte(`["not", "an", "object"]`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := loadImports(path)
	if !errors.Is(err, errors.ErrCodeInvalidImports) {
		t.Errorf("error = %v, want INVALID_IMPORTS", err)
	}
}
