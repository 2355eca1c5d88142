package config

import (
	"strings"
	"testing"

	"github.com/weldtool/weld/pkg/errors"
)

func TestSerialize_RoundTripIdentity(t *testing.T) {
	conf, err := Load(sampleManifest)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	out, err := conf.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	if out != sampleManifest {
		t.Errorf("round trip not byte-identical:\n--- got ---\n%s\n--- want ---\n%s", out, sampleManifest)
	}
}

func TestSerialize_NoAnchor(t *testing.T) {
	var conf Conf

	_, err := conf.Serialize()
	if !errors.Is(err, errors.ErrCodeNoAnchor) {
		t.Errorf("error = %v, want NO_ANCHOR", err)
	}
}

func TestSerialize_AppendsOnlyNewDependencies(t *testing.T) {
	conf, err := Load(sampleManifest)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	conf.Project.Dependencies = append(conf.Project.Dependencies, "b>=2.0")

	out, err := conf.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	want := strings.Replace(sampleManifest,
		"    \"acme_core\",\n]",
		"    \"acme_core\",\n    \"b>=2.0\",\n]", 1)
	if out != want {
		t.Errorf("merge output:\n--- got ---\n%s\n--- want ---\n%s", out, want)
	}
}

func TestSerialize_ExactStringDifference(t *testing.T) {
	// An entry differing by one character from an anchor line is wholly new,
	// not an edit of the existing line.
	conf, err := Load(sampleManifest)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	conf.Project.Dependencies = []string{"requests>=2.29", "acme_core"}

	out, err := conf.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	if !strings.Contains(out, "\"requests>=2.28\",") {
		t.Error("existing line was rewritten")
	}
	if !strings.Contains(out, "    \"requests>=2.29\",\n]") {
		t.Errorf("changed specifier not appended as new entry:\n%s", out)
	}
}

func TestSerialize_InlineArrayAppend(t *testing.T) {
	text := `[project]
name = "tiny"
dependencies = ["a>=1"]

[tool.uv.sources]
`
	conf, err := Load(text)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	conf.Project.Dependencies = append(conf.Project.Dependencies, "b>=2")

	out, err := conf.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	if !strings.Contains(out, `dependencies = ["a>=1", "b>=2"]`) {
		t.Errorf("inline append:\n%s", out)
	}
}

func TestSerialize_SourceUpsert(t *testing.T) {
	conf, err := Load(sampleManifest)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	conf.Tool.Uv.Sources["acme_extra"] = UvSource{Workspace: true}

	out, err := conf.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	want := strings.Replace(sampleManifest,
		"acme_core = { workspace = true }",
		"acme_core = { workspace = true }\nacme_extra = { workspace = true }", 1)
	if out != want {
		t.Errorf("source upsert:\n--- got ---\n%s\n--- want ---\n%s", out, want)
	}
}

func TestSerialize_UnaDepsFallback(t *testing.T) {
	text := `[project]
name = "legacy"
dependencies = ["x>=1"]

[tool.una]
namespace = "legacy"
`
	conf, err := Load(text)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	conf.Tool.Una.Deps["acme_core"] = "*"

	out, err := conf.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	want := text + `
[tool.una.deps]
acme_core = "*"
`
	if out != want {
		t.Errorf("una fallback:\n--- got ---\n%s\n--- want ---\n%s", out, want)
	}
}

func TestSerialize_UnaDepsUpsertExistingTable(t *testing.T) {
	text := `[project]
name = "legacy"
dependencies = ["x>=1"]

[tool.una.deps]
acme_core = "*"
`
	conf, err := Load(text)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	conf.Tool.Una.Deps["acme_extra"] = ">=0.2"

	out, err := conf.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	if !strings.Contains(out, "acme_core = \"*\"\nacme_extra = \">=0.2\"\n") {
		t.Errorf("una upsert:\n%s", out)
	}
}

func TestSerialize_MarkerSpacingOnAppend(t *testing.T) {
	text := `[project]
name = "tiny"
dependencies = []

[tool.uv.sources]
`
	conf, err := Load(text)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	conf.Project.Dependencies = append(conf.Project.Dependencies, "n @ http://x;cond")

	out, err := conf.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	if !strings.Contains(out, `"n @ http://x; cond"`) {
		t.Errorf("marker separator not normalized to \"; \":\n%s", out)
	}
}

func TestSerialize_GlobalSemicolonRewrite(t *testing.T) {
	// The safety net is document-wide: once any dependency couples " @ "
	// with ";", semicolons outside the dependency array are rewritten too,
	// and double spaces collapse everywhere (indentation included).
	text := `# note; written by hand
[project]
name = "tiny"
dependencies = [
    "pinned @ https://example.com/pinned.whl ;py>='3.10'",
]

[tool.uv.sources]
`
	conf, err := Load(text)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	out, err := conf.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	want := `# note; written by hand
[project]
name = "tiny"
dependencies = [
  "pinned @ https://example.com/pinned.whl ; py>='3.10'",
]

[tool.uv.sources]
`
	if out != want {
		t.Errorf("global rewrite:\n--- got ---\n%q\n--- want ---\n%q", out, want)
	}
}

func TestSerialize_NoRewriteWithoutURLMarkerCombo(t *testing.T) {
	text := `# note; written by hand
[project]
name = "tiny"
dependencies = ["a>=1 ; py>='3.10'"]

[tool.uv.sources]
`
	conf, err := Load(text)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	out, err := conf.Serialize()
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	if out != text {
		t.Errorf("document rewritten without the \" @ \"+\";\" trigger:\n%s", out)
	}
}
