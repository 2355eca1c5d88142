package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/weldtool/weld/pkg/config"
	"github.com/weldtool/weld/pkg/deps"
	"github.com/weldtool/weld/pkg/errors"
)

// checkOpts holds the command-line flags for the check command.
type checkOpts struct {
	extImports string // path to the external-scope imports JSON
	intImports string // path to the internal-scope imports JSON
}

// newCheckCmd creates the check command. It loads a package manifest, builds
// the package's dependency record, diffs it against the supplied import
// mappings, and exits non-zero when any drift is found.
//
// The import mappings come from an external scanner; weld does not scan
// source itself.
func newCheckCmd() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check <pyproject.toml>",
		Short: "Diff declared dependencies against scanned imports",
		Long: `Diff a package's declared dependencies against the imports an external
scanner observed in its source.

The report covers both directions: dependencies that are declared but never
imported, and imports with no matching declaration. Internal (workspace)
dependencies are those whose [tool.uv.sources] entry sets workspace = true.

Examples:
  weld check libs/acme/pyproject.toml --ext-imports ext.json
  weld check libs/acme/pyproject.toml --ext-imports ext.json --int-imports int.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runCheck(c.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.extImports, "ext-imports", "", "JSON file mapping external dependency names to imported modules")
	cmd.Flags().StringVar(&opts.intImports, "int-imports", "", "JSON file mapping internal dependency names to imported modules")

	return cmd
}

func runCheck(ctx context.Context, path string, opts checkOpts) error {
	logger := loggerFromContext(ctx)

	if err := errors.ValidateManifestPath(path); err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest not found: %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "reading manifest: %s", path)
	}

	conf, err := config.Load(string(data))
	if err != nil {
		return err
	}

	extImports, err := loadImports(opts.extImports)
	if err != nil {
		return err
	}
	intImports, err := loadImports(opts.intImports)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	pkg := conf.PackageDeps(filepath.Dir(path))
	logger.Debugf("package %s: %d external, %d internal declarations",
		pkg.Name, len(pkg.ExtDeps), len(pkg.IntDeps))

	diff := deps.Check(pkg, intImports, extImports)
	prog.done(fmt.Sprintf("Checked %s", pkg.Name))

	if diff.Clean() {
		printSuccess("%s: declarations and imports agree", pkg.Name)
		return nil
	}

	printDiffSection("External dependency drift", diff.ExtDepDiff)
	printDiffSection("Internal dependency drift", diff.IntDepDiff)

	total := len(diff.ExtDepDiff) + len(diff.IntDepDiff)
	return errors.New(errors.ErrCodeDependencyDrift, "%d dependency name(s) out of sync in %s", total, pkg.Name)
}
