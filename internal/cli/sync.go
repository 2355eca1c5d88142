package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weldtool/weld/pkg/config"
	"github.com/weldtool/weld/pkg/deps"
	"github.com/weldtool/weld/pkg/errors"
)

const manifestFileMode = 0o644

// syncOpts holds the command-line flags for the sync command.
type syncOpts struct {
	add       []string // specifiers to add to project.dependencies
	workspace []string // dependency names to mark as workspace sources
	write     bool     // write the merged manifest back in place
	check     bool     // report whether the merge would change the file, write nothing
}

// newSyncCmd creates the sync command. It loads a manifest, applies the
// requested dependency and source changes to the overlay, and serializes the
// result through the format-preserving merge. By default the merged text
// goes to stdout; --write updates the file in place.
func newSyncCmd() *cobra.Command {
	var opts syncOpts

	cmd := &cobra.Command{
		Use:   "sync <pyproject.toml>",
		Short: "Merge new dependencies and sources into a manifest",
		Long: `Merge new dependency declarations into a pyproject.toml without disturbing
its formatting. Only the dependency array and the source tables weld governs
are rewritten; comments, key order and whitespace elsewhere stay untouched.

Examples:
  weld sync libs/acme/pyproject.toml --add "httpx>=0.27"
  weld sync libs/acme/pyproject.toml --add acme_core --workspace-source acme_core --write
  weld sync libs/acme/pyproject.toml --add "httpx>=0.27" --check`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runSync(c.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.add, "add", nil, "dependency specifier to append (repeatable)")
	cmd.Flags().StringArrayVar(&opts.workspace, "workspace-source", nil, "dependency name to mark as a workspace source (repeatable)")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write the merged manifest back to the file")
	cmd.Flags().BoolVar(&opts.check, "check", false, "exit non-zero if the merge would change the file, without writing")
	cmd.MarkFlagsMutuallyExclusive("write", "check")

	return cmd
}

func runSync(ctx context.Context, path string, opts syncOpts) error {
	logger := loggerFromContext(ctx)

	if err := errors.ValidateManifestPath(path); err != nil {
		return err
	}
	for _, raw := range opts.add {
		if err := errors.ValidateDependencyName(deps.ParseSpecifier(raw).Name); err != nil {
			return err
		}
	}
	for _, name := range opts.workspace {
		if err := errors.ValidateDependencyName(name); err != nil {
			return err
		}
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

	added := 0
	for _, raw := range opts.add {
		if containsString(conf.Project.Dependencies, raw) {
			logger.Debugf("already declared: %s", raw)
			continue
		}
		conf.Project.Dependencies = append(conf.Project.Dependencies, raw)
		added++
	}
	for _, name := range opts.workspace {
		conf.Tool.Uv.Sources[name] = config.UvSource{Workspace: true}
	}

	out, err := conf.Serialize()
	if err != nil {
		return err
	}

	logger.Debugf("merged %d new declaration(s) into %s", added, path)

	if opts.check {
		if out == string(data) {
			printSuccess("%s is up to date", path)
			return nil
		}
		printWarning("%s would change", path)
		return errors.New(errors.ErrCodeDependencyDrift, "manifest out of sync: %s", path)
	}

	if !opts.write {
		fmt.Print(out)
		return nil
	}

	if err := os.WriteFile(path, []byte(out), manifestFileMode); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "writing manifest: %s", path)
	}
	printSuccess("Merged %d new declaration(s)", added)
	printFile(path)
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
