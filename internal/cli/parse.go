package cli

import (
	"github.com/spf13/cobra"

	"github.com/weldtool/weld/pkg/deps"
)

// newParseCmd creates the parse command, a debugging aid for manifest
// authors: it prints the structured (name, version) split for each given
// specifier, exactly as the merge and diff engines will see it.
func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <specifier>...",
		Short: "Split dependency specifiers into name and version",
		Long: `Split PEP-508-style dependency specifiers into structured name/version pairs.

The split is verbatim: extras stay attached to the name, and the version part
keeps its operators, URL, environment marker and whitespace untouched.

Examples:
  weld parse "requests>=2.28"
  weld parse "uvicorn[standard] @ https://example.com/uvicorn.whl ; python_version>='3.10'"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			logger := loggerFromContext(c.Context())
			for i, raw := range args {
				if i > 0 {
					printNewline()
				}
				d := deps.ParseSpecifier(raw)
				logger.Debugf("split %q", raw)
				printKeyValue("name", d.Name)
				version := d.Version
				if version == "" {
					version = StyleDim.Render("(none)")
				}
				printKeyValue("version", version)
			}
			return nil
		},
	}
}
