package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/dtokit"
	"github.com/reoring/dtokit/config"
)

func checkCmd(log func() *zap.Logger) *cobra.Command {
	var (
		path    string
		verbose bool
	)

	c := &cobra.Command{
		Use:   "check",
		Short: "Validate a schema/profile config file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFile(path)
			if err != nil {
				if iss, ok := dtokit.AsIssues(err); ok {
					for _, it := range iss {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s (%s)\n", it.Path, it.Message, it.Code)
						if it.Hint != "" {
							fmt.Fprintf(cmd.ErrOrStderr(), "  hint: %s\n", it.Hint)
						}
					}
				}
				return err
			}
			log().Debug("config loaded", zap.String("path", path), zap.Strings("profiles", cfg.ProfileNames()))
			if verbose {
				for _, name := range cfg.ProfileNames() {
					p, _ := cfg.Profile(name)
					describeRule(cmd.OutOrStdout(), "", fmt.Sprintf("%s (%s)", name, p.Schema.Name()), p.Rule)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}

	c.Flags().StringVarP(&path, "config", "c", "", "Config file (required)")
	c.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print the compiled rule of every profile")
	_ = c.MarkFlagRequired("config")
	return c
}

// describeRule prints one line per nesting level of r.
func describeRule(w io.Writer, indent, label string, r *dtokit.Rule) {
	if r.IsEmpty() {
		fmt.Fprintf(w, "%s%s: all fields\n", indent, label)
		return
	}
	fmt.Fprintf(w, "%s%s: include=%v exclude=%v\n", indent, label, r.Include(), r.Exclude())
	for _, child := range r.Children() {
		describeRule(w, indent+"  ", child, r.Sub(child))
	}
}
