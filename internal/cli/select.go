package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/dtokit"
	"github.com/reoring/dtokit/config"
)

func selectCmd(log func() *zap.Logger) *cobra.Command {
	var path, profile, direction string

	c := &cobra.Command{
		Use:   "select [file|-]",
		Short: "Apply a DTO profile to a JSON object",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := dtokit.ParseDirection(direction)
			if err != nil {
				return err
			}
			cfg, err := config.LoadFile(path)
			if err != nil {
				return err
			}
			p, err := cfg.Profile(profile)
			if err != nil {
				return err
			}

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			rec, err := dtokit.FromJSONReader(in)
			if err != nil {
				return err
			}
			out := p.Apply(rec, dir)
			log().Debug("fields selected",
				zap.String("profile", profile),
				zap.Stringer("direction", dir),
				zap.Strings("kept", out.Names()))

			body, err := out.MarshalJSON()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return nil
		},
	}

	c.Flags().StringVarP(&path, "config", "c", "", "Config file (required)")
	c.Flags().StringVarP(&profile, "profile", "p", "", "Profile name (required)")
	c.Flags().StringVarP(&direction, "direction", "d", "read", "Direction: read or write")
	_ = c.MarkFlagRequired("config")
	_ = c.MarkFlagRequired("profile")
	return c
}
