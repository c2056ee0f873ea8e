package cli

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/dtokit/exception"
)

func translateCmd() *cobra.Command {
	var status int
	var detail, extra, kind string

	c := &cobra.Command{
		Use:   "translate",
		Short: "Print the response payload for an error",
		Long: `Print the response payload for an error.

With --status the error is a declared HTTP error; without it the error is
treated as undeclared and --kind names its type.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if cmd.Flags().Changed("status") {
				var opts []exception.Option
				if extra != "" {
					var v any
					if jerr := json.Unmarshal([]byte(extra), &v); jerr != nil {
						return fmt.Errorf("parse --extra: %w", jerr)
					}
					opts = append(opts, exception.WithExtra(v))
				}
				err = exception.NewHTTP(status, detail, opts...)
			} else {
				e := exception.NewPlain(detail)
				e.Kind = kind
				err = e
			}
			body, merr := exception.Translate(err).MarshalJSON()
			if merr != nil {
				return merr
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return nil
		},
	}

	c.Flags().IntVar(&status, "status", 0, "HTTP status of a declared error")
	c.Flags().StringVar(&detail, "detail", "", "Error detail")
	c.Flags().StringVar(&extra, "extra", "", "Extra payload as JSON (declared errors only)")
	c.Flags().StringVar(&kind, "kind", "Error", "Kind name of an undeclared error")
	return c
}
