package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/refkit/internal/errors"
)

func errorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "errors [code]",
		Short: "List error codes or explain one",
		Long: `Without arguments, list every registered error code with its category
and message. With a code, print the full explanation for it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				if _, ok := errors.GetTemplate(args[0]); !ok {
					return errors.Newf(errors.CategoryCLI, "unknown error code %q", args[0]).
						WithSuggestion("Run 'refkit errors' to list the registered codes")
				}
				fmt.Fprint(out, errors.New(args[0]).Format())
				return nil
			}

			for _, code := range errors.GetAllCodes() {
				t, _ := errors.GetTemplate(code)
				fmt.Fprintf(out, "%s  %-8s %s\n", code, t.Category, t.Message)
			}
			return nil
		},
	}

	return cmd
}
