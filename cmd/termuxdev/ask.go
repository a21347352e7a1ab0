package main

import (
	"io"

	"github.com/aretw0/termuxdev/internal/cli"
	"github.com/aretw0/termuxdev/internal/presentation/tui"
	"github.com/aretw0/termuxdev/pkg/advice"
	"github.com/spf13/cobra"
)

func newAskCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question...]",
		Short: "Ask the assistant about Java, Gradle, Termux or GitHub Actions",
		Long: `Sends the question to the AI assistant and prints the answer.

With no arguments the question is read from standard input when it is piped;
on a terminal the suggested questions are listed instead.`,
		Example: `  termuxdev ask How do I fix Gradle 404 in Termux?
  echo "Setup Gradle with Kotlin DSL" | termuxdev ask`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := o.runtime(cmd)
			if err != nil {
				return err
			}
			out := o.output(cmd)

			query := joinArgs(args)
			if query == "" {
				in := cmd.InOrStdin()
				if cli.IsTerminalReader(in) {
					return out.Print(tui.SuggestionsView(rt.App.Catalog()))
				}
				if limit := rt.App.MaxQuerySize(); limit > 0 {
					in = io.LimitReader(in, int64(limit)+1)
				}
				data, err := io.ReadAll(in)
				if err != nil {
					return err
				}
				query = string(data)
			}

			answer, err := rt.App.Ask(cmd.Context(), query)
			if err != nil {
				if advice.IsInputError(err) {
					return usageError(cmd, err)
				}
				return err
			}
			return out.Print(tui.AnswerView(query, answer))
		},
	}
}
