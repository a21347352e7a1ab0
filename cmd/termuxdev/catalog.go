package main

import (
	"fmt"

	"github.com/aretw0/termuxdev/internal/presentation/tui"
	"github.com/aretw0/termuxdev/pkg/advice"
	"github.com/spf13/cobra"
)

func newSetupCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Show the commands that install Java and Gradle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := o.runtime(cmd)
			if err != nil {
				return err
			}
			return o.output(cmd).Print(tui.SetupView(rt.App.Catalog()))
		},
	}
}

func newSourcesCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List Termux package repositories and the mirror fix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := o.runtime(cmd)
			if err != nil {
				return err
			}
			return o.output(cmd).Print(tui.SourcesView(rt.App.Catalog()))
		},
	}
}

func newResourcesCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List documentation links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := o.runtime(cmd)
			if err != nil {
				return err
			}
			return o.output(cmd).Print(tui.ResourcesView(rt.App.Catalog()))
		},
	}
}

func newWorkflowsCmd(o *rootOptions) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "workflows [name]",
		Short: "List GitHub Actions templates or print one",
		Example: `  termuxdev workflows
  termuxdev workflows "Java Gradle Build" --raw > .github/workflows/main.yml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := o.runtime(cmd)
			if err != nil {
				return err
			}
			c := rt.App.Catalog()
			out := o.output(cmd)

			if len(args) == 0 {
				return out.Print(tui.WorkflowsView(c))
			}
			wf, ok := c.Workflow(args[0])
			if !ok {
				return usageError(cmd, fmt.Errorf("unknown workflow %q", args[0]))
			}
			if raw {
				return out.Raw(wf.Content)
			}
			return out.Print(tui.WorkflowView(wf))
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print only the YAML content")
	cmd.AddCommand(newGenerateCmd(o))
	return cmd
}

func newGenerateCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "generate <project details...>",
		Short:   "Generate a workflow for your project with AI",
		Example: `  termuxdev workflows generate Android app with Gradle Kotlin DSL, JDK 17`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := o.runtime(cmd)
			if err != nil {
				return err
			}

			out, err := rt.App.GenerateWorkflow(cmd.Context(), joinArgs(args))
			if err != nil {
				if advice.IsInputError(err) {
					return usageError(cmd, err)
				}
				return err
			}
			// Generated YAML goes out untouched so it can be redirected into a file.
			return o.output(cmd).Raw(out)
		},
	}
}
