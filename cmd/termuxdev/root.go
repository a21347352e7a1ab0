package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/termuxdev/internal/cli"
	"github.com/aretw0/termuxdev/internal/config"
	"github.com/aretw0/termuxdev/pkg/ports"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags and the lazily built runtime shared by subcommands.
type rootOptions struct {
	envFile    string
	logLevel   string
	logFormat  string
	contentDir string
	model      string
	plain      bool
	offline    bool

	// generator replaces the configured backend; set by tests.
	generator ports.Generator
	rt        *cli.Runtime
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&rootOptions{})
}

func newRootCmdWith(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "termuxdev",
		Short: "TermuxDev helps you build Java and Gradle projects inside Termux",
		Long: `TermuxDev bundles a reference of Termux setup steps, package repositories and
GitHub Actions templates with an AI assistant for Java, Gradle and Android questions.

Answers come from Google Gemini. Set GEMINI_API_KEY (or API_KEY) in the environment
or in a .env file.`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.envFile, "env-file", ".env", "Dotenv file to load before reading the environment")
	pf.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn, error (env "+config.EnvLogLevel+")")
	pf.StringVar(&o.logFormat, "log-format", "", "Log format: text or json (env "+config.EnvLogFormat+")")
	pf.StringVar(&o.contentDir, "content-dir", "", "Directory of Markdown entries merged into the catalog (env "+config.EnvContentDir+")")
	pf.StringVar(&o.model, "model", "", "Gemini model identifier (env "+config.EnvModel+")")
	pf.BoolVar(&o.plain, "plain", false, "Print raw markdown even on a terminal")
	pf.BoolVar(&o.offline, "offline", false, "Do not contact the AI service; queries return the fallback text")

	cmd.AddCommand(
		newServeCmd(o),
		newAskCmd(o),
		newSetupCmd(o),
		newSourcesCmd(o),
		newWorkflowsCmd(o),
		newResourcesCmd(o),
		newMCPCmd(o),
		newVersionCmd(),
	)
	return cmd
}

// runtime resolves .env, environment and flags (in that order of precedence, lowest first)
// and builds the runtime on first use.
func (o *rootOptions) runtime(cmd *cobra.Command) (*cli.Runtime, error) {
	if o.rt != nil {
		return o.rt, nil
	}

	cfg, err := config.Load(o.envFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if flags.Changed("content-dir") {
		cfg.ContentDir = o.contentDir
	}
	if flags.Changed("model") {
		cfg.Model = strings.TrimSpace(o.model)
	}
	if o.offline {
		cfg.Offline = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts []cli.RuntimeOption
	if o.generator != nil {
		opts = append(opts, cli.WithGenerator(o.generator))
	}
	rt, err := cli.NewRuntime(cfg, opts...)
	if err != nil {
		return nil, err
	}
	o.rt = rt
	return rt, nil
}

func (o *rootOptions) output(cmd *cobra.Command) *cli.Output {
	return cli.NewOutput(cmd.OutOrStdout(), o.plain)
}

// joinArgs turns positional words into one query string.
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func usageError(cmd *cobra.Command, err error) error {
	return fmt.Errorf("%w\nRun '%s --help' for usage", err, cmd.CommandPath())
}
