package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raphi011/gittem/internal/cmd"
	"github.com/raphi011/gittem/internal/config"
	"github.com/raphi011/gittem/internal/git"
	"github.com/raphi011/gittem/internal/github"
	"github.com/raphi011/gittem/internal/log"
	"github.com/raphi011/gittem/internal/output"
	"github.com/raphi011/gittem/internal/remote"
	"github.com/raphi011/gittem/internal/ui/styles"
)

// options holds the parsed command line.
type options struct {
	repo       string
	src        string
	org        string
	command    string
	update     string
	filter     string
	configPath string
	color      string

	recurse      bool
	skipArchived bool
	copy         bool
	summary      bool
	verbose      bool
	quiet        bool
}

func (o *options) hasOperation() bool {
	return o.repo != "" || o.org != "" || o.command != "" || o.update != ""
}

// plan is the validated work for one invocation.
type plan struct {
	cfg     config.Config
	srcRoot string
	token   string
	argv    []string
	quiet   bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var o options

	rootCmd := &cobra.Command{
		Use:   "gittem",
		Short: "Clone repositories into a tidy source tree and keep them up to date",
		Long: `gittem clones repositories into <src>/<host>/<owner>/<repo>, clones whole
GitHub organizations, runs git commands across directories and updates
every repository under a directory to the latest default branch without
losing the branch you are on or your uncommitted work.

Operations run in this order: --org (or --repo), then --cmd, then --update.`,
		Example: `  gittem -r git@github.com:spf13/cobra.git      # clone into ~/Sources/github.com/spf13/cobra
  gittem -o my-org --skip-archived              # clone every repo of my-org
  gittem --recurse -c "status -s"               # git status in every subdirectory
  gittem --update ~/Sources/github.com/my-org   # update default branches`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, args []string) error {
			if !o.hasOperation() {
				return c.Help()
			}
			return execute(c, &o, stdout, stderr)
		},
	}

	f := rootCmd.Flags()
	f.StringVarP(&o.repo, "repo", "r", "", "Clone a single repository `url`")
	f.StringVarP(&o.src, "src", "s", "", "Clone root (default: src_root from config, else ~/Sources)")
	f.StringVarP(&o.org, "org", "o", "", "Clone every repository of a GitHub organization (needs GITHUB_TOKEN)")
	f.StringVarP(&o.command, "cmd", "c", "", "Run a git `command` in the current directory")
	f.BoolVar(&o.recurse, "recurse", false, "With --cmd, run in every non-hidden subdirectory instead")
	f.StringVar(&o.update, "update", "", "Update the default branch of every repository under `path`")
	f.BoolVar(&o.summary, "summary", false, "With --update, print a one-line result per repository at the end")
	f.StringVar(&o.filter, "filter", "", "With --org, only clone repositories whose name fuzzy-matches `pattern`")
	f.BoolVar(&o.skipArchived, "skip-archived", false, "With --org, skip archived repositories")
	f.BoolVar(&o.copy, "copy", false, "With --repo, copy the destination path to the clipboard")
	f.StringVar(&o.configPath, "config", "", "Config file (default: $GITTEM_CONFIG or ~/.config/gittem/config.toml)")
	f.StringVar(&o.color, "color", "", "Colorize output: auto, always or never (default: log.color from config, else auto)")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "Show external commands being executed")
	f.BoolVarP(&o.quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	return rootCmd
}

// execute loads configuration, validates the whole invocation up front and
// then runs the selected operations. Only validation errors are returned;
// failures while working on a repository are logged.
func execute(c *cobra.Command, o *options, stdout, stderr io.Writer) error {
	cfgPath, err := config.Path(o.configPath)
	if err != nil {
		return err
	}
	cfg, cfgErr := config.Load(cfgPath)

	logCfg := cfg.Log
	if c.Flags().Changed("verbose") {
		logCfg.Verbose, logCfg.Quiet = o.verbose, false
	}
	if c.Flags().Changed("quiet") {
		logCfg.Quiet, logCfg.Verbose = o.quiet, false
	}
	if c.Flags().Changed("color") {
		if err := config.ValidateColorMode(o.color); err != nil {
			return err
		}
		logCfg.Color = o.color
	}

	ctx := log.WithLogger(c.Context(), log.FromConfig(stderr, logCfg))
	ctx = output.WithPrinter(ctx, styles.Writer(stdout, logCfg.Color))
	l := log.FromContext(ctx)

	if cfgErr != nil {
		l.Warnf("%v", cfgErr)
	}
	if err := config.LoadDotEnv(config.DotEnvFiles(cfgPath)...); err != nil {
		l.Warnf("%v", err)
	}

	pl, err := validate(c, o, cfg)
	if err != nil {
		return err
	}
	if err := git.CheckGit(); err != nil {
		return err
	}
	pl.quiet = logCfg.Quiet

	g := git.New(cmd.Exec{})

	if o.org != "" {
		cloneOrg(ctx, o, pl, g, stderr)
	} else if o.repo != "" {
		cloneRepo(ctx, o, pl, g)
	}
	if o.command != "" {
		runCommand(ctx, o, pl, g)
	}
	if o.update != "" {
		updateAll(ctx, o, g)
	}
	return nil
}

// validate rejects flag combinations and inputs that would make an
// operation fail before it starts.
func validate(c *cobra.Command, o *options, cfg config.Config) (plan, error) {
	pl := plan{cfg: cfg, srcRoot: cfg.SrcRoot}

	switch {
	case o.recurse && o.command == "":
		return pl, errors.New("--recurse requires --cmd")
	case (o.filter != "" || o.skipArchived) && o.org == "":
		return pl, errors.New("--filter and --skip-archived require --org")
	case o.copy && o.repo == "":
		return pl, errors.New("--copy requires --repo")
	case o.summary && o.update == "":
		return pl, errors.New("--summary requires --update")
	}

	if c.Flags().Changed("src") {
		root, err := absPath(o.src)
		if err != nil {
			return pl, fmt.Errorf("invalid --src: %w", err)
		}
		pl.srcRoot = root
	}

	if o.org != "" {
		token, err := github.TokenFromEnv()
		if err != nil {
			return pl, err
		}
		pl.token = token
	} else if o.repo != "" {
		if _, err := remote.Parse(o.repo); err != nil {
			return pl, err
		}
	}

	if o.command != "" {
		argv, err := cmd.Split(o.command)
		if err != nil {
			return pl, err
		}
		pl.argv = argv
	}
	return pl, nil
}

// absPath expands ~ and makes path absolute relative to the working directory.
func absPath(path string) (string, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return "", err
	}
	if expanded == "" {
		return "", errors.New("empty path")
	}
	return filepath.Abs(expanded)
}

func workDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}

func notify(ctx context.Context, err error) {
	if err != nil {
		log.FromContext(ctx).Errorf("%v", err)
	}
}
