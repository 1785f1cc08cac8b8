// fsusage reports space and inode usage of mounted filesystems.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cloudfoundry/fsusage"
	"github.com/cloudfoundry/fsusage/internal/config"
)

var Version = "dev"

type options struct {
	configFile string
	logLevel   string
	textfile   string
	version    bool
	color      bool
	json       bool
	quiet      bool
	pseudoFS   bool
}

func main() {
	os.Exit(run(os.Args[1:], config.LoadEnv(), os.Stdout, os.Stderr))
}

func run(args []string, env config.Env, stdout, stderr io.Writer) int {
	cmd := newRootCommand(env)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var usageErr *fsusage.UsageError
	var notFound *fsusage.SelectorNotFoundError
	switch {
	case errors.As(err, &notFound):
		// Already reported by the reporter, one line per selector.
	case errors.As(err, &usageErr):
		fmt.Fprintf(stderr, "fsusage: %s\n", err)
		fmt.Fprint(stderr, cmd.UsageString())
	default:
		fmt.Fprintf(stderr, "fsusage: %s\n", err)
	}
	return 1
}

func newRootCommand(env config.Env) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "fsusage [flags] [filesystems...]",
		Short: "Show space and inode usage of mounted filesystems",
		Long: `fsusage shows block and inode usage of mounted filesystems.

Filesystems can either be the mount directory (e.g. /), or the disk file
(e.g. /dev/sda1). Omit filesystems to list all of them.

Examples:
  fsusage
  fsusage -q / /home
  fsusage --json /dev/sda1`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, env, args)
		},
	}

	flags := cmd.Flags()
	flags.SetNormalizeFunc(normalizeFlagName)
	flags.BoolVarP(&opts.version, "version", "V", false, "show the version")
	flags.BoolVarP(&opts.color, "color", "c", false, "add color to the output (also --colour)")
	flags.BoolVarP(&opts.json, "json", "j", false, "output in JSON")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "only show mount and block usage on one line")
	flags.BoolVarP(&opts.pseudoFS, "psuedofs", "p", false, "output pseudo filesystems too")
	flags.StringVar(&opts.configFile, "config", "", "YAML defaults file (env FSUSAGE_CONFIG)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (env FSUSAGE_LOG_LEVEL, default warn)")
	flags.StringVar(&opts.textfile, "textfile", "", "also write Prometheus textfile metrics to this path")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &fsusage.UsageError{Err: err}
	})

	return cmd
}

func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "colour":
		name = "color"
	case "pseudofs":
		name = "psuedofs"
	}
	return pflag.NormalizedName(name)
}

func (o *options) run(cmd *cobra.Command, env config.Env, args []string) error {
	if o.version {
		fmt.Fprintf(cmd.OutOrStdout(), "fsusage %s\n", Version)
		return nil
	}

	cfg, err := o.resolve(cmd.Flags(), env)
	if err != nil {
		return err
	}

	logger := setupLogging(cfg.LogLevel, cmd.ErrOrStderr())
	logger.Debug().
		Str("mode", cfg.Display().Mode.String()).
		Bool("color", cfg.Color).
		Strs("filesystems", args).
		Msg("Starting report")

	reporter := fsusage.NewReporter(
		&fsusage.ConcreteSource{MountsFile: cfg.MountsFile},
		cfg.Display(),
		cmd.OutOrStdout(),
		cmd.ErrOrStderr(),
	)
	reporter.Logger = logger
	reporter.Textfile = cfg.Textfile

	return reporter.Run(args)
}

// resolve merges defaults, the config file, the environment and the flags,
// in increasing order of precedence.
func (o *options) resolve(flags *pflag.FlagSet, env config.Env) (config.Config, error) {
	cfg := config.Default()

	path := env.ConfigFile
	if flags.Changed("config") {
		path = o.configFile
	}
	if path != "" {
		f, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg.ApplyFile(f)
	}

	cfg.ApplyEnv(env)

	if flags.Changed("color") {
		cfg.Color = o.color
	}
	if flags.Changed("json") {
		cfg.JSON = o.json
	}
	if flags.Changed("quiet") {
		cfg.Quiet = o.quiet
	}
	if flags.Changed("psuedofs") {
		cfg.PseudoFS = o.pseudoFS
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("textfile") {
		cfg.Textfile = o.textfile
	}

	return cfg, cfg.Validate()
}

func setupLogging(logLevel string, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
