package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	lg "github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/chatmbti"
	"github.com/fwojciec/chatmbti/bubbletea"
	"github.com/fwojciec/chatmbti/clipboard"
	"github.com/fwojciec/chatmbti/gjson"
	"github.com/fwojciec/chatmbti/glamour"
	"github.com/fwojciec/chatmbti/http"
	"github.com/fwojciec/chatmbti/lipgloss"
	"github.com/fwojciec/chatmbti/yaml"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config keys and the flags they are bound to.
var configFlags = map[string]string{
	"server":      "server",
	"timeout":     "timeout",
	"locale":      "locale",
	"locale_file": "locale-file",
	"theme":       "theme",
	"name":        "name",
	"plain":       "plain",
	"verbose":     "verbose",
	"log_file":    "log-file",
}

const plainWidth = 80

// command carries state shared between the root command and its
// subcommands.
type command struct {
	v          *viper.Viper
	configFile string
	cfg        chatmbti.Config
	logger     *zap.Logger
	locales    chatmbti.LocaleLoader
}

// NewRootCommand builds the chatmbti command tree.
func NewRootCommand() *cobra.Command {
	c := &command{v: viper.New(), logger: zap.NewNop(), locales: yaml.NewLocaleLoader()}
	defaults := chatmbti.DefaultConfig()

	root := &cobra.Command{
		Use:   "chatmbti [files...]",
		Short: "Personality type analysis of exported chat conversations",
		Long: `chatmbti uploads exported chat conversations to an analysis service and
presents the result: personality type, per-axis evidence, confidence and a
written report.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = c.logger.Sync()
		},
		RunE: c.run,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "config file (default ./chatmbti.yaml or ~/.config/chatmbti/chatmbti.yaml)")
	flags.String("server", defaults.Server, "analysis service base URL")
	flags.Duration("timeout", defaults.Timeout, "request timeout")
	flags.String("locale", defaults.Locale, "display language (en, ko)")
	flags.String("locale-file", "", "YAML file overriding display strings")
	flags.String("theme", defaults.Theme, "color theme (dark, light)")
	flags.StringP("name", "n", "", "your display name in the exported chat")
	flags.Bool("plain", false, "print the result once instead of opening the interactive view")
	flags.BoolP("verbose", "v", false, "debug logging")
	flags.String("log-file", "", "write logs to this file")

	for k, name := range configFlags {
		_ = c.v.BindPFlag(k, flags.Lookup(name))
	}

	root.AddCommand(c.healthCommand())
	return root
}

// setup loads configuration and builds the logger.
func (c *command) setup(cmd *cobra.Command, _ []string) error {
	c.v.SetEnvPrefix("CHATMBTI")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if c.configFile != "" {
		c.v.SetConfigFile(c.configFile)
	} else {
		c.v.SetConfigName("chatmbti")
		c.v.SetConfigType("yaml")
		c.v.AddConfigPath(".")
		c.v.AddConfigPath("$HOME/.config/chatmbti")
	}
	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	cfg := chatmbti.DefaultConfig()
	if err := c.v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	logger, err := newLogger(cfg, cmd.Name() == "health")
	if err != nil {
		return err
	}
	c.logger = logger
	return nil
}

// newLogger builds the logger. The interactive view owns the terminal, so
// it only logs when a log file is configured.
func newLogger(cfg chatmbti.Config, console bool) (*zap.Logger, error) {
	var outputs []string
	switch {
	case cfg.LogFile != "":
		outputs = []string{cfg.LogFile}
	case cfg.Plain || console:
		outputs = []string{"stderr"}
	default:
		return zap.NewNop(), nil
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if cfg.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.OutputPaths = outputs
	config.ErrorOutputPaths = []string{"stderr"}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func (c *command) analyzer() *http.Analyzer {
	return http.NewAnalyzer(c.cfg.Server, gjson.NewDecoder(),
		http.WithTimeout(c.cfg.Timeout),
		http.WithLogger(c.logger),
	)
}

func (c *command) locale() (chatmbti.Locale, error) {
	loc, err := chatmbti.LocaleByTag(c.cfg.Locale)
	if err != nil {
		return chatmbti.Locale{}, err
	}
	if c.cfg.LocaleFile == "" {
		return loc, nil
	}
	return c.locales.Load(c.cfg.LocaleFile, loc)
}

func (c *command) run(cmd *cobra.Command, args []string) error {
	loc, err := c.locale()
	if err != nil {
		return err
	}
	theme, err := lipgloss.ThemeByName(c.cfg.Theme)
	if err != nil {
		return err
	}

	form := chatmbti.Form{Name: c.cfg.Name}
	for _, path := range args {
		form.Files = append(form.Files, chatmbti.File{Path: path})
	}

	app := &App{
		Stdout:   cmd.OutOrStdout(),
		Analyzer: c.analyzer(),
		Locale:   loc,
		Theme:    theme,
		Plain:    c.cfg.Plain,
	}

	if app.Plain {
		app.Renderer = lg.NewRenderer(app.Stdout)
		app.Width = plainWidth
		style := c.cfg.Theme
		if app.Renderer.ColorProfile() == termenv.Ascii {
			style = glamour.StyleNoTTY
		}
		md, err := glamour.NewRenderer(plainWidth-4, style)
		if err != nil {
			c.logger.Warn("markdown renderer unavailable", zap.Error(err))
		} else {
			app.Markdown = md
		}
		return app.Run(cmd.Context(), form)
	}

	opts := []bubbletea.ModelOption{
		bubbletea.WithLocale(loc),
		bubbletea.WithTheme(theme),
		bubbletea.WithLogger(c.logger),
		bubbletea.WithMeasurer(lipgloss.NewMeasurer()),
		bubbletea.WithMarkdownFactory(func(width int) (chatmbti.MarkdownRenderer, error) {
			return glamour.NewRenderer(width, c.cfg.Theme)
		}),
	}
	if clip, err := clipboard.Detect(); err != nil {
		c.logger.Info("clipboard disabled", zap.Error(err))
	} else {
		opts = append(opts, bubbletea.WithClipboard(clip))
	}
	app.Viewer = bubbletea.NewViewer(app.Analyzer, opts...)
	return app.Run(cmd.Context(), form)
}

// HealthChecker probes the analysis service.
type HealthChecker interface {
	Health(ctx context.Context) (string, error)
}

func (c *command) healthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the analysis service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return CheckHealth(cmd.Context(), cmd.OutOrStdout(), c.analyzer())
		},
	}
}

// CheckHealth prints the service status.
func CheckHealth(ctx context.Context, w io.Writer, hc HealthChecker) error {
	status, err := hc.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "status: %s\n", status)
	return nil
}
