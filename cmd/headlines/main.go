// Command headlines prints the latest news headlines as a terminal table or
// serves them as a web page.
//
// Usage:
//
//	headlines [--category C] [--language L] [--country C] [--limit N] [--q KEYWORD]
//	headlines --web [--addr :8000] [--category C] [--country C] [--limit N] [--q KEYWORD]
//	headlines version
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"headlines/internal/config"
	"headlines/internal/domain/entity"
	"headlines/internal/handler/http/respond"
	"headlines/internal/infra/newsdata"
	"headlines/internal/observability/logging"
	"headlines/internal/render/table"
	uc "headlines/internal/usecase/headlines"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		_ = table.RenderError(os.Stderr, sanitized(err))
		os.Exit(1)
	}
}

// options holds the command-line flags.
type options struct {
	category   string
	language   string
	country    string
	limit      int
	keyword    string
	web        bool
	addr       string
	configFile string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "headlines",
		Short:         "Show the latest news headlines",
		Long:          "headlines fetches the latest news from the NewsData API and prints it as a table, or serves it as a web page with --web.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.LoadOptions{ConfigFile: opts.configFile})
			if err != nil {
				return err
			}
			if os.Getenv("VERSION") == "" {
				cfg.Version = version
			}
			in := opts.input(cmd, cfg)

			if opts.web {
				if opts.addr != "" {
					cfg.Web.Addr = opts.addr
				}
				if _, err := entity.NewQuery(in); err != nil {
					return err
				}
				logger := logging.NewLogger(stdout, cfg.Log.Level)
				slog.SetDefault(logger)
				return runWeb(cmd.Context(), cfg, in, logger)
			}

			logger := logging.NewTextLogger(stderr, terminalLevel(cfg.Log.Level))
			slog.SetDefault(logger)
			return runTerminal(cmd.Context(), cfg, in, stdout)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.category, "category", "", "news category ("+joined(entity.Categories())+")")
	flags.StringVar(&opts.language, "language", string(entity.DefaultLanguage), "language code ("+joined(entity.Languages())+")")
	flags.StringVar(&opts.country, "country", "", "country code ("+joined(entity.Countries())+")")
	flags.IntVar(&opts.limit, "limit", entity.DefaultLimit, fmt.Sprintf("number of headlines (%d-%d)", entity.MinLimit, entity.MaxLimit))
	flags.StringVar(&opts.keyword, "q", "", "keyword to search for")
	flags.BoolVar(&opts.web, "web", false, "serve the headlines as a web page")
	flags.StringVar(&opts.addr, "addr", "", "listen address in web mode (default from WEB_ADDR or :8000)")
	flags.StringVar(&opts.configFile, "config", "", "path to a YAML config file")

	cmd.AddCommand(newVersionCmd(stdout))
	return cmd
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "headlines %s\n", version)
		},
	}
}

// input builds the query input from the flags. Language and limit fall back
// to the configured defaults unless given explicitly.
func (o *options) input(cmd *cobra.Command, cfg *config.Config) entity.QueryInput {
	in := cfg.DefaultInput()
	in.Keyword = o.keyword
	in.Category = o.category
	in.Country = o.country
	if cmd.Flags().Changed("language") {
		in.Language = o.language
	}
	if cmd.Flags().Changed("limit") {
		in.Limit = o.limit
	}
	return in
}

// newService wires the NewsData client behind the response cache.
func newService(cfg *config.Config) (*uc.Service, *newsdata.Client, error) {
	client, err := newsdata.NewClient(newsdata.Config{
		BaseURL:  cfg.NewsData.BaseURL,
		APIKey:   cfg.NewsData.APIKey,
		Timeout:  cfg.NewsData.Timeout,
		PageSize: cfg.NewsData.PageSize,
	})
	if err != nil {
		return nil, nil, &config.ConfigError{Key: "NEWSDATA_BASE_URL", Err: err}
	}
	return uc.NewService(uc.NewCache(client, cfg.Cache.TTL)), client, nil
}

// terminalLevel keeps the table output clean unless debug logging was asked for.
func terminalLevel(level string) string {
	switch parsed := logging.ParseLevel(level); {
	case parsed == slog.LevelDebug, parsed >= slog.LevelWarn:
		return level
	default:
		return "warn"
	}
}

func sanitized(err error) error {
	return errors.New(respond.SanitizeError(err))
}

func joined(values []string) string {
	return strings.Join(values, ", ")
}
