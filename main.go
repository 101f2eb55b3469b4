// potrans — batch translator for gettext PO catalogs: extracts msgids,
// translates them against a LibreTranslate-style endpoint, and writes
// original/translation pairs.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/lokalize-tools/potrans/config"
	"github.com/lokalize-tools/potrans/extract"
	"github.com/lokalize-tools/potrans/i18n"
	"github.com/lokalize-tools/potrans/langmeta"
	"github.com/lokalize-tools/potrans/report"
	"github.com/lokalize-tools/potrans/settings"
	"github.com/lokalize-tools/potrans/translate"
	"github.com/lokalize-tools/potrans/transport"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Exit codes
// ---------------------------------------------------------------------------

// Sentinel errors mapped to distinct process exit codes.
var (
	errInputMissing = errors.New("input unreadable")
	errWriteFailed  = errors.New("output write failed")
)

const (
	exitOK           = 0
	exitGenericError = 1
	exitInputMissing = 2
	exitAborted      = 3
	exitWriteFailed  = 4
)

// exitCode maps an error from the run command to its process exit code.
func exitCode(err error) int {
	var abortErr *translate.AbortError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &abortErr):
		return exitAborted
	case errors.Is(err, errInputMissing):
		return exitInputMissing
	case errors.Is(err, errWriteFailed):
		return exitWriteFailed
	default:
		return exitGenericError
	}
}

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "potrans",
		Short: "Batch translator for gettext PO catalogs",
		Long: `potrans — batch translator for gettext PO catalogs.

Extracts translatable msgids from a .po/.pot catalog, translates them
concurrently against a LibreTranslate-compatible HTTP endpoint, and
writes ORIGINAL/TRANSLATION pairs to an output file atomically.

Commands:
  run         Translate a catalog (the batch job)
  auth        Manage the endpoint API key
  languages   List known locale codes
  version     Show version information

Exit codes of 'run':
  0  success (including catalogs with nothing to translate)
  2  input file missing or unreadable
  3  translation aborted on first failure
  4  output file could not be written`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRunCmd(),
		newAuthCmd(),
		newLanguagesCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")

	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(exitCode(err))
	}
}

// ---------------------------------------------------------------------------
// run (the batch job)
// ---------------------------------------------------------------------------

// runFlags collects the run command's flag values. Zero fields mean
// "not set on the command line".
type runFlags struct {
	input           string
	output          string
	url             string
	source          string
	target          string
	workers         int
	continueOnError bool
	debug           bool
	timeout         time.Duration
	retries         int
	maxLength       int
	parser          string
	apiKey          string
	proxy           string
}

func newRunCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Translate a PO catalog",
		Long: `Translate all msgids of a PO/POT catalog and write the results.

Defaults can be placed in a .potrans.yaml file in the working directory;
command-line flags override the file. The translation endpoint must
accept LibreTranslate-style requests:

  POST {url}  {"q": text, "source": tag, "target": tag, "format": "text"}`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			applyFlags(cfg, cmd, &flags)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			return runBatch(ctx, cfg, flags.apiKey, flags.debug)
		},
	}

	cmd.Flags().StringVarP(&flags.input, "input", "i", "", "input PO/POT catalog (default "+config.DefaultInput+")")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default "+config.DefaultOutput+")")
	cmd.Flags().StringVarP(&flags.url, "url", "u", "", "translation endpoint URL (default "+config.DefaultURL+")")
	cmd.Flags().StringVarP(&flags.source, "source", "s", "", "source locale tag (default "+config.DefaultSource+")")
	cmd.Flags().StringVarP(&flags.target, "target", "t", "", "target locale tag (default "+config.DefaultTarget+")")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "concurrent workers (default 4)")
	cmd.Flags().BoolVar(&flags.continueOnError, "continue-on-error", false, "record failures instead of aborting")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "verbose logging")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "per-request timeout (default 15s)")
	cmd.Flags().IntVar(&flags.retries, "retries", 0, "retries on transient server errors (default 3)")
	cmd.Flags().IntVar(&flags.maxLength, "max-length", 0, "truncation ceiling in bytes (default 5000)")
	cmd.Flags().StringVar(&flags.parser, "parser", "", "catalog parser: po or scan (default po)")
	cmd.Flags().StringVar(&flags.apiKey, "api-key", "", "endpoint API key (overrides stored key)")
	cmd.Flags().StringVar(&flags.proxy, "proxy", "", "HTTP/HTTPS proxy URL")

	return cmd
}

// applyFlags overlays flags that were set on the command line onto the
// loaded configuration.
func applyFlags(cfg *config.File, cmd *cobra.Command, flags *runFlags) {
	if cmd.Flags().Changed("input") {
		cfg.Input = flags.input
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = flags.output
	}
	if cmd.Flags().Changed("url") {
		cfg.URL = flags.url
	}
	if cmd.Flags().Changed("source") {
		cfg.Source = flags.source
	}
	if cmd.Flags().Changed("target") {
		cfg.Target = flags.target
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = flags.workers
	}
	if cmd.Flags().Changed("continue-on-error") {
		cfg.ContinueOnError = flags.continueOnError
	}
	if cmd.Flags().Changed("timeout") {
		cfg.TimeoutSeconds = int(flags.timeout.Seconds())
	}
	if cmd.Flags().Changed("retries") {
		cfg.Retries = flags.retries
	}
	if cmd.Flags().Changed("max-length") {
		cfg.MaxLength = flags.maxLength
	}
	if cmd.Flags().Changed("parser") {
		cfg.Parser = flags.parser
	}
	if cmd.Flags().Changed("proxy") {
		cfg.Proxy = flags.proxy
	}
}

// runBatch executes the full pipeline: extract, translate, write.
func runBatch(ctx context.Context, cfg *config.File, apiKeyFlag string, debug bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if _, err := os.Stat(cfg.Input); err != nil {
		logError(i18n.T("Input file not found: %s"), cfg.Input)
		return fmt.Errorf("%w: %s", errInputMissing, cfg.Input)
	}

	entries, err := extract.FromFile(cfg.Input, cfg.Parser)
	if err != nil {
		return fmt.Errorf("%w: %v", errInputMissing, err)
	}
	if len(entries) == 0 {
		logInfo(i18n.T("No translatable strings found."))
		return nil
	}
	logInfo(i18n.T("Found %d translatable strings."), len(entries))

	debugLog := func(format string, args ...any) {}
	if debug {
		debugLog = logInfo
	}

	client := transport.New(transport.Config{
		Retries: cfg.Retries,
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		Proxy:   cfg.Proxy,
		OnLog:   debugLog,
	})

	logInfo(i18n.T("Translating %s -> %s (%s) with %d workers..."),
		cfg.Source, cfg.Target, langmeta.Name(cfg.Target), cfg.Workers)

	records, err := translate.Run(ctx, client, entries, translate.Options{
		Endpoint:        cfg.URL,
		Source:          cfg.Source,
		Target:          cfg.Target,
		APIKey:          settings.ResolveAPIKey(apiKeyFlag),
		Workers:         cfg.Workers,
		ContinueOnError: cfg.ContinueOnError,
		MaxTextLen:      cfg.MaxLength,
		OnLog:           debugLog,
		OnError:         logWarning,
		Verbose:         debug,
	})
	if err != nil {
		var abortErr *translate.AbortError
		if errors.As(err, &abortErr) {
			logError(i18n.T("Translation aborted: %v"), abortErr)
		}
		return err
	}

	if err := report.Write(cfg.Output, records); err != nil {
		logError(i18n.T("Could not write output file: %v"), err)
		return fmt.Errorf("%w: %v", errWriteFailed, err)
	}

	logSuccess(i18n.T("Results saved to %s"), cfg.Output)
	return nil
}

// ---------------------------------------------------------------------------
// auth (endpoint API key management)
// ---------------------------------------------------------------------------

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the endpoint API key",
		Long: `Store, show, or remove the API key sent with translation requests.

The key is stored in $XDG_DATA_HOME/potrans/auth.json (0600). Lookup
order at run time: --api-key flag, ` + settings.EnvAPIKey + ` environment
variable, stored key.`,
	}

	var keyURL string
	set := &cobra.Command{
		Use:   "set <key>",
		Short: "Store an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := settings.Save(&settings.Credentials{Key: args[0], URL: keyURL}); err != nil {
				return err
			}
			logSuccess(i18n.T("API key saved."))
			return nil
		},
	}
	set.Flags().StringVar(&keyURL, "url", "", "endpoint the key belongs to")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the stored API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := settings.Load()
			if err != nil {
				return err
			}
			if creds == nil || creds.Key == "" {
				logInfo(i18n.T("No API key stored."))
				return nil
			}
			fmt.Printf("key: %s\n", maskKey(creds.Key))
			if creds.URL != "" {
				fmt.Printf("url: %s\n", creds.URL)
			}
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove",
		Short: "Remove the stored API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := settings.Remove(); err != nil {
				return err
			}
			logSuccess(i18n.T("API key removed."))
			return nil
		},
	}

	cmd.AddCommand(set, show, remove)
	return cmd
}

// maskKey hides all but the last four characters of a key.
func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

// ---------------------------------------------------------------------------
// languages
// ---------------------------------------------------------------------------

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List known locale codes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, code := range langmeta.Codes() {
				fmt.Printf("%-6s %s\n", code, langmeta.Name(code))
			}
		},
	}
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("potrans version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}
}
