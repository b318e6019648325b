package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/healthscript/healthscript-backend/internal/app"
	"github.com/healthscript/healthscript-backend/internal/client"
)

const usage = `usage: healthscript [global flags] <command> [flags] [args]

commands:
  login               sign in and store the session token
  register            create an account and sign in
  forgot-password     request a password reset email
  logout              forget the stored session token
  prescriptions       list | get ID | add | update ID | delete ID
  appointments        list | get ID | book | update ID | cancel ID
  doctors             list | get ID
  notifications       list | read ID | add
  profile             show | update
  stats               show the health dashboard
  ocr FILE            read a prescription label image
  watch               stream notification events

global flags:
`

type options struct {
	apiURL    string
	tokenFile string
	timeout   time.Duration
	verbose   bool
}

type env struct {
	api    *client.API
	opts   options
	out    io.Writer
	errOut io.Writer
	logger *slog.Logger
}

var errUsage = errors.New("invalid usage")

func main() {
	if err := app.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "load .env:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "error:", describeError(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	global := flag.NewFlagSet("healthscript", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() {
		fmt.Fprint(stderr, usage)
		global.PrintDefaults()
	}

	var opts options
	global.StringVar(&opts.apiURL, "api-url", envOrDefault("HEALTHSCRIPT_API_URL", client.DefaultBaseURL), "backend API base URL")
	global.StringVar(&opts.tokenFile, "token-file", envOrDefault("HEALTHSCRIPT_TOKEN_FILE", ""), "session token file (default: user config dir)")
	global.DurationVar(&opts.timeout, "timeout", envOrDefaultDuration("HEALTHSCRIPT_TIMEOUT", client.DefaultTimeout), "per-request timeout")
	global.BoolVar(&opts.verbose, "v", false, "log every request")
	if err := global.Parse(args); err != nil {
		return err
	}
	if global.NArg() == 0 {
		global.Usage()
		return errUsage
	}

	opts.apiURL = strings.TrimRight(strings.TrimSpace(opts.apiURL), "/")
	if _, err := url.ParseRequestURI(opts.apiURL); err != nil {
		return fmt.Errorf("invalid --api-url: %w", err)
	}
	if opts.tokenFile == "" {
		path, err := client.DefaultTokenPath()
		if err != nil {
			return err
		}
		opts.tokenFile = path
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	e := &env{
		api: client.New(client.Config{
			BaseURL:   opts.apiURL,
			Timeout:   opts.timeout,
			Logger:    logger,
			UserAgent: app.CurrentBuild().UserAgent("healthscript-cli"),
		}, client.NewFileTokenStore(opts.tokenFile)),
		opts:   opts,
		out:    stdout,
		errOut: stderr,
		logger: logger,
	}

	command, rest := global.Arg(0), global.Args()[1:]
	switch command {
	case "login":
		return e.login(ctx, rest)
	case "register":
		return e.register(ctx, rest)
	case "forgot-password":
		return e.forgotPassword(ctx, rest)
	case "logout":
		return e.logout()
	case "prescriptions", "rx":
		return e.prescriptions(ctx, rest)
	case "appointments", "appt":
		return e.appointments(ctx, rest)
	case "doctors":
		return e.doctors(ctx, rest)
	case "notifications":
		return e.notifications(ctx, rest)
	case "profile":
		return e.profile(ctx, rest)
	case "stats":
		return e.stats(ctx)
	case "ocr":
		return e.ocr(ctx, rest)
	case "watch":
		return e.watch(ctx)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", command)
		global.Usage()
		return errUsage
	}
}

func describeError(err error) string {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	switch {
	case client.IsUnauthorized(err):
		return apiErr.Message + " (run `healthscript login` first)"
	case client.IsNetwork(err), client.IsTimeout(err):
		return apiErr.Message
	default:
		return apiErr.Error()
	}
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func envOrDefaultDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
