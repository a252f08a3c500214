package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/google/uuid"
	"github.com/lukehollenback/coinbase-api/constants"
	"github.com/lukehollenback/coinbase-api/exchange"
	"github.com/lukehollenback/coinbase-api/exchange/coinbase"
	"github.com/lukehollenback/coinbase-api/output"
	"github.com/sirupsen/logrus"
)

const (
	Name = "≪goose-cb≫"

	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var errUsage = errors.New("usage")

//
// App is the command line tool. The zero value writes nowhere; main wires it to the process's
// standard streams.
//
type App struct {
	Stdout io.Writer
	Stderr io.Writer

	//
	// RoundTripper replaces the default TLS transport of the clients the app builds when set.
	//
	RoundTripper http.RoundTripper
}

//
// session is what a command runs against. Only the client the command needs is built.
//
type session struct {
	market  *coinbase.MarketDataClient
	private *coinbase.PrivateClient
	out     *output.Writer
	log     *logrus.Entry
	stderr  io.Writer
}

type command struct {
	name    string
	summary string
	private bool
	run     func(ctx context.Context, s *session, args []string) error
}

func commands() []command {
	return []command{
		{name: "products", summary: "List the available currency pairs.", run: runProducts},
		{name: "book", summary: "Show a product's order book.", run: runBook},
		{name: "ticker", summary: "Show a product's last trade, best bid and best ask.", run: runTicker},
		{name: "trades", summary: "List a product's latest trades.", run: runTrades},
		{name: "candles", summary: "List a product's historic rates.", run: runCandles},
		{name: "stats", summary: "Show a product's 24 hour stats.", run: runStats},
		{name: "currencies", summary: "List the known currencies.", run: runCurrencies},
		{name: "time", summary: "Show the API server's time.", run: runTime},
		{name: "snapshot", summary: "Summarize one or more products concurrently.", run: runSnapshot},
		{name: "accounts", summary: "List your trading accounts.", private: true, run: runAccounts},
		{name: "account", summary: "Show one trading account.", private: true, run: runAccount},
		{name: "ledger", summary: "List an account's activity.", private: true, run: runLedger},
		{name: "holds", summary: "List the holds on an account.", private: true, run: runHolds},
		{name: "orders", summary: "List your orders.", private: true, run: runOrders},
		{name: "order", summary: "Show one order.", private: true, run: runOrder},
		{name: "fills", summary: "List your fills.", private: true, run: runFills},
		{name: "trailing-volume", summary: "Show your 30 day trailing volume.", private: true, run: runTrailingVolume},
	}
}

func lookup(name string) (command, bool) {
	for _, cmd := range commands() {
		if cmd.name == name {
			return cmd, true
		}
	}

	return command{}, false
}

//
// Run executes the command named by args and returns the process exit code.
//
func (o *App) Run(ctx context.Context, args []string) int {
	err := o.run(ctx, args)

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, errUsage):
		fmt.Fprintf(o.Stderr, "%s: %s\n", constants.AppName, err)

		return exitUsage
	}

	fmt.Fprintf(o.Stderr, "%s: %s\n", constants.AppName, describe(err))

	return exitFailure
}

func (o *App) run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet(constants.AppName, flag.ContinueOnError)
	fs.SetOutput(o.Stderr)
	fs.Usage = func() { o.usage(fs) }

	cfgEnvFile := fs.String("env-file", "", "A .env file to load configuration from (defaults to ./.env when present).")
	cfgFormat := fs.String("format", "text", "The output format (text or csv).")
	cfgColor := fs.Bool("color", true, "Whether to colour text output.")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		o.usage(fs)

		return fmt.Errorf("%w: no command provided", errUsage)
	}

	cmd, ok := lookup(fs.Arg(0))
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, fs.Arg(0))
	}

	format, err := output.ParseFormat(*cfgFormat)
	if err != nil {
		return fmt.Errorf("%w: %s", errUsage, err)
	}

	cfg, err := LoadConfig(*cfgEnvFile)
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(cfg, o.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	entry := logger.WithFields(logrus.Fields{
		"app":    Name,
		"run_id": uuid.NewString(),
	})

	env, err := cfg.Env()
	if err != nil {
		return err
	}

	opts := []coinbase.Option{coinbase.WithLogger(entry), coinbase.WithUserAgent(cfg.UserAgent)}
	if o.RoundTripper != nil {
		opts = append(opts, coinbase.WithRoundTripper(o.RoundTripper))
	}

	s := &session{
		out:    output.NewWriter(o.Stdout, format, *cfgColor),
		log:    entry,
		stderr: o.Stderr,
	}

	if cmd.private {
		creds, err := cfg.Credentials()
		if err != nil {
			return err
		}

		if s.private, err = coinbase.NewPrivateClient(env, creds, opts...); err != nil {
			return err
		}
	} else {
		if s.market, err = coinbase.NewMarketDataClient(env, opts...); err != nil {
			return err
		}
	}

	entry.WithFields(logrus.Fields{
		"command":     cmd.name,
		"environment": env.String(),
	}).Debug("Running command.")

	if err := cmd.run(ctx, s, fs.Args()[1:]); err != nil {
		return err
	}

	return s.out.Flush()
}

func (o *App) usage(fs *flag.FlagSet) {
	fmt.Fprintf(o.Stderr, "Usage: %s [flags] <command> [command flags]\n\nFlags:\n", constants.AppName)
	fs.PrintDefaults()

	cmds := commands()
	sort.SliceStable(cmds, func(i, j int) bool { return !cmds[i].private && cmds[j].private })

	fmt.Fprintf(o.Stderr, "\nCommands:\n")

	for _, cmd := range cmds {
		label := cmd.name
		if cmd.private {
			label += " *"
		}

		fmt.Fprintf(o.Stderr, "  "+constants.LabelFmt+"%s\n", label, cmd.summary)
	}

	fmt.Fprintf(o.Stderr, "\n* needs %s_API_KEY, %s_API_SECRET and %s_API_PASSPHRASE.\n",
		constants.EnvPrefix, constants.EnvPrefix, constants.EnvPrefix)
}

//
// describe turns an error into the line shown to the user. Rejections carrying a Coinbase Pro error
// message are shown as that message.
//
func describe(err error) string {
	var decodeErr *exchange.DecodeError

	if errors.As(err, &decodeErr) {
		if apiErr, ok := decodeErr.APIError(); ok {
			return fmt.Sprintf("Coinbase Pro rejected the request (status %d): %s", decodeErr.StatusCode, apiErr.Message)
		}
	}

	return err.Error()
}

//
// flags creates the flag set of a command.
//
func (o *session) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(constants.AppName+" "+name, flag.ContinueOnError)
	fs.SetOutput(o.stderr)

	return fs
}

//
// parse parses a command's flags and rejects stray positional arguments unless the command takes
// them.
//
func (o *session) parse(fs *flag.FlagSet, args []string, positional bool) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}

		return fmt.Errorf("%w: %s", errUsage, err)
	}

	if !positional && fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", errUsage, fs.Arg(0))
	}

	return nil
}

//
// requireUUID checks that an account or order id looks like one before it is sent anywhere.
//
func requireUUID(flagName string, value string) error {
	if value == "" {
		return fmt.Errorf("%w: -%s is required", errUsage, flagName)
	}

	if _, err := uuid.Parse(value); err != nil {
		return fmt.Errorf("%w: -%s must be a UUID: %s", errUsage, flagName, err)
	}

	return nil
}
