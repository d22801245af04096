package commands

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fintrack-dev/fintrack/internal/api"
	"github.com/fintrack-dev/fintrack/internal/config"
	"github.com/fintrack-dev/fintrack/internal/daterange"
	"github.com/fintrack-dev/fintrack/internal/logging"
	"github.com/fintrack-dev/fintrack/internal/model"
	"github.com/fintrack-dev/fintrack/internal/tokenstore"
)

// configEnv names the config file when --config is not given.
const configEnv = "FINTRACK_CONFIG"

var errNotLoggedIn = errors.New("not logged in (run `fintrack login`)")

type rootFlags struct {
	configPath string
	apiURL     string
	rangeKind  string
	from       string
	to         string
	logLevel   string
}

// app is the state shared by every command of one invocation.
type app struct {
	flags rootFlags

	configPath string
	cfg        *config.Config
	log        *zap.Logger
	tokens     *tokenstore.Tokens
	client     *api.Client
	ranges     *daterange.State
	today      model.Date
}

func (a *app) setup(cmd *cobra.Command) error {
	path, err := a.resolveConfigPath()
	if err != nil {
		return err
	}
	a.configPath = path

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", path, err)
	}
	if a.flags.apiURL != "" {
		cfg.API.URL = a.flags.apiURL
	}
	if a.flags.logLevel != "" {
		cfg.Log.Level = a.flags.logLevel
	}
	a.cfg = cfg

	log, err := logging.New(cfg.Log.Level, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.log = log

	a.tokens = tokenstore.NewTokens(tokenstore.NewFileStore(cfg.TokenPath(path)))
	a.client = api.New(cfg.API.URL, a.tokens,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(log),
	)
	a.today = model.Today()

	return a.initRanges()
}

func (a *app) close() {
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func (a *app) resolveConfigPath() (string, error) {
	if a.flags.configPath != "" {
		return a.flags.configPath, nil
	}
	if p := os.Getenv(configEnv); p != "" {
		return p, nil
	}
	return config.DefaultPath()
}

// initRanges seeds the range state from config and applies --range, --from
// and --to. Bounds without --range select a custom range.
func (a *app) initRanges() error {
	a.ranges = daterange.NewState()
	a.ranges.Subscribe(func(sel daterange.Selection) {
		a.log.Debug("date range selected",
			zap.String("kind", string(sel.Kind)),
			zap.Stringer("range", daterange.Resolve(sel, a.today)),
		)
	})

	kind, err := daterange.ParseKind(a.cfg.Dashboard.DefaultRange)
	if err != nil {
		return err
	}
	a.ranges.SetKind(kind)

	from, err := optionalDate("--from", a.flags.from)
	if err != nil {
		return err
	}
	to, err := optionalDate("--to", a.flags.to)
	if err != nil {
		return err
	}

	switch {
	case a.flags.rangeKind != "":
		kind, err := daterange.ParseKind(a.flags.rangeKind)
		if err != nil {
			return err
		}
		if kind == daterange.Custom {
			a.ranges.SetCustom(from, to)
		} else {
			if from != nil || to != nil {
				return fmt.Errorf("--from/--to need --range custom, not %s", kind)
			}
			a.ranges.SetKind(kind)
		}
	case from != nil || to != nil:
		a.ranges.SetCustom(from, to)
	}
	return nil
}

// queryRange resolves the current selection for a backend query. A reversed
// custom range is refused.
func (a *app) queryRange() (daterange.Range, string, error) {
	sel := a.ranges.Selection()
	if err := sel.Validate(); err != nil {
		return daterange.Range{}, "", err
	}
	return a.ranges.Resolve(a.today), sel.Kind.Label(), nil
}

func (a *app) requireLogin() error {
	tok, err := a.tokens.Token()
	if err != nil {
		return fmt.Errorf("reading token: %w", err)
	}
	if tok == "" {
		return errNotLoggedIn
	}
	return nil
}

func optionalDate(flag, s string) (*model.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", flag, err)
	}
	return &d, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseAmount(flag, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: invalid amount %q", flag, s)
	}
	return d, nil
}

// loggedIn is the PersistentPreRunE of command groups that talk to the
// backend. It replaces the root hook, so it runs setup itself.
func loggedIn(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := a.setup(cmd); err != nil {
			return err
		}
		return a.requireLogin()
	}
}
