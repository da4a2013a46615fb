package main

import (
	"fmt"
	"io"

	"delivrya/config"
	"delivrya/logger"
	"delivrya/session"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// env is what every command shares once the app has started
type env struct {
	cfg    config.Config
	log    *zap.Logger
	doc    *session.Attributes
	locale *session.Locale
	theme  *session.Theme
	out    io.Writer
}

func (e *env) printf(format string, args ...any) {
	fmt.Fprintf(e.out, format, args...)
}

// money formats an amount in the configured currency
func (e *env) money(d decimal.Decimal) string {
	return d.StringFixed(2) + " " + e.cfg.Pricing.Currency
}

func newApp(out io.Writer) *cli.App {
	e := &env{out: out, log: zap.NewNop()}

	return &cli.App{
		Name:   "delivrya",
		Usage:  "order Moroccan food from the terminal",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "config.yml", Usage: "path to the yaml config file"},
			&cli.StringFlag{Name: "locale", Aliases: []string{"l"}, Value: "fr", Usage: "fr or ar", EnvVars: []string{"DELIVRYA_LOCALE"}},
			&cli.StringFlag{Name: "theme", Value: "light", Usage: "light or dark"},
			&cli.BoolFlag{Name: "verbose", Usage: "log to stderr"},
		},
		Before: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			e.cfg = cfg
			if c.Bool("verbose") {
				if e.log, err = logger.New(cfg.Log.Level); err != nil {
					return err
				}
			}
			e.doc = session.NewAttributes()
			if e.locale, err = session.NewLocale(c.String("locale"), session.WithDocument(e.doc), session.WithLocaleLogger(e.log)); err != nil {
				return err
			}
			e.theme, err = session.NewTheme(session.ThemeMode(c.String("theme")), e.doc)
			return err
		},
		After: func(c *cli.Context) error {
			_ = e.log.Sync()
			return nil
		},
		Commands: []*cli.Command{
			loginCommand(e),
			signupCommand(e),
			logoutCommand(e),
			restaurantsCommand(e),
			menuCommand(e),
			searchCommand(e),
			orderCommand(e),
			qrCommand(e),
			translateCommand(e),
			settingsCommand(e),
		},
	}
}
