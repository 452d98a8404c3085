package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"git.sr.ht/~spc/go-log"
	charmlog "github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/leynos/ortho-config-sub000/cfgerr"
	"github.com/leynos/ortho-config-sub000/cliflags"
	"github.com/leynos/ortho-config-sub000/internal/conf"
	"github.com/leynos/ortho-config-sub000/merge"
)

const invocationKey = "invocation"

func main() {
	app := &cli.App{
		Name:     "hello-world",
		Usage:    "print a greeting assembled from defaults, files, environment and flags",
		Version:  "0.1.0",
		Flags:    rootFlags(),
		Before:   beforeAction,
		Action:   helloAction,
		Metadata: map[string]interface{}{},
		Commands: []*cli.Command{
			{
				Name:   "greet",
				Usage:  "greet the recipient with an optional preamble",
				Flags:  greetFlags(),
				Action: greetAction,
			},
			{
				Name:   "take-leave",
				Usage:  "say goodbye to the recipient",
				Flags:  takeLeaveFlags(),
				Action: takeLeaveAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		var cerr *cfgerr.Error
		var aerr *cfgerr.AggregateError
		if !errors.As(err, &cerr) && !errors.As(err, &aerr) {
			err = cfgerr.CliParsing(err)
		}
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.PathFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "read configuration from `FILE`; it must exist",
		},
		&cli.StringFlag{
			Name:    "recipient",
			Aliases: []string{"r"},
			Usage:   "who to greet",
		},
		&cli.StringSliceFlag{
			Name:    "salutation",
			Aliases: []string{"s"},
			Usage:   "add a salutation; may be repeated",
		},
		&cli.StringFlag{
			Name:  "punctuation",
			Usage: "end the greeting with `MARK`",
			Value: "!",
		},
		&cli.IntFlag{
			Name:  "count",
			Usage: "repeat the greeting `N` times",
		},
		&cli.BoolFlag{
			Name:  "is-excited",
			Usage: "shout the greeting",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "set log `LEVEL` (error, warn, info, debug)",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "log configuration discovery",
		},
	}
}

func greetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "preamble",
			Usage: "print `TEXT` before the greeting",
		},
		&cli.StringFlag{
			Name:  "punctuation",
			Usage: "end the greeting with `MARK`",
			Value: "!",
		},
	}
}

func takeLeaveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "parting",
			Usage: "use `TEXT` as the farewell",
		},
		&cli.StringSliceFlag{
			Name:  "gift",
			Usage: "hand over a gift; may be repeated",
		},
		&cli.BoolFlag{
			Name:  "wave",
			Usage: "wave while leaving",
		},
		&cli.StringFlag{
			Name:  "recipient",
			Usage: "who to say goodbye to",
		},
	}
}

// beforeAction installs the slog handler used by the configuration loader and
// records the root flags before any subcommand runs.
func beforeAction(c *cli.Context) error {
	level := charmlog.WarnLevel
	if c.Bool("verbose") {
		level = charmlog.DebugLevel
	}
	opts := charmlog.Options{
		Prefix: c.App.Name,
		Level:  level,
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		opts.Formatter = charmlog.LogfmtFormatter
	}
	logger := slog.New(charmlog.NewWithOptions(os.Stderr, opts))
	slog.SetDefault(logger)

	c.App.Metadata[invocationKey] = &invocation{
		source: &conf.ConfigSource{ConfigPath: c.Path("config"), Logger: logger},
		flags:  cliflags.FromURFave(c, c.App.Flags, conf.Descriptors()),
	}
	return nil
}

// invocation carries what the root command parsed to the subcommands.
type invocation struct {
	source *conf.ConfigSource
	flags  merge.Layer
}

func invocationFrom(c *cli.Context) *invocation {
	return c.App.Metadata[invocationKey].(*invocation)
}

func readRoot(c *cli.Context) (conf.HelloWorld, error) {
	inv := invocationFrom(c)
	cfg, err := inv.source.Read(inv.flags)
	if err != nil {
		return cfg, err
	}
	if err := setLogLevel(cfg.LogLevel); err != nil {
		return cfg, err
	}
	log.Debugf("resolved configuration: %+v", cfg)
	return cfg, nil
}

func setLogLevel(s string) error {
	if s == "" {
		return nil
	}
	level, err := log.ParseLevel(s)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", s, err)
	}
	log.SetLevel(level)
	return nil
}

func helloAction(c *cli.Context) error {
	cfg, err := readRoot(c)
	if err != nil {
		return err
	}
	for i := 0; i < cfg.Count; i++ {
		fmt.Fprintln(c.App.Writer, cfg.Greeting())
	}
	return nil
}

func greetAction(c *cli.Context) error {
	cfg, err := readRoot(c)
	if err != nil {
		return err
	}
	greet, err := invocationFrom(c).source.ReadGreet(cliflags.FromURFave(c, c.Command.Flags, conf.SubcommandDescriptors[conf.GreetCommand]()))
	if err != nil {
		return err
	}

	if greet.Preamble != "" {
		fmt.Fprintln(c.App.Writer, greet.Preamble)
	}
	cfg.Punctuation = greet.Punctuation
	for i := 0; i < cfg.Count; i++ {
		fmt.Fprintln(c.App.Writer, cfg.Greeting())
	}
	return nil
}

func takeLeaveAction(c *cli.Context) error {
	if _, err := readRoot(c); err != nil {
		return err
	}
	leave, err := invocationFrom(c).source.ReadTakeLeave(cliflags.FromURFave(c, c.Command.Flags, conf.SubcommandDescriptors[conf.TakeLeaveCommand]()))
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s", leave.Parting, leave.Recipient)
	if len(leave.Gifts) > 0 {
		fmt.Fprintf(&b, " (here, take %s)", strings.Join(leave.Gifts, " and "))
	}
	if leave.Wave {
		b.WriteString(" *waves*")
	}
	fmt.Fprintln(c.App.Writer, b.String())
	return nil
}
