package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/dmitrymomot/cookiecheck/pkg/cookie"
	"github.com/dmitrymomot/cookiecheck/pkg/logger"
	"github.com/dmitrymomot/cookiecheck/pkg/probe"
)

var inspectFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "cookie, c",
		Usage: "document cookie string, e.g. \"a=1; b=2\"",
	},
	cli.BoolFlag{
		Name:  "seed",
		Usage: "write the sentinel before the check, as step 1 would",
	},
	cli.StringFlag{
		Name:  "expiry-mode",
		Value: cookie.ExpiryDays.String(),
		Usage: "how day counts become expiry times: days or legacy",
	},
	cli.StringFlag{
		Name:  "log-level",
		Value: "info",
		Usage: "log level for diagnostics on stderr",
	},
}

func inspect(c *cli.Context) error {
	mode, err := cookie.ParseExpiryMode(c.String("expiry-mode"))
	if err != nil {
		return err
	}

	stdout := c.App.Writer
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := c.App.ErrWriter
	if stderr == nil {
		stderr = os.Stderr
	}

	log, err := inspectLogger(c.String("log-level"), stderr)
	if err != nil {
		return err
	}

	return runInspect(context.Background(), stdout, log, c.String("cookie"), c.Bool("seed"), mode)
}

// runInspect loads raw into a jar, runs the check once and prints the
// outcome followed by the jar contents.
func runInspect(ctx context.Context, w io.Writer, log *slog.Logger, raw string, seed bool, mode cookie.ExpiryMode) error {
	jar := cookie.NewJar()
	jar.Load(raw)

	p := probe.New(probe.WithLogger(log), probe.WithExpiryMode(mode))
	if seed {
		p.Seed(jar)
	}

	_, err := p.Run(ctx, jar, func(_ context.Context, received bool) error {
		_, err := fmt.Fprintf(w, "received: %t\n", received)
		return err
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "cookies: %s\n", jar.String())
	return err
}

func inspectLogger(level string, w io.Writer) (*slog.Logger, error) {
	h, err := logger.NewHandler(logger.Config{Level: level, Format: "text"}, w)
	if err != nil {
		return nil, err
	}
	return slog.New(h), nil
}
