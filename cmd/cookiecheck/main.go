// Command cookiecheck serves the third-party cookie check and inspects
// cookie strings offline.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "cookiecheck:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "cookiecheck"
	app.HelpName = "cookiecheck"
	app.Usage = "detect whether a browser accepts third-party cookies"
	app.UsageText = "cookiecheck <command> [arguments...]"
	app.Version = version
	app.Commands = []cli.Command{
		{
			Name:   "serve",
			Usage:  "run the HTTP check service (configured from the environment)",
			Action: serve,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "addr, a",
					Usage: "listen address, overrides HTTP_ADDR",
				},
			},
		},
		{
			Name:        "inspect",
			Aliases:     []string{"i"},
			Usage:       "run the check against a document cookie string",
			UsageText:   `cookiecheck inspect --cookie "a=1; third_party_cookie_test=hey there!"`,
			Description: "Loads the cookie string into an in-memory jar, runs the check once and prints the outcome and the jar afterwards.",
			Action:      inspect,
			Flags:       inspectFlags,
		},
	}
	return app
}
