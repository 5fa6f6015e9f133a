package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

var (
	baseURLFlag = &cli.StringFlag{
		Name:    "url",
		Aliases: []string{"u"},
		Usage:   "MODAPS web services base URL",
	}
	tokenFlag = &cli.StringFlag{
		Name:  "token",
		Usage: "Earthdata bearer token (defaults to $EARTHDATA_TOKEN)",
	}
	envFileFlag = &cli.StringFlag{
		Name:  "env-file",
		Usage: "Path to a .env file with EARTHDATA_TOKEN",
	}
	timeoutFlag = &cli.DurationFlag{
		Name:    "timeout",
		Aliases: []string{"t"},
		Usage:   "HTTP client timeout (e.g. 30s, 1m)",
		Value:   60 * time.Second,
	}
	verboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Enable debug logging",
	}
)

func main() {
	cmd := &cli.Command{
		Name:  "laads",
		Usage: "Search and download LAADS granules",
		Flags: []cli.Flag{baseURLFlag, tokenFlag, envFileFlag, timeoutFlag, verboseFlag},
		Commands: []*cli.Command{
			newSearchCommand(),
			newDownloadCommand(),
			newProductsCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogger configures the process logger from the global flags and
// returns it for injection into the library packages.
func setupLogger(cmd *cli.Command) *logrus.Logger {
	log := logrus.StandardLogger()
	if cmd.Bool(verboseFlag.Name) {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// resolveToken returns the Earthdata token from the flag or the
// environment, loading a .env file first when one is configured.
func resolveToken(cmd *cli.Command) (string, error) {
	if path := cmd.String(envFileFlag.Name); path != "" {
		if err := godotenv.Load(path); err != nil {
			return "", fmt.Errorf("loading %s: %w", path, err)
		}
	} else {
		// A .env in the working directory is optional.
		_ = godotenv.Load()
	}

	if token := cmd.String(tokenFlag.Name); token != "" {
		return token, nil
	}
	return os.Getenv("EARTHDATA_TOKEN"), nil
}
