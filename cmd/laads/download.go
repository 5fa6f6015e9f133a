package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-laads/pkg/downloader"
)

var (
	urlFileFlag = &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "URL list file, one URL per line",
		Required: true,
	}
	dirFlag = &cli.StringFlag{
		Name:    "dir",
		Aliases: []string{"d"},
		Usage:   "Base directory for downloaded granules",
		Value:   ".",
	}
	downloadWorkersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "Concurrent downloads",
		Value: 3,
	}
)

func newDownloadCommand() *cli.Command {
	return &cli.Command{
		Name:   "download",
		Usage:  "Download granules from a URL list file",
		Flags:  []cli.Flag{urlFileFlag, dirFlag, downloadWorkersFlag},
		Action: downloadAction,
	}
}

func downloadAction(ctx context.Context, cmd *cli.Command) error {
	log := setupLogger(cmd)

	urls, err := readURLFile(cmd.String(urlFileFlag.Name))
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs in %s", cmd.String(urlFileFlag.Name))
	}
	log.Infof("downloading %d granule(s) to %s", len(urls), cmd.String(dirFlag.Name))

	token, err := resolveToken(cmd)
	if err != nil {
		return err
	}

	return downloader.FetchAll(ctx, urls, cmd.String(dirFlag.Name),
		downloader.WithToken(token),
		downloader.WithWorkers(int(cmd.Int(downloadWorkersFlag.Name))),
	)
}

func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			urls = append(urls, line)
		}
	}
	return urls, scanner.Err()
}
