package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/robert-malhotra/go-laads/pkg/laads"
	"github.com/robert-malhotra/go-laads/pkg/modaps"
)

var (
	productFlag = &cli.StringFlag{
		Name:     "product",
		Aliases:  []string{"p"},
		Usage:    "Product name (e.g. MOD35_L2)",
		Required: true,
	}
	collectionFlag = &cli.StringFlag{
		Name:     "collection",
		Aliases:  []string{"c"},
		Usage:    "Collection number (e.g. 61)",
		Required: true,
	}
	startFlag = &cli.StringFlag{
		Name:     "start",
		Usage:    "Start time, YYYYMMDDHHMM or YYYYMMDD",
		Required: true,
	}
	endFlag = &cli.StringFlag{
		Name:     "end",
		Usage:    "End time, YYYYMMDDHHMM or YYYYMMDD",
		Required: true,
	}
	bboxFlag = &cli.StringFlag{
		Name:     "bbox",
		Usage:    "Bounding box as north,south,west,east in degrees",
		Required: true,
	}
	modeFlag = &cli.StringFlag{
		Name:  "mode",
		Usage: "Spatial filter mode: coords or tiles",
		Value: string(laads.TilingCoords),
	}
	dayNightFlag = &cli.StringFlag{
		Name:  "day-night",
		Usage: "Acquisition filter: D, N or DNB",
		Value: string(laads.DayNightBoth),
	}
	outFlag = &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "Write resolved URLs to this file, one per line",
	}
	overwriteFlag = &cli.BoolFlag{
		Name:  "overwrite",
		Usage: "Replace the output file if it exists",
	}
	workersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "Concurrent catalog queries",
		Value: laads.DefaultWorkers,
	}
	capFlag = &cli.IntFlag{
		Name:  "cap",
		Usage: "Result budget per catalog query",
		Value: laads.DefaultCapPerQuery,
	}
)

func newSearchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the catalog and resolve granule download URLs",
		Flags: []cli.Flag{
			productFlag, collectionFlag, startFlag, endFlag, bboxFlag,
			modeFlag, dayNightFlag, outFlag, overwriteFlag, workersFlag, capFlag,
		},
		Action: searchAction,
	}
}

func searchAction(ctx context.Context, cmd *cli.Command) error {
	log := setupLogger(cmd)

	timeRange, err := parseTimeRange(cmd.String(startFlag.Name), cmd.String(endFlag.Name))
	if err != nil {
		return err
	}
	extent, err := parseBbox(cmd.String(bboxFlag.Name))
	if err != nil {
		return err
	}
	mode, err := parseMode(cmd.String(modeFlag.Name))
	if err != nil {
		return err
	}
	dayNight, err := parseDayNight(cmd.String(dayNightFlag.Name))
	if err != nil {
		return err
	}

	catalog, err := newCatalog(cmd, log)
	if err != nil {
		return err
	}
	orch, err := laads.NewOrchestrator(catalog,
		laads.WithWorkers(int(cmd.Int(workersFlag.Name))),
		laads.WithCapPerQuery(int(cmd.Int(capFlag.Name))),
		laads.WithLogger(log),
	)
	if err != nil {
		return err
	}

	session := laads.NewSession(
		cmd.String(productFlag.Name),
		cmd.String(collectionFlag.Name),
		timeRange, extent, mode, dayNight,
	)

	result, err := orch.Execute(ctx, session)
	if err != nil {
		return err
	}
	for _, failed := range result.Failed {
		log.Errorf("chunk %s failed: %v", failed.Chunk, failed.Err)
	}
	log.Infof("resolved %d granule URL(s)", len(result.URLs))

	if out := cmd.String(outFlag.Name); out != "" {
		if err := laads.WriteURLFile(out, result.URLs, cmd.Bool(overwriteFlag.Name)); err != nil {
			return err
		}
		log.Infof("wrote %s", out)
	} else {
		for _, u := range result.URLs {
			fmt.Fprintln(os.Stdout, u)
		}
	}

	if len(result.Failed) > 0 {
		return fmt.Errorf("%d chunk(s) failed; re-run to retry those windows", len(result.Failed))
	}
	return nil
}

func newCatalog(cmd *cli.Command, log laads.Logger) (*modaps.Client, error) {
	token, err := resolveToken(cmd)
	if err != nil {
		return nil, err
	}

	opts := []modaps.ClientOption{
		modaps.WithTimeout(cmd.Duration(timeoutFlag.Name)),
		modaps.WithToken(token),
		modaps.WithLogger(log),
	}
	if baseURL := cmd.String(baseURLFlag.Name); baseURL != "" {
		opts = append(opts, modaps.WithBaseURL(baseURL))
	}
	return modaps.New(opts...)
}

const (
	timestampLayout = "200601021504"
	dateLayout      = "20060102"
)

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(timestampLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: expected YYYYMMDDHHMM or YYYYMMDD", s)
}

func parseTimeRange(start, end string) (laads.TimeRange, error) {
	s, err := parseTimestamp(start)
	if err != nil {
		return laads.TimeRange{}, err
	}
	e, err := parseTimestamp(end)
	if err != nil {
		return laads.TimeRange{}, err
	}
	r := laads.TimeRange{Start: s, End: e}
	return r, r.Validate()
}

func parseBbox(s string) (laads.SpatialExtent, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return laads.SpatialExtent{}, fmt.Errorf("invalid bbox %q: expected north,south,west,east", s)
	}
	vals := make([]float64, 4)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return laads.SpatialExtent{}, fmt.Errorf("invalid bbox value %q: %w", part, err)
		}
		vals[i] = v
	}
	return laads.SpatialExtent{North: vals[0], South: vals[1], West: vals[2], East: vals[3]}, nil
}

func parseMode(s string) (laads.TilingMode, error) {
	switch laads.TilingMode(strings.ToLower(s)) {
	case laads.TilingCoords:
		return laads.TilingCoords, nil
	case laads.TilingTiles:
		return laads.TilingTiles, nil
	}
	return "", fmt.Errorf("invalid mode %q: expected coords or tiles", s)
}

func parseDayNight(s string) (laads.DayNightFlag, error) {
	switch laads.DayNightFlag(strings.ToUpper(s)) {
	case laads.DayNightDay:
		return laads.DayNightDay, nil
	case laads.DayNightNight:
		return laads.DayNightNight, nil
	case laads.DayNightBoth:
		return laads.DayNightBoth, nil
	}
	return "", fmt.Errorf("invalid day-night filter %q: expected D, N or DNB", s)
}
