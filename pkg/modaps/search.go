package modaps

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/robert-malhotra/go-laads/pkg/laads"
)

// timeFormat is the timestamp representation the service expects in
// startTime/endTime parameters.
const timeFormat = "2006-01-02 15:04"

// The service reports an empty window with a single literal return value
// instead of an empty list.
const noResultsMarker = "No results"

// returnList matches the <return> elements common to searchForFiles and
// getFileUrls responses.
type returnList struct {
	Values []string `xml:"return"`
}

// SearchFiles queries the searchForFiles endpoint for one time chunk and
// returns the matching file identifiers. An empty window yields a nil
// slice, not an error.
func (c *Client) SearchFiles(ctx context.Context, req laads.SearchRequest) ([]string, error) {
	query := url.Values{}
	query.Set("products", req.Product)
	query.Set("collection", req.Collection)
	query.Set("startTime", req.Start.Format(timeFormat))
	query.Set("endTime", req.End.Format(timeFormat))
	query.Set("north", formatCoord(req.Extent.North))
	query.Set("south", formatCoord(req.Extent.South))
	query.Set("east", formatCoord(req.Extent.East))
	query.Set("west", formatCoord(req.Extent.West))
	query.Set("coordsOrTiles", req.TilingMode.String())
	query.Set("dayNightBoth", req.DayNight.String())

	body, err := c.get(ctx, "searchForFiles", query)
	if err != nil {
		return nil, err
	}

	var list returnList
	if err := xml.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("modaps: searchForFiles: decoding response: %w", err)
	}
	if len(list.Values) == 1 && strings.EqualFold(strings.TrimSpace(list.Values[0]), noResultsMarker) {
		return nil, nil
	}
	return list.Values, nil
}

// ResolveURLs maps file identifiers to download URLs via the getFileUrls
// endpoint. The service guarantees one URL per identifier in input order.
func (c *Client) ResolveURLs(ctx context.Context, fileIDs []string) ([]string, error) {
	if len(fileIDs) == 0 {
		return nil, nil
	}

	query := url.Values{}
	query.Set("fileIds", strings.Join(fileIDs, ","))

	body, err := c.get(ctx, "getFileUrls", query)
	if err != nil {
		return nil, err
	}

	var list returnList
	if err := xml.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("modaps: getFileUrls: decoding response: %w", err)
	}
	if len(list.Values) != len(fileIDs) {
		return nil, fmt.Errorf("modaps: getFileUrls: %d URLs for %d file ids", len(list.Values), len(fileIDs))
	}
	return list.Values, nil
}

// Product describes one entry from the listProducts endpoint.
type Product struct {
	Name        string `xml:"Name"`
	Description string `xml:"Description"`
}

type productList struct {
	Products []Product `xml:"return"`
}

// ListProducts returns the catalog's available products.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	body, err := c.get(ctx, "listProducts", nil)
	if err != nil {
		return nil, err
	}

	var list productList
	if err := xml.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("modaps: listProducts: decoding response: %w", err)
	}
	return list.Products, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
