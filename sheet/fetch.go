package sheet

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/lvillar/certgen"
)

// Fetch downloads a CSV dataset from rawURL. Google Sheets share links are
// rewritten to the sheet's CSV export endpoint, so users can paste the URL
// straight from the browser's address bar. Transient HTTP failures are
// retried; anything that still fails surfaces as a descriptive error and
// the caller decides whether to retry the whole fetch.
func Fetch(ctx context.Context, rawURL string) (*certgen.Dataset, error) {
	exportURL, err := ExportURL(rawURL)
	if err != nil {
		return nil, err
	}

	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", exportURL, nil)
	if err != nil {
		return nil, fmt.Errorf("sheet: building request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheet: fetching %s: %w", exportURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("sheet: fetching %s: unexpected status %s", exportURL, resp.Status)
	}
	return ParseCSV(resp.Body)
}

// ExportURL normalizes a spreadsheet URL to one that serves CSV. Google
// Sheets URLs of the form
//
//	https://docs.google.com/spreadsheets/d/<id>/edit#gid=<gid>
//
// become
//
//	https://docs.google.com/spreadsheets/d/<id>/export?format=csv&gid=<gid>
//
// Any other URL is returned unchanged and assumed to serve CSV directly.
func ExportURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("sheet: invalid url %q: %w", rawURL, err)
	}
	if u.Host != "docs.google.com" {
		return rawURL, nil
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 3 || parts[0] != "spreadsheets" || parts[1] != "d" {
		return "", fmt.Errorf("sheet: unrecognized google sheets url %q", rawURL)
	}
	id := parts[2]

	gid := u.Query().Get("gid")
	if gid == "" && strings.HasPrefix(u.Fragment, "gid=") {
		gid = strings.TrimPrefix(u.Fragment, "gid=")
	}

	export := fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv", id)
	if gid != "" {
		export += "&gid=" + url.QueryEscape(gid)
	}
	return export, nil
}
