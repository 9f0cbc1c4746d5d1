package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FindArchiveLink scrapes the vendor download page for asset-package zip
// links and returns the newest one. The vendor dates its archives in the
// filename, so "newest" is the lexicographically last candidate. Relative
// hrefs are resolved against pageURL.
func FindArchiveLink(ctx context.Context, c *Client, pageURL string) (string, error) {
	resp, err := c.Get(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", pageURL, err)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	resp.Body.Close()
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", pageURL, err)
	}

	var candidates []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !strings.HasSuffix(strings.ToLower(href), ".zip") {
			return
		}
		if !strings.Contains(href, "Asset-Package") {
			return
		}
		if abs := resolveURL(pageURL, href); abs != "" {
			candidates = append(candidates, abs)
		}
	})
	if len(candidates) == 0 {
		return "", errors.New("no asset-package link found on download page")
	}

	sort.Strings(candidates)
	return candidates[len(candidates)-1], nil
}

// resolveURL resolves href relative to base (if href is not absolute).
func resolveURL(baseStr, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	h, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if h.Scheme != "" && h.Host != "" {
		return h.String()
	}
	bu, err := url.Parse(baseStr)
	if err != nil {
		return ""
	}
	return bu.ResolveReference(h).String()
}
