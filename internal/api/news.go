package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"
)

type newsAPI struct {
	proxy
}

// stockNews proxies /news and cleans each article for the table widget.
func (a *newsAPI) stockNews(w http.ResponseWriter, r *http.Request) {
	q := url.Values{}
	q.Set("ticker", r.URL.Query().Get("ticker"))
	limit := r.URL.Query().Get("limit")
	if limit == "" {
		limit = "10"
	}
	q.Set("limit", limit)

	body, ok := a.fetch(w, r, "/news", q)
	if !ok {
		return
	}
	articles, err := unwrap(body, "news")
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "malformed upstream response"})
		return
	}
	if articles == nil {
		articles = []map[string]any{}
	}
	for _, article := range articles {
		if d, ok := article["date"]; ok {
			article["date"] = formatTimestamp(d, "2006-01-02 15:04:05")
		}
		delete(article, "image_url")
		delete(article, "ticker")
	}
	writeJSON(w, http.StatusOK, articles)
}

const pressReleaseTextLimit = 1000

// earningsPressReleases renders press releases for the markdown widget.
func (a *newsAPI) earningsPressReleases(w http.ResponseWriter, r *http.Request) {
	ticker := r.URL.Query().Get("ticker")
	q := url.Values{}
	q.Set("ticker", ticker)

	apiKey, err := a.key(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
		return
	}

	body, status, err := a.client.Get(r.Context(), "/earnings/press-releases", q, apiKey)
	if err != nil || status != http.StatusOK {
		writeJSON(w, http.StatusOK, fmt.Sprintf("# Error\n\nFailed to fetch earnings press releases for %s.", ticker))
		return
	}

	releases, err := unwrap(body, "press_releases")
	if err != nil || len(releases) == 0 {
		if more, err2 := unwrap(body, "releases"); err2 == nil && len(more) > 0 {
			releases = more
		}
	}
	if len(releases) == 0 {
		writeJSON(w, http.StatusOK, "# No Earnings Press Releases Found\n\nNo earnings press releases were found for this company.")
		return
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# Earnings Press Releases for %s\n\n", ticker)
	for _, rel := range releases {
		title, _ := rel["title"].(string)
		if title == "" {
			title = "Untitled"
		}
		published := formatTimestamp(rel["publish_date"], "January 02, 2006 15:04:05")
		text, _ := rel["text"].(string)
		text = truncateText(text, pressReleaseTextLimit)

		fmt.Fprintf(&md, "## %s\n\n", title)
		fmt.Fprintf(&md, "**Published:** %v\n\n", published)
		if u, _ := rel["url"].(string); u != "" {
			fmt.Fprintf(&md, "[Read Full Release](%s)\n\n", u)
		}
		fmt.Fprintf(&md, "%s\n\n---\n\n", text)
	}
	writeJSON(w, http.StatusOK, md.String())
}

// truncateText caps s at limit bytes including the trailing ellipsis, backing
// up to a rune boundary so multi-byte characters are never split.
func truncateText(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
