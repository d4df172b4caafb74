package links

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// ValidatedLink is the verdict for one fetched URL.
// Produced once per URL per job, never mutated afterwards.
type ValidatedLink struct {
	URL    string `json:"url"`
	OK     bool   `json:"ok"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// unavailableMarkers are page markers that signal an unusable video,
// matched case-insensitively against the fetched body.
var unavailableMarkers = []string{"video unavailable", "private video"}

// ogTitleRe extracts a display title from the page's og:title meta attribute
var ogTitleRe = regexp.MustCompile(`property="og:title"\s+content="([^"]+)"`)

// Parse extracts URLs from free text: one URL per non-blank line beginning
// with http:// or https://. Other lines are discarded.
func Parse(text string) []string {
	var urls []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
			urls = append(urls, line)
		}
	}
	return urls
}

// Validator fetches URLs and classifies them as usable or not
type Validator struct {
	client *http.Client
}

// NewValidator creates a validator with the given per-fetch timeout.
// Redirects are followed.
func NewValidator(timeout time.Duration) *Validator {
	return &Validator{
		client: &http.Client{Timeout: timeout},
	}
}

// Validate fetches each URL sequentially and returns one verdict per URL.
// Fetch and protocol faults are recorded in the verdict's Reason, never
// raised: one bad URL does not abort validation of the rest.
func (v *Validator) Validate(ctx context.Context, urls []string) []ValidatedLink {
	results := make([]ValidatedLink, 0, len(urls))
	for _, u := range urls {
		results = append(results, v.validateOne(ctx, u))
	}
	return results
}

func (v *Validator) validateOne(ctx context.Context, url string) ValidatedLink {
	link := ValidatedLink{URL: url}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		link.Reason = err.Error()
		return link
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := v.client.Do(req)
	if err != nil {
		link.Reason = err.Error()
		return link
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		link.Reason = fmt.Sprintf("HTTP %d", resp.StatusCode)
		return link
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		link.Reason = err.Error()
		return link
	}

	html := string(body)
	low := strings.ToLower(html)
	for _, marker := range unavailableMarkers {
		if strings.Contains(low, marker) {
			link.Reason = "Unavailable/private"
			return link
		}
	}

	// Title extraction is best-effort; a missing match does not affect OK
	if m := ogTitleRe.FindStringSubmatch(html); m != nil {
		link.Title = strings.TrimSpace(m[1])
	}
	link.OK = true
	return link
}

// CountOK returns the number of links that validated as usable
func CountOK(validated []ValidatedLink) int {
	n := 0
	for _, l := range validated {
		if l.OK {
			n++
		}
	}
	return n
}
