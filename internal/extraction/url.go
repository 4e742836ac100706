package extraction

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// fetchTimeout bounds job posting fetches.
const fetchTimeout = 30 * time.Second

// userAgent identifies the analyzer to job boards.
const userAgent = "Mozilla/5.0 (compatible; ResumeAnalyzer/1.0)"

// noiseSelectors are stripped from fetched pages before text extraction.
var noiseSelectors = []string{"script", "style", "noscript", "nav", "header", "footer", "form", "iframe"}

// FetchError describes a failure fetching or reducing a job posting URL.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// FetchJobPosting retrieves a job posting URL and reduces the page to
// plain text suitable for keyword analysis.
func FetchJobPosting(ctx context.Context, urlStr string) (string, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &FetchError{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &FetchError{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", userAgent)

	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", &FetchError{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", &FetchError{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	text, err := htmlToText(string(body))
	if err != nil {
		return "", &FetchError{URL: urlStr, Message: "content extraction failed", Cause: err}
	}
	return text, nil
}

// htmlToText strips noise elements and returns the page body as cleaned
// plain text, one block element per line.
func htmlToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	for _, selector := range noiseSelectors {
		doc.Find(selector).Remove()
	}

	var sb strings.Builder
	doc.Find("body").Find("h1, h2, h3, h4, p, li, td, div").Each(func(_ int, s *goquery.Selection) {
		// Only leaf-ish nodes: skip containers whose text is covered by children.
		if s.Children().Filter("h1, h2, h3, h4, p, li, td, div").Length() > 0 {
			return
		}
		text := strings.TrimSpace(s.Text())
		if text != "" {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	})

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		text = doc.Find("body").Text()
	}
	return CleanText(text), nil
}
