package jobdesc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	// MinLength is the shortest text accepted as a job description.
	MinLength = 100
	// MaxLength is where long pages are cut.
	MaxLength = 50000
	// TruncationMarker is appended to cut text.
	TruncationMarker = "\n\n[Content truncated due to length]"

	minBlockLength = 50
	maxPageBytes   = 5 << 20
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

var (
	ErrInvalidURL     = errors.New("only http and https URLs are supported")
	ErrNotExtractable = errors.New("could not extract a job description from this page")

	manyNewlines = regexp.MustCompile(`\n{3,}`)
	manySpaces   = regexp.MustCompile(`[ \t]{2,}`)
)

// FetchError reports a non-2xx upstream response.
type FetchError struct {
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch webpage: %d %s", e.Status, http.StatusText(e.Status))
}

// Extractor fetches a page and pulls the job posting text out of it.
type Extractor struct {
	Client    *http.Client
	Selectors Selectors
}

// NewExtractor constructs an Extractor with the built-in selectors.
func NewExtractor(timeout time.Duration) *Extractor {
	return &Extractor{
		Client:    &http.Client{Timeout: timeout},
		Selectors: DefaultSelectors(),
	}
}

// ValidateURL accepts absolute http and https URLs.
func ValidateURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return nil, ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, ErrInvalidURL
	}
	return u, nil
}

// Extract fetches rawURL and returns the job description text.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (string, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := e.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{Status: resp.StatusCode}
	}

	return e.FromHTML(io.LimitReader(resp.Body, maxPageBytes))
}

// FromHTML runs the selector cascade over an HTML document.
func (e *Extractor) FromHTML(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	for _, sel := range e.Selectors.Remove {
		doc.Find(sel).Remove()
	}

	text := e.matchSelectors(doc)
	if runeLen(text) < MinLength {
		text = e.fallback(doc)
	}

	text = clean(text)
	if runeLen(text) < MinLength {
		return "", ErrNotExtractable
	}
	return truncate(text), nil
}

func (e *Extractor) matchSelectors(doc *goquery.Document) string {
	for _, sel := range e.Selectors.Description {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		if text := strings.TrimSpace(node.Text()); runeLen(text) > MinLength {
			return text
		}
	}
	return ""
}

// fallback joins the long text blocks of the main content area.
func (e *Extractor) fallback(doc *goquery.Document) string {
	container := doc.Find(strings.Join(e.Selectors.FallbackContainers, ", ")).First()
	if container.Length() == 0 {
		container = doc.Find("body")
	}

	var blocks []string
	container.Find(e.Selectors.FallbackBlocks).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); runeLen(text) > minBlockLength {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) > 0 {
		return strings.Join(blocks, "\n\n")
	}
	return strings.TrimSpace(container.Text())
}

func clean(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = manyNewlines.ReplaceAllString(text, "\n\n")
	text = manySpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func truncate(text string) string {
	if runeLen(text) <= MaxLength {
		return text
	}
	return string([]rune(text)[:MaxLength]) + TruncationMarker
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
