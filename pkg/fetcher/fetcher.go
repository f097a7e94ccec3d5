package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/askpage/askpage/internal/models"
)

var (
	// ErrBadStatus reports a non-200 response from the page server.
	ErrBadStatus = errors.New("unexpected response status")
	// ErrEmptyContent reports that cleaning left no usable text.
	ErrEmptyContent = errors.New("no content extracted from the page")
)

type FetcherConfig struct {
	UserAgent string
	Timeout   time.Duration
	RateLimit float64 // requests per second
	Logger    *slog.Logger
}

// Fetcher retrieves a single web page and flattens its paragraph text.
type Fetcher struct {
	config  FetcherConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

func NewWithConfig(config FetcherConfig) *Fetcher {
	if config.UserAgent == "" {
		config.UserAgent = "Mozilla/5.0" // Avoids bot detection
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = 2 // 2 requests per second by default
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &Fetcher{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), 1),
		logger:  config.Logger,
	}
}

func New() *Fetcher {
	return NewWithConfig(FetcherConfig{})
}

// Fetch retrieves url and returns a Page whose Content is the cleaned,
// space-joined text of every paragraph element.
func (f *Fetcher) Fetch(ctx context.Context, url string) (models.Page, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return models.Page{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Page{}, err
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return models.Page{}, fmt.Errorf("failed to fetch webpage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Page{}, fmt.Errorf("%w: %d for URL %s", ErrBadStatus, resp.StatusCode, url)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return models.Page{}, err
	}

	content := f.extractParagraphs(doc)
	if content == "" {
		return models.Page{}, fmt.Errorf("%w: %s", ErrEmptyContent, url)
	}

	title := strings.TrimSpace(doc.Find("title").Text())

	page := models.NewPage(url, title, content)
	page.Metadata["time"] = time.Now()
	page.Metadata["contentType"] = resp.Header.Get("Content-Type")
	page.Metadata["lastModified"] = resp.Header.Get("Last-Modified")

	f.logger.Info("extracted page content",
		"url", url,
		"words", len(strings.Fields(content)))

	return page, nil
}

func (f *Fetcher) extractParagraphs(doc *goquery.Document) string {
	var paragraphs []string
	doc.Find("p").Each(func(_ int, selection *goquery.Selection) {
		if text := strings.TrimSpace(selection.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	content := strings.Join(paragraphs, " ")
	content = strings.ReplaceAll(content, "\n", " ")

	// Collapse runs of whitespace left behind by the markup
	return strings.TrimSpace(strings.Join(strings.Fields(content), " "))
}
