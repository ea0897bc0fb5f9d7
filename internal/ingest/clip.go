package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/go-shiori/go-readability"
)

// Clipper extracts the readable part of a web page as markdown.
type Clipper struct {
	Client    *http.Client
	Timeout   time.Duration
	UserAgent string
}

// NewClipper returns a clipper using http.DefaultClient.
func NewClipper(timeout time.Duration, userAgent string) *Clipper {
	return &Clipper{Client: http.DefaultClient, Timeout: timeout, UserAgent: userAgent}
}

// Clip fetches rawURL and returns its main content.
func (c *Clipper) Clip(ctx context.Context, rawURL string) (Document, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil || pageURL.Scheme == "" || pageURL.Host == "" {
		return Document{}, fmt.Errorf("invalid url %q", rawURL)
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Document{}, fmt.Errorf("failed to create request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Document{}, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Document{}, fmt.Errorf("HTTP %d error reading page", resp.StatusCode)
	}

	article, err := readability.FromReader(resp.Body, pageURL)
	if err != nil {
		return Document{}, fmt.Errorf("failed to parse readability: %w", err)
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = pageURL.Host
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(article.Content)
	if err != nil {
		// plain text is still worth keeping
		markdown = article.TextContent
	}

	return Document{
		Title:   title,
		Content: fmt.Sprintf("**Source**: %s\n\n%s", rawURL, strings.TrimSpace(markdown)),
		Source:  rawURL,
	}, nil
}
