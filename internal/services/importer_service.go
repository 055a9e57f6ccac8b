package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sublimeanger/vintifi-sub000/internal/models"
)

// ImporterService prefills the intake form from a source listing page for
// the URL entry method. It extracts Open Graph metadata and image links.
type ImporterService struct {
	HTTPClient *http.Client
}

func NewImporterService(httpClient *http.Client) *ImporterService {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &ImporterService{HTTPClient: httpClient}
}

func (s *ImporterService) Import(ctx context.Context, rawURL string) (models.ImportPreview, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return models.ImportPreview{}, fmt.Errorf("invalid listing url: %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return models.ImportPreview{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; vintifi-importer/1.0)")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return models.ImportPreview{}, fmt.Errorf("fetch listing page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return models.ImportPreview{}, fmt.Errorf("listing page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return models.ImportPreview{}, fmt.Errorf("parse listing page: %w", err)
	}

	preview := models.ImportPreview{SourceURL: rawURL}

	preview.Title = strings.TrimSpace(doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	if preview.Title == "" {
		preview.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	preview.Description = strings.TrimSpace(doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))
	if preview.Description == "" {
		preview.Description = strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	}

	seen := make(map[string]struct{})
	doc.Find(`meta[property="og:image"]`).Each(func(_ int, sel *goquery.Selection) {
		src := strings.TrimSpace(sel.AttrOr("content", ""))
		if src == "" {
			return
		}
		if _, ok := seen[src]; ok {
			return
		}
		seen[src] = struct{}{}
		preview.PhotoURLs = append(preview.PhotoURLs, src)
	})

	return preview, nil
}
