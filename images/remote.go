package images

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/raushankrgupta/harvesthub-seeder/models"
	"github.com/raushankrgupta/harvesthub-seeder/utils"
)

// Remote fetches an image over HTTP. If the URL serves an HTML page, the
// page's og:image (or its first .jpg/.png <img>) is downloaded instead.
type Remote struct {
	URL    string
	Client *http.Client
}

// NewRemote creates a Remote provider. A nil client gets a 30s timeout.
func NewRemote(rawURL string, client *http.Client) *Remote {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Remote{URL: rawURL, Client: client}
}

func (r *Remote) Describe() string {
	return r.URL
}

func (r *Remote) FindImage(ctx context.Context) (*models.ImageFile, error) {
	data, contentType, err := utils.Download(ctx, r.Client, r.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", r.URL, err)
	}

	if !strings.HasPrefix(contentType, "text/html") {
		return &models.ImageFile{Name: imageName(r.URL, contentType), Data: data}, nil
	}

	imgURL, err := imageFromPage(r.URL, data)
	if err != nil || imgURL == "" {
		return nil, err
	}

	data, contentType, err = utils.Download(ctx, r.Client, imgURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page image %s: %w", imgURL, err)
	}
	return &models.ImageFile{Name: imageName(imgURL, contentType), Data: data}, nil
}

// imageFromPage returns the absolute URL of the page's main image, or "" if
// the page has none.
func imageFromPage(pageURL string, html []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse page %s: %w", pageURL, err)
	}

	candidate, _ := doc.Find(`meta[property="og:image"]`).First().Attr("content")
	if candidate == "" {
		doc.Find("img").EachWithBreak(func(i int, s *goquery.Selection) bool {
			src, ok := s.Attr("src")
			if !ok {
				return true
			}
			switch strings.ToLower(path.Ext(strings.SplitN(src, "?", 2)[0])) {
			case ".jpg", ".jpeg", ".png":
				candidate = src
				return false
			}
			return true
		})
	}
	if candidate == "" {
		return "", nil
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(strings.TrimSpace(candidate))
	if err != nil {
		return "", fmt.Errorf("invalid image url %q: %w", candidate, err)
	}
	return base.ResolveReference(ref).String(), nil
}

func imageName(rawURL, contentType string) string {
	def := "image.jpg"
	if strings.HasPrefix(contentType, "image/png") {
		def = "image.png"
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return def
	}
	return utils.FileNameFromURL(u.Path, def)
}
