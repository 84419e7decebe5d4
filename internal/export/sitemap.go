package export

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/JonMunkholm/reflections/internal/core"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapOrder is the language order of sitemap entries.
var SitemapOrder = []core.Language{core.PortugueseBR, core.English, core.French, core.Spanish}

// URLSet is the root element of a sitemap.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// BuildSitemap lists the site root followed by one page per stored
// reflection, addressed as baseURL?date=D&lang=code.
func BuildSitemap(ctx context.Context, src Source, baseURL string, now time.Time) (*URLSet, error) {
	lastMod := now.UTC().Format(time.RFC3339)

	set := &URLSet{
		Xmlns: sitemapNamespace,
		URLs: []URL{{
			Loc:        baseURL,
			LastMod:    lastMod,
			ChangeFreq: "daily",
			Priority:   "1.0",
		}},
	}

	for _, lang := range SitemapOrder {
		reflections, err := src.ListByLanguage(ctx, lang)
		if err != nil {
			return nil, fmt.Errorf("list %s reflections: %w", lang, err)
		}
		for _, r := range reflections {
			set.URLs = append(set.URLs, URL{
				Loc:        PageURL(baseURL, r.Date, lang),
				LastMod:    lastMod,
				ChangeFreq: "yearly",
				Priority:   "0.8",
			})
		}
	}
	return set, nil
}

// PageURL returns the address of one reflection page.
func PageURL(baseURL, date string, lang core.Language) string {
	q := url.Values{}
	q.Set("date", date)
	q.Set("lang", lang.Code())
	return baseURL + "?" + q.Encode()
}

// WriteSitemap encodes set as indented XML with a declaration.
func WriteSitemap(w io.Writer, set *URLSet) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteSitemapFile writes the sitemap to path, creating parent directories.
func WriteSitemapFile(path string, set *URLSet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create sitemap directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sitemap: %w", err)
	}
	if err := WriteSitemap(f, set); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
