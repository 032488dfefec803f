package utils

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Sitemap struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	Urls    []Url    `xml:"url"`
}

type Url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// PageURL maps an index.html written under outDir to its public path, for
// example "/blog/hello/".
func PageURL(outDir, file string) (string, error) {
	rel, err := filepath.Rel(outDir, filepath.Dir(file))
	if err != nil {
		return "", errors.WithStack(err)
	}
	if rel == "." {
		return "/", nil
	}
	return "/" + filepath.ToSlash(rel) + "/", nil
}

// GenerateSitemaps writes outDir/sitemap.xml listing every written page.
func GenerateSitemaps(outDir, baseURL string, written []string) error {
	routes := make([]string, 0, len(written))
	for _, file := range written {
		route, err := PageURL(outDir, file)
		if err != nil {
			return err
		}
		routes = append(routes, route)
	}

	xmlOutput, err := GenerateSitemapContent(baseURL, routes)
	if err != nil {
		return err
	}

	data := []byte(xml.Header + xmlOutput + "\n")
	if err := os.WriteFile(filepath.Join(outDir, "sitemap.xml"), data, 0644); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func GenerateSitemapContent(baseURL string, routes []string) (string, error) {
	baseURL = strings.TrimSuffix(baseURL, "/")
	sitemap := Sitemap{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
	}

	lastMod := time.Now().Format("2006-01-02")
	seen := make(map[string]bool, len(routes))
	for _, route := range routes {
		if seen[route] {
			continue
		}
		seen[route] = true
		sitemap.Urls = append(sitemap.Urls, Url{
			Loc:     baseURL + route,
			LastMod: lastMod,
		})
	}

	xmlOutput, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return "", errors.WithStack(err)
	}

	return string(xmlOutput), nil
}
