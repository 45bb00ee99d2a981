package normalize

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

var (
	nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

	pageExtensions = map[string]bool{
		".html": true, ".htm": true, ".php": true, ".aspx": true,
		".asp": true, ".jsp": true, ".shtml": true,
	}

	// segments that name a page template rather than a product
	genericSegments = map[string]bool{
		"index": true, "default": true, "detail": true, "details": true,
		"item": true, "product": true, "products": true, "page": true,
	}
)

// Slug derives a product slug from its page URL, falling back to the
// slugified name when no path segment is usable. It returns "" only when
// neither yields anything.
func Slug(rawURL, name string) string {
	if s := SlugFromURL(rawURL); s != "" {
		return s
	}
	return Slugify(name)
}

// SlugFromURL returns the last usable path segment of rawURL, lowercased and
// without a page extension.
func SlugFromURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	segments := strings.Split(u.EscapedPath(), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		seg, err := url.PathUnescape(segments[i])
		if err != nil || seg == "" {
			continue
		}
		seg = strings.ToLower(seg)
		if ext := path.Ext(seg); pageExtensions[ext] {
			seg = strings.TrimSuffix(seg, ext)
		}
		if genericSegments[seg] {
			continue
		}
		return Slugify(seg)
	}
	return ""
}

// SlugFromQuery slugifies the value of a query parameter, for sites that
// address products as detail.php?pid=123.
func SlugFromQuery(rawURL, key string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return Slugify(u.Query().Get(key))
}

// Slugify lowercases s and collapses every run of non-alphanumerics to a hyphen.
func Slugify(s string) string {
	s = strings.ToLower(Fold(s))
	s = nonSlug.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
