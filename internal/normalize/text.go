package normalize

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

var (
	spaceRun = regexp.MustCompile(`[^\S\n]+`)
	blankRun = regexp.MustCompile(`\n\s*\n+`)
)

// CleanHTML strips tags from an HTML fragment, turns <br> and block ends into
// newlines, decodes entities and collapses whitespace other than newlines.
// Tags that only appear after decoding (&amp;lt;b&amp;gt;) are stripped too, and
// the output never contains '<'.
func CleanHTML(fragment string) string {
	return cleanHTML(fragment, 3)
}

func cleanHTML(fragment string, passes int) string {
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			out := unescapeAll(b.String())
			if strings.Contains(out, "<") {
				if passes > 1 {
					return cleanHTML(out, passes-1)
				}
				out = strings.ReplaceAll(out, "<", "")
			}
			return CollapseSpace(out)
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "br":
				b.WriteByte('\n')
			case "script", "style", "noscript":
				skip++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "p", "div", "li", "tr", "dd", "h1", "h2", "h3", "h4", "h5", "h6":
				b.WriteByte('\n')
			case "script", "style", "noscript":
				if skip > 0 {
					skip--
				}
			}
		}
	}
}

// unescapeAll decodes entities that were encoded more than once (&amp;amp;).
func unescapeAll(s string) string {
	for i := 0; i < 3 && strings.Contains(s, "&"); i++ {
		next := html.UnescapeString(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

// CollapseSpace collapses runs of spaces and tabs, trims every line and drops
// blank lines.
func CollapseSpace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = spaceRun.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = blankRun.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

// Text folds and collapses a text node into a single line.
func Text(s string) string {
	return strings.Join(strings.Fields(Fold(s)), " ")
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n]))
}

// ColorKey is the identity used to deduplicate color names.
func ColorKey(name string) string {
	return strings.ToLower(Text(name))
}

// AbsURL resolves ref against base. It returns "" for empty or data: refs.
func AbsURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "data:") || strings.HasPrefix(ref, "javascript:") {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if r.IsAbs() {
		return r.String()
	}
	b, err := url.Parse(base)
	if err != nil || !b.IsAbs() {
		return ""
	}
	return b.ResolveReference(r).String()
}
