package recommend

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// describeBody returns a short, single-line description of an error body.
// Flask answers crashes with an HTML page; its title is far more useful in a
// log line than the first bytes of markup.
func describeBody(contentType string, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	if strings.Contains(contentType, "html") || trimmed[0] == '<' {
		if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(trimmed)); err == nil {
			for _, sel := range []string{"title", "h1", "p"} {
				text := strings.TrimSpace(doc.Find(sel).First().Text())
				if text != "" {
					return truncate(whitespaceRe.ReplaceAllString(text, " "), 200)
				}
			}
		}
	}

	return truncate(whitespaceRe.ReplaceAllString(string(trimmed), " "), 200)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
