package layout

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var breakTag = regexp.MustCompile(`(?i)<br[^>]*>`)

// NormalizeBreaks turns <br> markers and CR/CRLF line endings into "\n".
func NormalizeBreaks(s string) string {
	s = breakTag.ReplaceAllString(s, "\n")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// StripTags removes markup from s, keeping text content with entities
// decoded. Comments and the content of script and style elements are
// dropped.
func StripTags(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.TextToken:
			if skip == 0 {
				sb.Write(z.Text())
			}
		case html.StartTagToken:
			if name, _ := z.TagName(); isRawTextTag(name) {
				skip++
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); isRawTextTag(name) && skip > 0 {
				skip--
			}
		}
	}
}

func isRawTextTag(name []byte) bool {
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}

// DecodeEntities resolves HTML character references such as &amp; and &#39;.
func DecodeEntities(s string) string { return html.UnescapeString(s) }
