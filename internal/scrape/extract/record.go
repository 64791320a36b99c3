package extract

import (
	"strings"

	"mlbwar-engine/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const recordLabel = "Record:"

// RecordText returns the text next to the "Record:" label, trimmed and cut
// at the first comma ("86-76-0, Finished 2nd in NL East" -> "86-76-0").
func RecordText(page string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", false
	}

	var out string
	doc.Find("strong").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if util.CleanText(s.Text()) != recordLabel {
			return true
		}
		out = textAfter(s)
		return out == ""
	})

	if i := strings.IndexByte(out, ','); i >= 0 {
		out = out[:i]
	}
	out = strings.TrimSpace(out)
	return out, out != ""
}

func textAfter(label *goquery.Selection) string {
	node := label.Nodes[0]
	if next := node.NextSibling; next != nil && next.Type == html.TextNode {
		if t := util.CleanText(next.Data); t != "" {
			return t
		}
	}
	// fall back to whatever follows the label in the parent's text
	parent := util.CleanText(label.Parent().Text())
	if i := strings.Index(parent, recordLabel); i >= 0 {
		return strings.TrimSpace(parent[i+len(recordLabel):])
	}
	return ""
}
