package scraper

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/m-mizutani/goerr/v2"
)

// contentSelectors are tried in order to find the main article body.
var contentSelectors = []string{
	"div.entry-content",
	"div.post-content",
	"div.article-content",
	"article",
	"div.content",
	"div#content",
}

// extractArticle turns an HTML page into plain text: the page title
// followed by the article body with headings and bullet lists kept.
func extractArticle(body io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", goerr.Wrap(err, "failed to parse HTML")
	}

	var parts []string

	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		parts = append(parts, title)
	}

	container := doc.Find("body")
	for _, sel := range contentSelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			container = found.First()
			break
		}
	}

	container.Find("p, ul, ol, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "ul", "ol":
			var items []string
			s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
				if text := strings.TrimSpace(li.Text()); text != "" {
					items = append(items, "- "+text)
				}
			})
			if len(items) > 0 {
				parts = append(parts, strings.Join(items, "\n"))
			}
		case "p":
			// Short paragraphs are navigation crumbs, bylines and the like.
			if text := strings.TrimSpace(s.Text()); len(text) > 20 {
				parts = append(parts, text)
			}
		default:
			if text := strings.TrimSpace(s.Text()); text != "" {
				parts = append(parts, text)
			}
		}
	})

	return strings.Join(parts, "\n\n"), nil
}
