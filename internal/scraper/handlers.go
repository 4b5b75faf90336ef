package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// applyHandlers tries each handler in declared order and returns the
// first non-empty result.
func applyHandlers(s *goquery.Selection, handlers []TextHandler) string {
	for _, handler := range handlers {
		if handler == nil {
			continue
		}
		if result := handler(s); result != "" {
			return result
		}
	}
	return ""
}

// selectorText returns a handler that takes the trimmed text of the
// first element matching the selector.
func selectorText(selector string) TextHandler {
	return func(s *goquery.Selection) string {
		sel := s.Find(selector)
		if sel.Length() == 0 {
			return ""
		}
		return strings.TrimSpace(sel.First().Text())
	}
}

// Title candidates for a job card, in priority order. HelloWork has
// shipped several card layouts; the tw-typo classes are the current
// ones, the heading fallbacks cover older markup.
var cardTitleHandlers = []TextHandler{
	selectorText("p.tw-typo-l"),
	selectorText("p.tw-typo-xl"),
	selectorText("h3 p"),
	selectorText("h3"),
	selectorText("h2"),
}

var cardCompanyHandlers = []TextHandler{
	selectorText("p.tw-inline"),
	selectorText("p.tw-typo-s"),
}

var cardLocationHandlers = []TextHandler{
	selectorText(`div[data-cy="localisationCard"]`),
}

var cardContractHandlers = []TextHandler{
	selectorText(`div[data-cy="contractCard"]`),
}

var cardDateHandlers = []TextHandler{
	selectorText("div.tw-typo-s.tw-text-grey"),
}

// cardLink finds the primary job-detail link of a card: the first
// anchor pointing at an offer page, else the first anchor with an href.
func cardLink(s *goquery.Selection) string {
	linkSel := s.Find(`a[href*="/emplois/"]`)
	if linkSel.Length() == 0 {
		linkSel = s.Find("a")
	}
	if linkSel.Length() == 0 {
		return ""
	}

	href, exists := linkSel.First().Attr("href")
	if !exists {
		return ""
	}
	return strings.TrimSpace(href)
}

// anchorTitle derives a title for a bare offer anchor: its own text,
// else a nested heading or paragraph, else the unavailable placeholder.
func anchorTitle(s *goquery.Selection) string {
	if title := strings.TrimSpace(s.Text()); title != "" {
		return title
	}
	for _, selector := range []string{"h2", "h3", "p"} {
		if title := selectorText(selector)(s); title != "" {
			return title
		}
	}
	return TitleUnavailable
}
