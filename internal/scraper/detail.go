package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DescriptionNotFound is returned when no fallback strategy produced a
// description from the detail page.
const DescriptionNotFound = "Description non trouvée sur la page de l'offre."

// Description container candidates on a job detail page, in priority
// order. tw-prose is the current HelloWork container, the rest cover
// earlier markups.
var descriptionSelectors = []string{
	"div.job-description",
	"div.description",
	`div[data-testid='job-description']`,
	`div[data-cy='jobDescription']`,
	"section.job-description",
	"div.offer-description",
	"div.tw-prose",
}

const (
	mainContentSelector = "main, article, div.main-content"
	minParagraphLength  = 50
	minParagraphCount   = 6
)

// FetchJobDetails retrieves the full description of an offer from its
// detail page. It never fails: network or parse errors yield an
// error-describing string, an unmatched page yields a sentinel.
func (s *Scraper) FetchJobDetails(jobURL string) string {
	s.log.Debug().Str("url", jobURL).Msg("Récupération des détails de l'offre")

	body, err := s.fetchPage(jobURL)
	if err != nil {
		s.log.Error().Err(err).Str("url", jobURL).Msg("Detail fetch failed")
		return "Erreur: " + err.Error()
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		s.log.Error().Err(err).Str("url", jobURL).Msg("Detail parse failed")
		return "Erreur: " + err.Error()
	}

	return extractDescription(doc)
}

// extractDescription walks the description fallback chain over a parsed
// detail page.
func extractDescription(doc *goquery.Document) string {
	for _, selector := range descriptionSelectors {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}
		if text := strings.TrimSpace(sel.First().Text()); text != "" {
			return text
		}
	}

	if sel := doc.Find(mainContentSelector); sel.Length() > 0 {
		if text := strings.TrimSpace(sel.First().Text()); text != "" {
			return text
		}
	}

	// Last resort: stitch together anything that reads like prose
	paragraphs := doc.Find("p")
	if paragraphs.Length() >= minParagraphCount {
		var parts []string
		paragraphs.Each(func(i int, p *goquery.Selection) {
			text := strings.TrimSpace(p.Text())
			if len(text) > minParagraphLength {
				parts = append(parts, text)
			}
		})
		if len(parts) > 0 {
			return strings.Join(parts, "\n")
		}
	}

	return DescriptionNotFound
}
