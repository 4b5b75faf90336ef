package scraper

import "github.com/PuerkitoBio/goquery"

// JobListing represents a single scraped job offer
type JobListing struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	Link         string `json:"link"`
	ContractType string `json:"contract_type"`
	IsAlternance bool   `json:"is_alternance"`
	DetailText   string `json:"job_details_text,omitempty"`
}

// SearchParams captures the parameters of one scraping run. They are
// persisted with the session snapshot so a run can be resumed later.
type SearchParams struct {
	JobTitle     string `json:"job_title"`
	Location     string `json:"location"`
	ContractType string `json:"contract_type"`
	MaxPages     int    `json:"max_pages"`
	UseProxies   bool   `json:"use_proxies"`
}

// TextHandler extracts a text fragment from a selection. It returns an
// empty string when its strategy does not apply to the element, so the
// next handler in the chain gets a chance.
type TextHandler func(*goquery.Selection) string

// Placeholder values used when a field cannot be extracted
const (
	ValueUnspecified  = "Non spécifié"
	ValueUndetermined = "À déterminer"
	TitleUnavailable  = "Titre non disponible"
)
