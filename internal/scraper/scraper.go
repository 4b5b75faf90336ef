package scraper

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jmorel/hellohunt/config"
	"jmorel/hellohunt/helpers"
	"jmorel/hellohunt/logger"
	"jmorel/hellohunt/services/cache"
	"jmorel/hellohunt/services/proxy"
)

// Scraper extracts job listings from HelloWork search result pages
type Scraper struct {
	BaseURL          string
	SearchURLPattern string
	PageDelay        time.Duration
	CacheKey         string
	CacheSvc         cache.CacheService
	BlockTime        time.Duration
	Proxies          *proxy.Rotation

	client  *http.Client
	timeout time.Duration
	log     *logger.Logger
}

// New creates a scraper from the application configuration. cacheSvc and
// proxies may be nil; the corresponding features are then disabled.
func New(cfg *config.Config, cacheSvc cache.CacheService, proxies *proxy.Rotation) *Scraper {
	return &Scraper{
		BaseURL:          cfg.BaseURL,
		SearchURLPattern: cfg.SearchURLPattern,
		PageDelay:        cfg.PageDelay,
		CacheKey:         "hellowork_rate_limited",
		CacheSvc:         cacheSvc,
		BlockTime:        cfg.BlockTime,
		Proxies:          proxies,
		client:           helpers.NewClient(cfg.HTTPTimeout),
		timeout:          cfg.HTTPTimeout,
		log:              logger.ForComponent("scraper"),
	}
}

var (
	companyPattern  = regexp.MustCompile(`chez\s+(\w+)`)
	locationPattern = regexp.MustCompile(`à\s+([^,]+)`)
)

// SearchURL builds the search URL for the given parameters. Spaces in
// the job title and location become '+', matching the site's own query
// format.
func (s *Scraper) SearchURL(params SearchParams) string {
	job := strings.ReplaceAll(params.JobTitle, " ", "+")
	location := strings.ReplaceAll(params.Location, " ", "+")
	return fmt.Sprintf(s.SearchURLPattern, job, location)
}

// Search scrapes up to params.MaxPages result pages and returns the
// deduplicated listings. A page that cannot be fetched stops further
// pagination but never fails the call: whatever was gathered so far is
// returned with a nil error.
func (s *Scraper) Search(ctx context.Context, params SearchParams) ([]JobListing, error) {
	listings := []JobListing{}
	seen := make(map[string]struct{})

	searchURL := s.SearchURL(params)
	s.log.Info().
		Str("job", params.JobTitle).
		Str("url", searchURL).
		Msg("Recherche d'offres")

	maxPages := params.MaxPages
	if maxPages < 1 {
		maxPages = 1
	}

	for page := 1; page <= maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return listings, err
		}

		pageURL := searchURL
		if page > 1 {
			pageURL = fmt.Sprintf("%s&page=%d", searchURL, page)
		}

		s.log.Debug().Int("page", page).Int("max_pages", maxPages).Msg("Fetching result page")

		body, err := s.fetchPage(pageURL)
		if err != nil {
			s.log.Error().Err(err).Int("page", page).Msg("Page fetch failed, stopping pagination")
			break
		}

		doc, err := goquery.NewDocumentFromReader(body)
		if err != nil {
			s.log.Error().Err(err).Int("page", page).Msg("HTML parse failed, stopping pagination")
			break
		}

		pageListings := s.extractPage(doc, params, seen)
		s.log.Info().Int("page", page).Int("count", len(pageListings)).Msg("Offres extraites")
		listings = append(listings, pageListings...)

		if page < maxPages && s.PageDelay > 0 {
			time.Sleep(s.PageDelay)
		}
	}

	s.log.Info().Int("total", len(listings)).Msg("Recherche terminée")
	return listings, nil
}

// extractPage pulls listings out of one parsed result page, preferring
// structured job cards and falling back to bare offer anchors when the
// card selector matches nothing.
func (s *Scraper) extractPage(doc *goquery.Document, params SearchParams, seen map[string]struct{}) []JobListing {
	cards := doc.Find(`div[data-cy="serpCard"]`)
	if cards.Length() == 0 {
		s.log.Warn().Msg("No job cards matched, falling back to offer links")
		return s.extractFromAnchors(doc, params, seen)
	}

	var listings []JobListing
	cards.Each(func(i int, card *goquery.Selection) {
		listing, err := s.processCard(card, params)
		if err != nil {
			s.log.Error().Err(err).Int("card", i).Msg("Skipping card")
			return
		}
		if listing == nil {
			return
		}
		if _, dup := seen[listing.Link]; dup {
			return
		}
		seen[listing.Link] = struct{}{}

		if !matchesContractFilter(params.ContractType, listing.ContractType, listing.IsAlternance) {
			return
		}
		listings = append(listings, *listing)
	})
	return listings
}

// processCard extracts one listing from a structured job card. A nil
// listing with nil error means the card carries no usable offer.
func (s *Scraper) processCard(card *goquery.Selection, params SearchParams) (*JobListing, error) {
	href := cardLink(card)
	if href == "" {
		return nil, nil
	}
	link := s.resolveURL(href)

	title := applyHandlers(card, cardTitleHandlers)
	if title == "" {
		return nil, nil
	}

	company := applyHandlers(card, cardCompanyHandlers)
	if company == "" {
		company = ValueUnspecified
	}

	location := applyHandlers(card, cardLocationHandlers)
	if location == "" {
		if params.Location != "" {
			location = params.Location
		} else {
			location = ValueUnspecified
		}
	}

	contractType := applyHandlers(card, cardContractHandlers)
	if contractType == "" {
		contractType = ValueUnspecified
	}

	description := "Type de contrat: " + contractType

	isAlternance := false
	if containsAlternance(contractType) {
		isAlternance = true
		description += " (Alternance)"
	} else if containsAlternance(title) {
		isAlternance = true
		description += " (Alternance mentionnée dans le titre)"
	}

	if date := applyHandlers(card, cardDateHandlers); date != "" {
		description += " | Publié: " + date
	}

	return &JobListing{
		Title:        title,
		Company:      company,
		Location:     location,
		Description:  description,
		Link:         link,
		ContractType: contractType,
		IsAlternance: isAlternance,
	}, nil
}

// extractFromAnchors scans every anchor that looks like an offer link.
// Company and location come from the accessibility label when present.
func (s *Scraper) extractFromAnchors(doc *goquery.Document, params SearchParams, seen map[string]struct{}) []JobListing {
	var listings []JobListing

	doc.Find(`a[href*="/emplois/"]`).Each(func(i int, anchor *goquery.Selection) {
		href, exists := anchor.Attr("href")
		if !exists {
			return
		}
		// Search and pagination links point at offer paths too
		if strings.Contains(href, "recherche") || strings.Contains(href, "page=") {
			return
		}

		link := s.resolveURL(href)
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}

		title := anchorTitle(anchor)

		company := ValueUnspecified
		location := params.Location
		if location == "" {
			location = ValueUnspecified
		}

		if ariaLabel, ok := anchor.Attr("aria-label"); ok {
			if m := companyPattern.FindStringSubmatch(ariaLabel); m != nil {
				company = m[1]
			}
			if m := locationPattern.FindStringSubmatch(ariaLabel); m != nil {
				location = strings.TrimSpace(m[1])
			}
		}

		isAlternance := false
		contractType := ValueUndetermined
		if containsAlternance(title) {
			isAlternance = true
			contractType = "Potentiellement alternance/apprentissage"
		}

		if params.ContractType != "" {
			filter := strings.ToLower(params.ContractType)
			if !strings.Contains(strings.ToLower(title), filter) &&
				!strings.Contains(strings.ToLower(contractType), filter) {
				return
			}
		}

		listings = append(listings, JobListing{
			Title:        title,
			Company:      company,
			Location:     location,
			Description:  "Type de contrat: " + contractType,
			Link:         link,
			ContractType: contractType,
			IsAlternance: isAlternance,
		})
	})

	return listings
}

// resolveURL absolutizes a relative href against the site's base origin
func (s *Scraper) resolveURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return s.BaseURL + href
}

// containsAlternance reports whether the text mentions an
// apprenticeship-type contract
func containsAlternance(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "altern") || strings.Contains(lower, "apprentissage")
}

// matchesContractFilter applies the shallow contract-type filter used on
// the card extraction path. An empty filter accepts everything; the
// alternance filter also accepts listings flagged through their title.
func matchesContractFilter(filter, contractType string, isAlternance bool) bool {
	if filter == "" {
		return true
	}
	lowerFilter := strings.ToLower(filter)
	if strings.Contains(strings.ToLower(contractType), lowerFilter) {
		return true
	}
	return strings.Contains(lowerFilter, "alternance") && isAlternance
}
