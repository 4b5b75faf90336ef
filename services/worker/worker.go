// Package worker runs the scrape pipeline end to end: search, deep
// contract filtering, letter generation, session persistence and the
// optional remote sinks.
package worker

import (
	"context"
	"strings"
	"time"

	"jmorel/hellohunt/internal/scraper"
	"jmorel/hellohunt/logger"
	"jmorel/hellohunt/services/publisher"
)

// Searcher finds job listings and fetches offer detail pages
type Searcher interface {
	Search(ctx context.Context, params scraper.SearchParams) ([]scraper.JobListing, error)
	FetchJobDetails(jobURL string) string
}

// LetterWriter generates and saves cover letters
type LetterWriter interface {
	Generate(job scraper.JobListing, description string) string
	Save(job scraper.JobListing, letterText string) (string, error)
}

// SessionSaver persists a scraping run
type SessionSaver interface {
	Save(listings []scraper.JobListing, params scraper.SearchParams) (string, error)
}

// ListingInserter stores listings in a database, skipping duplicates
type ListingInserter interface {
	InsertListing(ctx context.Context, listing scraper.JobListing, letterPath string) (bool, error)
}

// Summary reports what one pipeline run produced
type Summary struct {
	Found       int
	Kept        int
	Letters     int
	Published   int
	Inserted    int
	SessionPath string
}

// Worker drives one scraping run from search to storage
type Worker struct {
	searcher  Searcher
	letters   LetterWriter
	sessions  SessionSaver
	publisher publisher.Publisher
	store     ListingInserter

	generateLetters bool
	detailDelay     time.Duration
	log             *logger.Logger
}

// NewWorker creates a new worker. letters, sessions, pub and store may
// each be nil to disable that stage.
func NewWorker(
	searcher Searcher,
	letters LetterWriter,
	sessions SessionSaver,
	pub publisher.Publisher,
	store ListingInserter,
	generateLetters bool,
	detailDelay time.Duration,
) *Worker {
	return &Worker{
		searcher:        searcher,
		letters:         letters,
		sessions:        sessions,
		publisher:       pub,
		store:           store,
		generateLetters: generateLetters,
		detailDelay:     detailDelay,
		log:             logger.ForComponent("worker"),
	}
}

// Run searches for job listings and runs them through the pipeline
func (w *Worker) Run(ctx context.Context, params scraper.SearchParams) (*Summary, error) {
	listings, err := w.searcher.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Found: len(listings)}

	if params.ContractType != "" {
		listings = w.deepContractFilter(ctx, listings, params.ContractType)
	}
	summary.Kept = len(listings)

	w.processListings(ctx, listings, summary)

	if w.sessions != nil {
		path, err := w.sessions.Save(listings, params)
		if err != nil {
			w.log.WithError(err).Error().Msg("Échec de la sauvegarde de session")
		} else {
			summary.SessionPath = path
			w.log.WithField("path", path).Info().Msg("Session sauvegardée")
		}
	}

	w.log.WithFields(map[string]interface{}{
		"found":     summary.Found,
		"kept":      summary.Kept,
		"letters":   summary.Letters,
		"published": summary.Published,
		"inserted":  summary.Inserted,
	}).Info().Msg("Exécution terminée")

	return summary, nil
}

// ProcessListings re-runs the letter and sink stages over listings from
// a restored session
func (w *Worker) ProcessListings(ctx context.Context, listings []scraper.JobListing) *Summary {
	summary := &Summary{Found: len(listings), Kept: len(listings)}
	w.processListings(ctx, listings, summary)
	return summary
}

func (w *Worker) processListings(ctx context.Context, listings []scraper.JobListing, summary *Summary) {
	for i := range listings {
		if ctx.Err() != nil {
			return
		}
		listing := &listings[i]

		letterPath := ""
		if w.generateLetters && w.letters != nil {
			description := listing.DetailText
			if description == "" {
				description = w.searcher.FetchJobDetails(listing.Link)
				listing.DetailText = description
			}
			text := w.letters.Generate(*listing, description)
			path, err := w.letters.Save(*listing, text)
			if err != nil {
				w.log.WithError(err).WithField("title", listing.Title).Error().Msg("Échec de l'enregistrement de la lettre")
			} else {
				letterPath = path
				summary.Letters++
			}
		}

		if w.publisher != nil {
			if err := w.publisher.Append(*listing, letterPath); err != nil {
				w.log.WithError(err).WithField("title", listing.Title).Error().Msg("Échec de la publication de l'offre")
			} else {
				summary.Published++
			}
		}

		if w.store != nil {
			inserted, err := w.store.InsertListing(ctx, *listing, letterPath)
			if err != nil {
				w.log.WithError(err).WithField("title", listing.Title).Error().Msg("Échec de l'insertion de l'offre")
			} else if inserted {
				summary.Inserted++
			}
		}
	}
}

// deepContractFilter rechecks listings against the contract filter
// using the full offer page text. A listing whose card already settled
// the match is kept without a detail fetch: the alternance flag settles
// the "alternance" filter, and a filter occurring in the contract label
// settles any filter. Everything else keeps only when the filter occurs
// somewhere in the fetched detail text.
func (w *Worker) deepContractFilter(ctx context.Context, listings []scraper.JobListing, contractFilter string) []scraper.JobListing {
	kept := make([]scraper.JobListing, 0, len(listings))
	filter := scraper.Fold(contractFilter)

	for i := range listings {
		if ctx.Err() != nil {
			break
		}
		listing := listings[i]

		if (filter == "alternance" && listing.IsAlternance) ||
			strings.Contains(scraper.Fold(listing.ContractType), filter) {
			kept = append(kept, listing)
			continue
		}

		details := w.searcher.FetchJobDetails(listing.Link)
		if details != "" && strings.Contains(scraper.Fold(details), filter) {
			listing.DetailText = details
			if listing.ContractType == scraper.ValueUnspecified || listing.ContractType == "" {
				match := scraper.IdentifyContractType(listing.Title, details)
				if match.ContractType != scraper.ValueUnspecified {
					listing.ContractType = match.ContractType
				}
				listing.IsAlternance = listing.IsAlternance || match.IsAlternance
			}
			kept = append(kept, listing)
		} else {
			w.log.WithField("title", listing.Title).Debug().Msg("Offre écartée par le filtre de contrat")
		}

		if w.detailDelay > 0 {
			time.Sleep(w.detailDelay)
		}
	}
	return kept
}
