package publisher

import "jmorel/hellohunt/internal/scraper"

// Publisher represents a remote sink for scraped job listings
type Publisher interface {
	// Append publishes one job listing, with the path of its generated
	// cover letter when one exists
	Append(listing scraper.JobListing, letterPath string) error

	// Close closes the publisher connection
	Close() error
}
