// Package store persists scraped job listings in Postgres, deduplicated
// by offer link.
package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"jmorel/hellohunt/internal/scraper"
	"jmorel/hellohunt/pkg/errors"
)

// ListingStore writes job listings to the job_listings table.
//
// Expected schema:
//
//	CREATE TABLE job_listings (
//	    id            BIGSERIAL PRIMARY KEY,
//	    title         TEXT NOT NULL,
//	    company       TEXT NOT NULL,
//	    location      TEXT NOT NULL,
//	    contract_type TEXT NOT NULL,
//	    description   TEXT NOT NULL,
//	    link          TEXT NOT NULL UNIQUE,
//	    letter_path   TEXT NOT NULL DEFAULT '',
//	    scraped_at    TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type ListingStore struct {
	pool *pgxpool.Pool
}

// NewListingStore connects to Postgres with the given URL.
func NewListingStore(ctx context.Context, databaseURL string) (*ListingStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, errors.NewStorage("failed to connect to database", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.NewStorage("database is not reachable", err)
	}
	return &ListingStore{pool: pool}, nil
}

// InsertListing inserts one listing, skipping it when the link already
// exists. It reports whether a row was actually written.
func (s *ListingStore) InsertListing(ctx context.Context, listing scraper.JobListing, letterPath string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO job_listings (title, company, location, contract_type, description, link, letter_path)
		 SELECT $1, $2, $3, $4, $5, $6, $7
		 WHERE NOT EXISTS (
		   SELECT 1 FROM job_listings WHERE link = $6
		 )`,
		listing.Title, listing.Company, listing.Location, listing.ContractType,
		listing.Description, listing.Link, letterPath,
	)
	if err != nil {
		return false, errors.NewStorage("failed to insert job listing", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Close releases the connection pool.
func (s *ListingStore) Close() {
	s.pool.Close()
}
