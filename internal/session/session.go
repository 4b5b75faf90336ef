// Package session persists scraping runs to disk so an interrupted or
// reviewed run can be resumed later with its search parameters intact.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"jmorel/hellohunt/internal/scraper"
	"jmorel/hellohunt/pkg/errors"
)

const (
	statePrefix = "scraping_state_"
	stateSuffix = ".json"
)

// State is a snapshot of one scraping run.
type State struct {
	ID           string               `json:"id"`
	JobListings  []scraper.JobListing `json:"job_listings"`
	SearchParams scraper.SearchParams `json:"search_params"`
	Timestamp    string               `json:"timestamp"`
}

// Store reads and writes session states under a single directory.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Save writes a new state file named after the current time and returns
// its path. The directory is created on first use.
func (s *Store) Save(listings []scraper.JobListing, params scraper.SearchParams) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", errors.NewStorage("failed to create session directory", err)
	}

	now := time.Now()
	state := State{
		ID:           uuid.New().String(),
		JobListings:  listings,
		SearchParams: params,
		Timestamp:    now.Format("2006-01-02 15:04:05"),
	}

	name := fmt.Sprintf("%s%s%s", statePrefix, now.Format("20060102_150405"), stateSuffix)
	path := filepath.Join(s.Dir, name)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return "", errors.NewStorage("failed to encode session state", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.NewStorage("failed to write session state", err)
	}
	return path, nil
}

// List returns the session file names, most recent first. A missing
// directory is treated as an empty store.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewStorage("failed to read session directory", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, statePrefix) && strings.HasSuffix(name, stateSuffix) {
			names = append(names, name)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// Load reads one session state by file name.
func (s *Store) Load(name string) (*State, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, errors.NewStorage("failed to read session state", err)
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, errors.NewStorage("failed to decode session state", err)
	}
	return &state, nil
}
