package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jmorel/hellohunt/config"
	"jmorel/hellohunt/internal/letter"
	"jmorel/hellohunt/internal/scraper"
	"jmorel/hellohunt/internal/session"
	"jmorel/hellohunt/services/worker"
)

// Search result page that mimics the HelloWork card markup
const searchHTML = `
<!DOCTYPE html>
<html>
<body>
	<div data-cy="serpCard">
		<a href="/fr-fr/emplois/1.html">Voir l'offre</a>
		<p class="tw-typo-l">Développeur Python</p>
		<p class="tw-inline">Acme</p>
		<div data-cy="localisationCard">Paris</div>
		<div data-cy="contractCard">CDI</div>
	</div>
	<div data-cy="serpCard">
		<a href="/fr-fr/emplois/2.html">Voir l'offre</a>
		<p class="tw-typo-l">Chargé de clientèle</p>
		<p class="tw-inline">Beta</p>
		<div data-cy="localisationCard">Lyon</div>
		<div data-cy="contractCard">CDD</div>
	</div>
</body>
</html>`

const detailHTML = `
<!DOCTYPE html>
<html>
<body>
	<div class="job-description">Nous recherchons un profil maîtrisant Python et Docker pour un poste en CDI.</div>
</body>
</html>`

// countingPublisher records appended listings in memory
type countingPublisher struct {
	listings []scraper.JobListing
	paths    []string
}

func (p *countingPublisher) Append(listing scraper.JobListing, letterPath string) error {
	p.listings = append(p.listings, listing)
	p.paths = append(p.paths, letterPath)
	return nil
}

func (p *countingPublisher) Close() error { return nil }

func TestScrapePipelineEndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/fr-fr/emploi/recherche.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(searchHTML))
	})
	mux.HandleFunc("/fr-fr/emplois/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(detailHTML))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	dir := t.TempDir()
	cvPath := filepath.Join(dir, "cv.txt")
	require.NoError(t, os.WriteFile(cvPath,
		[]byte("Ingénieur logiciel, 5 ans de Python et Docker en production.\n\nDétails..."), 0o644))

	cfg := &config.Config{
		BaseURL:          server.URL,
		SearchURLPattern: server.URL + "/fr-fr/emploi/recherche.html?k=%s&l=%s",
		HTTPTimeout:      5 * time.Second,
	}

	s := scraper.New(cfg, nil, nil)
	letters := letter.NewGenerator(cvPath, filepath.Join(dir, "parcours.txt"),
		filepath.Join(dir, "infos_perso.json"), filepath.Join(dir, "lettres"))
	sessions := session.NewStore(filepath.Join(dir, "saves"))
	pub := &countingPublisher{}

	w := worker.NewWorker(s, letters, sessions, pub, nil, true, 0)

	summary, err := w.Run(context.Background(), scraper.SearchParams{
		JobTitle: "développeur python",
		Location: "Paris",
		MaxPages: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Found)
	assert.Equal(t, 2, summary.Kept)
	assert.Equal(t, 2, summary.Letters)
	assert.Equal(t, 2, summary.Published)
	assert.NotEmpty(t, summary.SessionPath)

	// The published listings carry the paths of the generated letters
	require.Len(t, pub.paths, 2)
	for _, path := range pub.paths {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Madame, Monsieur,")
	}

	// The first letter picks up the skills shared between CV and offer
	first, err := os.ReadFile(pub.paths[0])
	require.NoError(t, err)
	assert.Contains(t, string(first), "Python et Docker")

	// The session snapshot can be restored
	store := session.NewStore(filepath.Join(dir, "saves"))
	names, err := store.List()
	require.NoError(t, err)
	require.Len(t, names, 1)

	state, err := store.Load(names[0])
	require.NoError(t, err)
	assert.Len(t, state.JobListings, 2)
	assert.Equal(t, "développeur python", state.SearchParams.JobTitle)
}

func TestScrapePipelineDeepFilterEndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/fr-fr/emploi/recherche.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(searchHTML))
	})
	mux.HandleFunc("/fr-fr/emplois/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(detailHTML))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	cfg := &config.Config{
		BaseURL:          server.URL,
		SearchURLPattern: server.URL + "/fr-fr/emploi/recherche.html?k=%s&l=%s",
		HTTPTimeout:      5 * time.Second,
	}

	s := scraper.New(cfg, nil, nil)
	w := worker.NewWorker(s, nil, nil, nil, nil, false, 0)

	// The CDD card is dropped by the shallow filter during extraction;
	// the CDI card passes the deep filter without a detail fetch.
	summary, err := w.Run(context.Background(), scraper.SearchParams{
		JobTitle:     "développeur",
		ContractType: "CDI",
		MaxPages:     1,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Found)
	assert.Equal(t, 1, summary.Kept)
}
