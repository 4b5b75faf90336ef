// hellohunt scrapes HelloWork job listings, classifies their contract
// types and generates personalized cover letters.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"jmorel/hellohunt/config"
	"jmorel/hellohunt/internal/letter"
	"jmorel/hellohunt/internal/scraper"
	"jmorel/hellohunt/internal/session"
	"jmorel/hellohunt/logger"
	"jmorel/hellohunt/services/cache"
	"jmorel/hellohunt/services/proxy"
	"jmorel/hellohunt/services/publisher"
	"jmorel/hellohunt/services/store"
	"jmorel/hellohunt/services/worker"
)

var (
	flagJob        string
	flagLocation   string
	flagContract   string
	flagPages      int
	flagLetters    bool
	flagUseProxies bool
)

var rootCmd = &cobra.Command{
	Use:   "hellohunt",
	Short: "Scraper d'offres d'emploi HelloWork",
	Long:  "hellohunt extrait les offres d'emploi de HelloWork, identifie leur type de contrat et génère des lettres de motivation personnalisées.",
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Lance une recherche d'offres et traite les résultats",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScrape(cmd.Context())
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Relance la recherche à intervalle régulier",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd.Context())
	},
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Liste les sessions de scraping sauvegardées",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		names, err := session.NewStore(cfg.SavesDir).List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("Aucune session sauvegardée.")
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume <fichier>",
	Short: "Reprend une session sauvegardée et régénère les lettres",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResume(cmd.Context(), args[0])
	},
}

func init() {
	for _, cmd := range []*cobra.Command{scrapeCmd, watchCmd} {
		cmd.Flags().StringVar(&flagJob, "job", "", "intitulé du poste recherché")
		cmd.Flags().StringVar(&flagLocation, "location", "", "localisation de la recherche")
		cmd.Flags().StringVar(&flagContract, "contract", "", "type de contrat (CDI, CDD, Alternance, ...)")
		cmd.Flags().IntVar(&flagPages, "pages", 1, "nombre de pages de résultats")
		cmd.Flags().BoolVar(&flagLetters, "letters", false, "générer les lettres de motivation")
		cmd.Flags().BoolVar(&flagUseProxies, "proxies", false, "utiliser la rotation de proxies")
		cmd.MarkFlagRequired("job")
	}

	resumeCmd.Flags().BoolVar(&flagLetters, "letters", true, "générer les lettres de motivation")

	rootCmd.AddCommand(scrapeCmd, watchCmd, sessionsCmd, resumeCmd)
}

func main() {
	_ = godotenv.Load()
	logger.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Erreur: %v\n", err)
		os.Exit(1)
	}
}

func runScrape(ctx context.Context) error {
	_, w, cleanup, err := buildWorker(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	summary, err := w.Run(ctx, searchParams())
	if err != nil {
		return err
	}

	fmt.Printf("%d offres trouvées, %d retenues, %d lettres générées.\n",
		summary.Found, summary.Kept, summary.Letters)
	if summary.SessionPath != "" {
		fmt.Printf("Session sauvegardée dans %s\n", summary.SessionPath)
	}
	return nil
}

func runWatch(ctx context.Context) error {
	cfg, w, cleanup, err := buildWorker(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	scheduler := worker.NewScheduler(w, searchParams(), cfg.WatchInterval)
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	defer scheduler.Stop()

	<-ctx.Done()
	return nil
}

func runResume(ctx context.Context, name string) error {
	cfg, w, cleanup, err := buildWorker(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	state, err := session.NewStore(cfg.SavesDir).Load(name)
	if err != nil {
		return err
	}

	fmt.Printf("Session %s restaurée: %d offres (recherche %q).\n",
		state.ID, len(state.JobListings), state.SearchParams.JobTitle)

	summary := w.ProcessListings(ctx, state.JobListings)
	fmt.Printf("%d lettres générées.\n", summary.Letters)
	return nil
}

func searchParams() scraper.SearchParams {
	return scraper.SearchParams{
		JobTitle:     flagJob,
		Location:     flagLocation,
		ContractType: flagContract,
		MaxPages:     flagPages,
		UseProxies:   flagUseProxies,
	}
}

// buildWorker assembles the pipeline from the configuration. The
// returned cleanup closes the optional remote connections.
func buildWorker(ctx context.Context) (*config.Config, *worker.Worker, func(), error) {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	var cacheSvc cache.CacheService
	if cfg.MemcacheAddr != "" {
		cacheSvc = cache.NewMemcacheService(cfg.MemcacheAddr)
	}

	var proxies *proxy.Rotation
	if flagUseProxies {
		var err error
		proxies, err = proxy.LoadFromFile(cfg.ProxyFile)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	s := scraper.New(cfg, cacheSvc, proxies)
	letters := letter.NewGenerator(cfg.CVPath, cfg.ParcoursPath, cfg.InfosPersoPath, cfg.LettersDir)
	sessions := session.NewStore(cfg.SavesDir)

	var pub publisher.Publisher
	if cfg.RedisAddr != "" {
		pub = publisher.NewRedisPublisher(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	var inserter worker.ListingInserter
	var listingStore *store.ListingStore
	if cfg.DatabaseURL != "" {
		var err error
		listingStore, err = store.NewListingStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		inserter = listingStore
	}

	w := worker.NewWorker(s, letters, sessions, pub, inserter, flagLetters, time.Second)

	cleanup := func() {
		if pub != nil {
			if err := pub.Close(); err != nil {
				logger.Warn("Fermeture du publisher: %v", err)
			}
		}
		if listingStore != nil {
			listingStore.Close()
		}
	}
	return cfg, w, cleanup, nil
}
