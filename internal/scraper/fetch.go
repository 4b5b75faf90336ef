package scraper

import (
	"fmt"
	"io"
	"strings"

	"jmorel/hellohunt/helpers"
	scrapeerrors "jmorel/hellohunt/pkg/errors"
)

// fetchPage fetches one URL, honouring the rate-limit guard and the
// proxy rotation. With proxies configured, each proxy is tried in order
// and a final attempt without proxy is made when all of them fail.
func (s *Scraper) fetchPage(pageURL string) (io.Reader, error) {
	// Rate-limit guard: a hit on the block key means a previous fetch
	// was throttled and the block has not expired yet
	if s.CacheSvc != nil && s.CacheKey != "" {
		if _, err := s.CacheSvc.Get(s.CacheKey); err == nil {
			return nil, scrapeerrors.NewRateLimit(pageURL, s.BlockTime)
		}
	}

	if s.Proxies != nil && s.Proxies.Len() > 0 {
		for _, addr := range s.Proxies.Addrs() {
			client, err := helpers.NewProxyClient(addr, s.timeout)
			if err != nil {
				s.log.Debug().Str("proxy", addr).Err(err).Msg("Invalid proxy address")
				continue
			}

			body, err := helpers.FetchWithBrowserHeaders(client, pageURL)
			if err == nil {
				s.log.Debug().Str("proxy", addr).Msg("Requête réussie avec proxy")
				return body, nil
			}
			s.log.Debug().Str("proxy", addr).Err(err).Msg("Proxy attempt failed")
		}
		s.log.Warn().Msg("Tous les proxies ont échoué, tentative sans proxy")
	}

	body, err := helpers.FetchWithBrowserHeaders(s.client, pageURL)
	if err != nil {
		if strings.HasPrefix(err.Error(), "rate limited") {
			if s.CacheSvc != nil && s.CacheKey != "" {
				blockSeconds := fmt.Sprintf("%d", int(s.BlockTime.Seconds()))
				if setErr := s.CacheSvc.Set(s.CacheKey, []byte(blockSeconds), s.BlockTime); setErr != nil {
					s.log.Warn().Err(setErr).Msg("Failed to set rate-limit block")
				}
			}
			return nil, scrapeerrors.NewRateLimit(pageURL, s.BlockTime)
		}
		return nil, scrapeerrors.NewNetwork(pageURL, "fetch failed", err)
	}

	return body, nil
}
