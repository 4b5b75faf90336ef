package proxy

import (
	"bufio"
	"os"
	"strings"

	"jmorel/hellohunt/logger"
)

// Rotation holds an ordered list of proxy addresses to be tried one
// after the other. The scraper walks the list linearly and falls back
// to a direct request when every proxy fails.
type Rotation struct {
	addrs []string
}

// NewRotation creates a rotation from a list of "ip:port" addresses
func NewRotation(addrs []string) *Rotation {
	return &Rotation{addrs: addrs}
}

// LoadFromFile reads a newline-delimited proxy list. Each line holds
// one "ip:port" address; blank lines and '#' comments are ignored. A
// missing file yields an empty rotation, not an error.
func LoadFromFile(path string) (*Rotation, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Fichier de proxies %s non trouvé", path)
			return &Rotation{}, nil
		}
		return nil, err
	}
	defer file.Close()

	var addrs []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || !strings.Contains(line, ":") {
			continue
		}
		addrs = append(addrs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	logger.Info("%d proxies chargés depuis %s", len(addrs), path)
	return &Rotation{addrs: addrs}, nil
}

// Addrs returns the proxy addresses in rotation order
func (r *Rotation) Addrs() []string {
	return r.addrs
}

// Len returns the number of proxies in the rotation
func (r *Rotation) Len() int {
	return len(r.addrs)
}
