package config

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultRPCURL is the Fogo testnet JSON-RPC endpoint.
const DefaultRPCURL = "https://testnet.fogo.io"

const (
	defaultCheckTimeout = 30 * time.Second
	minCheckTimeout     = time.Second
	maxCheckTimeout     = 5 * time.Minute
	defaultHistoryLimit = 1000
	minHistoryLimit     = 1
	maxHistoryLimit     = 1000 // getSignaturesForAddress page cap
	defaultListenAddr   = ":8501"
)

// Config holds 12-factor environment configuration used by the checker binary.
type Config struct {
	RPCURL       string
	CheckTimeout time.Duration
	HistoryLimit int
	ListenAddr   string
	LogLevel     string
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}

func parseDurEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampDuration(v, min, max time.Duration) time.Duration {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// LoadDotEnv seeds the process environment from the given files (".env" when
// none are given). Variables already set in the environment win. Missing
// files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

var secretParams = []string{"key", "token", "secret", "password", "auth"}

// RedactURL hides credentials in endpoint URLs to avoid logging secrets:
// userinfo passwords and query values whose name looks like an API key.
func RedactURL(s string) string {
	if s == "" {
		return s
	}
	u, err := url.Parse(s)
	if err != nil {
		return s
	}
	if u.User != nil {
		if _, hasPass := u.User.Password(); hasPass {
			u.User = url.UserPassword(u.User.Username(), "***")
		} else {
			u.User = url.User("***")
		}
	}
	if u.RawQuery != "" {
		q := u.Query()
		changed := false
		for name := range q {
			lower := strings.ToLower(name)
			for _, marker := range secretParams {
				if strings.Contains(lower, marker) {
					q.Set(name, "REDACTED")
					changed = true
					break
				}
			}
		}
		if changed {
			u.RawQuery = q.Encode()
		}
	}
	return u.String()
}

// Load reads environment variables and returns a Config with defaults applied.
func Load() Config {
	timeout := clampDuration(parseDurEnv("CHECK_TIMEOUT", defaultCheckTimeout), minCheckTimeout, maxCheckTimeout)
	limit := clampInt(parseIntEnv("HISTORY_LIMIT", defaultHistoryLimit), minHistoryLimit, maxHistoryLimit)
	return Config{
		RPCURL:       strings.TrimSpace(env("FOGO_RPC_URL", DefaultRPCURL)),
		CheckTimeout: timeout,
		HistoryLimit: limit,
		ListenAddr:   env("LISTEN_ADDR", defaultListenAddr),
		LogLevel:     env("LOG_LEVEL", "info"),
	}
}
