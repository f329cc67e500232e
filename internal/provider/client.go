// Package provider fetches candidate attributes from the sports-data API.
package provider

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/scout-profile/internal/logger"
)

const (
	userAgent      = "spigell/scout-profile"
	defaultTimeout = 10 * time.Second
	// Max value for items per page.
	perPage = "100"

	defaultMaxRetries = 3
	defaultRetryDelay = time.Second
	maxRetryDelay     = 30 * time.Second
)

// Config is the provider section of the configuration file.
type Config struct {
	BaseURL    string        `mapstructure:"base-url"`
	APIKeyFile string        `mapstructure:"api-key-file"`
	Timeout    time.Duration `mapstructure:"timeout"`
	UserAgent  string        `mapstructure:"user-agent"`
}

type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	BaseURL    string
	MaxRetries int
	RetryDelay time.Duration
}

func New(l *zap.Logger, cfg Config, token string) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("provider base url is not configured")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = userAgent
	}

	return &Client{
		token:  token,
		logger: logger.WithFields(l, zap.String("provider", base)),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		UserAgent:  ua,
		BaseURL:    base,
		MaxRetries: defaultMaxRetries,
		RetryDelay: defaultRetryDelay,
	}, nil
}
