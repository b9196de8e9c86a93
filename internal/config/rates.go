package config

const (
	defaultRatesBaseURL       = "https://api.exchangerate-api.com/v4/latest"
	defaultRequestTimeoutSecs = 5
	defaultCacheExpiryMinutes = 0
)

type RatesConfig struct {
	RatesBaseURL       string `yaml:"base-url"`
	RequestTimeoutSecs int64  `yaml:"request-timeout-seconds"`
	CacheExpiryMins    int64  `yaml:"cache-expiry-minutes"`
}

func (s *RatesConfig) BaseURL() string {
	if s.RatesBaseURL == "" {
		return defaultRatesBaseURL
	}
	return s.RatesBaseURL
}

func (s *RatesConfig) RequestTimeoutSeconds() int64 {
	if s.RequestTimeoutSecs <= 0 {
		return defaultRequestTimeoutSecs
	}
	return s.RequestTimeoutSecs
}

// CacheExpiryMinutes of zero disables rate caching entirely.
func (s *RatesConfig) CacheExpiryMinutes() int64 {
	if s.CacheExpiryMins < 0 {
		return defaultCacheExpiryMinutes
	}
	return s.CacheExpiryMins
}
