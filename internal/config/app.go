package config

const defaultBaseCurrency = "INR"

type AppConfig struct {
	BaseCurrencyName string `yaml:"base-currency"`
}

func (s *AppConfig) BaseCurrency() string {
	if s.BaseCurrencyName == "" {
		return defaultBaseCurrency
	}
	return s.BaseCurrencyName
}
