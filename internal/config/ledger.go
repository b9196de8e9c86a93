package config

const defaultLedgerFile = "data/expenses.csv"

type LedgerConfig struct {
	File string `yaml:"file"`
}

func (s *LedgerConfig) FilePath() string {
	if s.File == "" {
		return defaultLedgerFile
	}
	return s.File
}
