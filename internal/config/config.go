package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const configFile = "data/config.yaml"

type config struct {
	App    AppConfig    `yaml:"app"`
	Rates  RatesConfig  `yaml:"rates"`
	Ledger LedgerConfig `yaml:"ledger"`
	Server ServerConfig `yaml:"server"`
}

type Service struct {
	config config
}

func New() (*Service, error) {
	return NewFromFile(configFile)
}

func NewFromFile(path string) (*Service, error) {
	s := &Service{}

	rawYAML, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	err = yaml.Unmarshal(rawYAML, &s.config)
	if err != nil {
		return nil, errors.Wrap(err, "parsing yaml")
	}

	return s, nil
}

func (s *Service) App() *AppConfig {
	return &s.config.App
}

func (s *Service) Rates() *RatesConfig {
	return &s.config.Rates
}

func (s *Service) Ledger() *LedgerConfig {
	return &s.config.Ledger
}

func (s *Service) Server() *ServerConfig {
	return &s.config.Server
}
