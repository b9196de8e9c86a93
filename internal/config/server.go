package config

const defaultServerAddr = ":8080"

type ServerConfig struct {
	ListenAddr string `yaml:"addr"`
}

func (s *ServerConfig) Addr() string {
	if s.ListenAddr == "" {
		return defaultServerAddr
	}
	return s.ListenAddr
}
