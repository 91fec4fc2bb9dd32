package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración de las herramientas de mensajes.
type Config struct {
	NodeID    int64  `env:"MSG_NODE_ID" envDefault:"1"`
	OutputDir string `env:"MSG_OUTPUT_DIR" envDefault:"."`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
