package analytics

import (
	"os"

	"studenthub/internal/app"

	"gopkg.in/yaml.v3"
)

type Config struct {
	CfgDB        app.ConfigDB    `yaml:"db"`
	CfgKafka     app.ConfigKafka `yaml:"kafka"`
	GroupID      string          `yaml:"group_id"`
	MaxOpenConns int             `yaml:"max_open_conns"`
	ServerPort   string          `yaml:"srv_port"`
}

func NewConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := Config{
		CfgKafka:   app.ConfigKafka{Topic: "cart-events"},
		GroupID:    "cart-analytics",
		ServerPort: ":8082",
	}
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
