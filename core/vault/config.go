package vault

import "github.com/kelseyhightower/envconfig"

type Config struct {
	Store struct {
		Path string `envconfig:"STORE_PATH" default:"data/filevault"`
	}
}

func GetConfig() (*Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
