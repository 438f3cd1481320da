package bootstrap

import (
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort    string `mapstructure:"SERVER_PORT"`
	RedisUrl      string `mapstructure:"REDIS_URL"`
	MongoUri      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`
	IsLocalCors   bool   `mapstructure:"LOCAL_CORS"`
}

func Setup(cfgPath string) (*Config, error) {
	viper.SetConfigFile(cfgPath)

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = "baduk"
	}

	return &cfg, nil
}
