package bootstrap

import (
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort      string  `mapstructure:"SERVER_PORT"`
	RedisUrl        string  `mapstructure:"REDIS_URL"`
	MongoUri        string  `mapstructure:"MONGO_URI"`
	MongoDatabase   string  `mapstructure:"MONGO_DATABASE"`
	SuggesterUrl    string  `mapstructure:"SUGGESTER_URL"`
	SuggesterVisits int     `mapstructure:"SUGGESTER_VISITS"`
	DefaultKomi     float64 `mapstructure:"DEFAULT_KOMI"`
	EngineQueueSize int     `mapstructure:"ENGINE_QUEUE_SIZE"`
	IsLocalCors     bool    `mapstructure:"LOCAL_CORS"`
}

func Setup(cfgPath string) (*Config, error) {
	viper.SetConfigFile(cfgPath)

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("MONGO_DATABASE", "goban")
	viper.SetDefault("SUGGESTER_VISITS", 200)
	viper.SetDefault("DEFAULT_KOMI", 7.5)
	viper.SetDefault("ENGINE_QUEUE_SIZE", 16)

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
