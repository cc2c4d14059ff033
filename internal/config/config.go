package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config carries everything the converters and the API server consume. API
// keys are supplied here by the operator; the core performs no key
// management of its own.
type Config struct {
	ServerAddress string        `mapstructure:"SERVER_ADDRESS"`
	Provider      string        `mapstructure:"GEOCODE_PROVIDER"`
	KakaoAPIKey   string        `mapstructure:"KAKAO_REST_API_KEY"`
	KakaoBaseURL  string        `mapstructure:"KAKAO_BASE_URL"`
	NaverAPIKeyID string        `mapstructure:"NAVER_MAPS_API_KEY_ID"`
	NaverAPIKey   string        `mapstructure:"NAVER_MAPS_API_KEY"`
	NaverBaseURL  string        `mapstructure:"NAVER_BASE_URL"`
	RequestDelay  time.Duration `mapstructure:"REQUEST_DELAY"`
}

// LoadConfig reads app.env from the given directory plus the environment.
func LoadConfig(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	viper.SetDefault("GEOCODE_PROVIDER", "kakao")
	viper.SetDefault("REQUEST_DELAY", "100ms")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("config: failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("config: failed to unmarshal config: %w", err)
	}
	return config, nil
}

// ValidateProvider checks that the selected provider has its key material.
func (c Config) ValidateProvider() error {
	switch c.Provider {
	case "kakao":
		if c.KakaoAPIKey == "" {
			return fmt.Errorf("config: KAKAO_REST_API_KEY is required for the kakao provider")
		}
	case "naver":
		if c.NaverAPIKeyID == "" || c.NaverAPIKey == "" {
			return fmt.Errorf("config: NAVER_MAPS_API_KEY_ID and NAVER_MAPS_API_KEY are required for the naver provider")
		}
	default:
		return fmt.Errorf("config: unsupported provider '%s' (want kakao or naver)", c.Provider)
	}
	return nil
}
