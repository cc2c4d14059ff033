package main

import (
	"fmt"
	"net/http"

	"github.com/rlarkdtks312/kakao-api-geocoding/internal/config"
	"github.com/rlarkdtks312/kakao-api-geocoding/internal/handler"
	"github.com/rlarkdtks312/kakao-api-geocoding/internal/kakao"
	"github.com/rlarkdtks312/kakao-api-geocoding/internal/naver"
	"github.com/rlarkdtks312/kakao-api-geocoding/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	if err := cfg.ValidateProvider(); err != nil {
		log.Fatal().Err(err).Msg("invalid provider configuration")
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot build provider")
	}

	// Initialize layers
	geoCodeService := service.NewGeoCodeService(provider, log.Logger)
	reverseGeocodeService := service.NewReverseGeoCodeService(provider, log.Logger)

	geoCodeHandler := handler.NewGeoCodeHandler(geoCodeService)
	reverseGeocodeHandler := handler.NewReverseGeocodeHandler(reverseGeocodeService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/geocode", geoCodeHandler.GeoCode)
	r.GET("/reverse-geocode", reverseGeocodeHandler.ReverseGeocode)

	r.Run(cfg.ServerAddress)
}

func buildProvider(cfg config.Config) (service.Provider, error) {
	switch cfg.Provider {
	case "kakao":
		opts := []kakao.Option{kakao.WithLogger(log.Logger)}
		if cfg.KakaoBaseURL != "" {
			opts = append(opts, kakao.WithBaseURL(cfg.KakaoBaseURL))
		}
		return kakao.NewClient(cfg.KakaoAPIKey, opts...), nil
	case "naver":
		opts := []naver.Option{naver.WithLogger(log.Logger)}
		if cfg.NaverBaseURL != "" {
			opts = append(opts, naver.WithBaseURL(cfg.NaverBaseURL))
		}
		return naver.NewClient(cfg.NaverAPIKeyID, cfg.NaverAPIKey, opts...), nil
	default:
		return nil, fmt.Errorf("unsupported provider '%s'", cfg.Provider)
	}
}
