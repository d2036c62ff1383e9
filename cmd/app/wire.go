//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/venuecast/internal/bootstrap"
	"github.com/yanqian/venuecast/internal/domain/recommend"
	"github.com/yanqian/venuecast/internal/infra/config"
	"github.com/yanqian/venuecast/internal/infra/geo"
	"github.com/yanqian/venuecast/internal/infra/venues/places"
	"github.com/yanqian/venuecast/internal/infra/weather/openweather"
	httpiface "github.com/yanqian/venuecast/internal/interface/http"
	"github.com/yanqian/venuecast/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideRecommendConfig,
		provideReranker,
		provideWeatherClient,
		provideVenuesClient,
		provideDistanceCalculator,
		provideProfileStore,
		provideRecommendProfileStore,
		recommend.NewService,
		wire.Bind(new(recommend.WeatherSource), new(*openweather.Client)),
		wire.Bind(new(recommend.VenueSource), new(*places.Client)),
		wire.Bind(new(recommend.DistanceCalculator), new(*geo.Haversine)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
