package weather

import (
	"net/http"

	"dht11-dashboard/internal/modules/weather/controller"
	"dht11-dashboard/internal/modules/weather/repository"
	"dht11-dashboard/internal/modules/weather/service"
)

func RegisterFeature(mux *http.ServeMux, dataFile, dataDir string, recorder service.Recorder) {
	weatherRepository := repository.NewRepository(dataDir)
	weatherService := service.NewService(weatherRepository, recorder)
	weatherController := controller.NewWeatherController(weatherService, dataFile)
	weatherController.RegisterRoutes(mux)
}
