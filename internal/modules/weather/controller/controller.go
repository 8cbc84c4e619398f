package controller

import (
	"net/http"

	"dht11-dashboard/internal/modules/weather/service"
)

type WeatherController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type weatherControllerImpl struct {
	service  *service.Service
	dataFile string
}

// NewWeatherController serves dataFile at / and the device files known to
// svc's repository under /devices/.
func NewWeatherController(svc *service.Service, dataFile string) WeatherController {
	return &weatherControllerImpl{service: svc, dataFile: dataFile}
}

func (c *weatherControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", c.handleCard)
	mux.HandleFunc("GET /devices/{id}", c.handleDeviceCard)
	mux.HandleFunc("GET /api/v1/devices", c.handleDevices)
	mux.HandleFunc("GET /api/v1/latest", c.handleLatest)
	mux.HandleFunc("GET /api/v1/devices/{id}/latest", c.handleDeviceLatest)
}
