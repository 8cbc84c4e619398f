package httpapi

import "net/http"

// NewMux registers the operational endpoints. Feature routes are added by the caller.
func NewMux(dataFile string, metricsHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	registerHealthcheck(mux, dataFile)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
	return mux
}
