package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"dht11-dashboard/internal/utils"
)

type healthchecker interface {
	handleHealthz(w http.ResponseWriter, r *http.Request)
}

type healthcheckerImpl struct {
	dataDir string
}

// NewHealthchecker reports healthy while the directory holding dataFile can be opened.
func NewHealthchecker(dataFile string) healthchecker {
	return &healthcheckerImpl{dataDir: filepath.Dir(dataFile)}
}

func (h *healthcheckerImpl) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := checkDir(h.dataDir); err != nil {
		slog.Error("failed to check data directory", "dir", h.dataDir, "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "data directory is not accessible")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func checkDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

func registerHealthcheck(mux *http.ServeMux, dataFile string) {
	healthchecker := NewHealthchecker(dataFile)
	mux.HandleFunc("GET /healthz", healthchecker.handleHealthz)
}
