package controller

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"dht11-dashboard/internal/modules/weather/service"
	"dht11-dashboard/internal/modules/weather/types"
	"dht11-dashboard/internal/utils"
)

func (c *weatherControllerImpl) handleCard(w http.ResponseWriter, r *http.Request) {
	c.writeCard(w, c.dataFile, "")
}

func (c *weatherControllerImpl) handleDeviceCard(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	path, err := c.service.Repository().DevicePath(id)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	c.writeCard(w, path, id)
}

func (c *weatherControllerImpl) writeCard(w http.ResponseWriter, path, deviceID string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	err := c.service.RenderCard(w, path, deviceID)
	if err == nil {
		return
	}
	if service.IsLoadError(err) {
		utils.WriteText(w, http.StatusInternalServerError, service.Diagnostic)
		return
	}
	slog.Error("card render failed", "path", path, "error", err)
	utils.WriteError(w, http.StatusInternalServerError, "failed to render page")
}

func (c *weatherControllerImpl) handleDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := c.service.Repository().ListDevices()
	if err != nil {
		slog.Error("list devices failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to list devices")
		return
	}
	utils.WriteJSON(w, http.StatusOK, devices)
}

func (c *weatherControllerImpl) handleLatest(w http.ResponseWriter, r *http.Request) {
	c.writeSnapshot(w, c.dataFile)
}

func (c *weatherControllerImpl) handleDeviceLatest(w http.ResponseWriter, r *http.Request) {
	path, err := c.service.Repository().DevicePath(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	snap, err := c.service.Snapshot(path)
	if errors.Is(err, fs.ErrNotExist) {
		utils.WriteError(w, http.StatusNotFound, "unknown device")
		return
	}
	respondSnapshot(w, snap, err)
}

func (c *weatherControllerImpl) writeSnapshot(w http.ResponseWriter, path string) {
	snap, err := c.service.Snapshot(path)
	respondSnapshot(w, snap, err)
}

func respondSnapshot(w http.ResponseWriter, snap types.Snapshot, err error) {
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, service.Diagnostic)
		return
	}
	utils.WriteJSON(w, http.StatusOK, snap)
}
