package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"dht11-dashboard/internal/modules/weather/types"
)

const deviceFileExt = ".json"

var deviceIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ErrInvalidDeviceID is returned for ids that cannot name a file inside the data dir.
var ErrInvalidDeviceID = errors.New("invalid device id")

// ReadError means the readings file could not be read at all.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ParseError means the file was read but is not a readings document.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

type WeatherRepository interface {
	// Load reads and decodes the dataset at path. Every call hits the file.
	Load(path string) (types.Dataset, error)
	// DevicePath maps a device id to its readings file inside the data dir.
	DevicePath(deviceID string) (string, error)
	// ListDevices returns the ids of all readings files in the data dir, sorted.
	ListDevices() ([]string, error)
}

type repositoryImpl struct {
	dataDir string
}

func NewRepository(dataDir string) WeatherRepository {
	return &repositoryImpl{dataDir: dataDir}
}

func (r *repositoryImpl) Load(path string) (types.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return types.Dataset{}, &ReadError{Path: path, Err: err}
	}
	ds, err := decodeDataset(raw)
	if err != nil {
		return types.Dataset{}, &ParseError{Path: path, Err: err}
	}
	return ds, nil
}

func decodeDataset(raw []byte) (types.Dataset, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return types.Dataset{}, errors.New("empty document")
	}
	if !json.Valid(trimmed) {
		return types.Dataset{}, errors.New("invalid JSON")
	}
	if trimmed[0] != '{' {
		if bytes.Equal(trimmed, []byte("null")) {
			return types.Dataset{}, errors.New("document is null")
		}
		return types.Dataset{}, errors.New("document is not a JSON object")
	}
	var ds types.Dataset
	if err := json.Unmarshal(trimmed, &ds); err != nil {
		return types.Dataset{}, err
	}
	return ds, nil
}

func (r *repositoryImpl) DevicePath(deviceID string) (string, error) {
	if !deviceIDRe.MatchString(deviceID) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDeviceID, deviceID)
	}
	return filepath.Join(r.dataDir, deviceID+deviceFileExt), nil
}

func (r *repositoryImpl) ListDevices() ([]string, error) {
	entries, err := os.ReadDir(r.dataDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list %s: %w", r.dataDir, err)
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), deviceFileExt) {
			continue
		}
		id := strings.TrimSuffix(e.Name(), deviceFileExt)
		if !deviceIDRe.MatchString(id) {
			continue
		}
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
