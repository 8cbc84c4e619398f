package service

import (
	"bytes"
	"errors"
	"io"
	"log/slog"

	"dht11-dashboard/internal/modules/weather/repository"
	"dht11-dashboard/internal/modules/weather/types"
	"dht11-dashboard/internal/modules/weather/views"
)

// Diagnostic is shown instead of the card when the readings file cannot be used.
const Diagnostic = "Erreur : impossible de lire le fichier JSON."

// Render outcomes, as reported to the Recorder.
const (
	ResultOK         = "ok"
	ResultReadError  = "read_error"
	ResultParseError = "parse_error"
	ResultRenderFail = "render_error"
)

// Recorder receives render outcomes. *metrics.Manager satisfies it.
type Recorder interface {
	RecordRender(result string)
	RecordPlaceholder(field string)
}

type nopRecorder struct{}

func (nopRecorder) RecordRender(string)      {}
func (nopRecorder) RecordPlaceholder(string) {}

type Service struct {
	repository repository.WeatherRepository
	recorder   Recorder
}

// NewService wires repo and recorder. A nil recorder discards outcomes.
func NewService(repo repository.WeatherRepository, recorder Recorder) *Service {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Service{repository: repo, recorder: recorder}
}

func (s *Service) Repository() repository.WeatherRepository {
	return s.repository
}

// RenderCard loads path and writes the card for it to w. Nothing is written to
// w unless the whole card rendered.
func (s *Service) RenderCard(w io.Writer, path, deviceID string) error {
	ds, err := s.load(path)
	if err != nil {
		s.recorder.RecordRender(Classify(err))
		return err
	}
	card := views.NewCard(deviceID, ds)

	var buf bytes.Buffer
	if err := views.RenderCard(&buf, card); err != nil {
		s.recorder.RecordRender(ResultRenderFail)
		return err
	}
	s.recorder.RecordRender(ResultOK)
	for _, field := range card.Placeholders() {
		s.recorder.RecordPlaceholder(field)
	}
	_, err = buf.WriteTo(w)
	return err
}

// Snapshot loads path and returns its latest readings.
func (s *Service) Snapshot(path string) (types.Snapshot, error) {
	ds, err := s.load(path)
	if err != nil {
		return types.Snapshot{}, err
	}
	return types.NewSnapshot(ds), nil
}

func (s *Service) load(path string) (types.Dataset, error) {
	ds, err := s.repository.Load(path)
	if err != nil {
		slog.Error("load readings failed", "path", path, "error", err)
		return types.Dataset{}, err
	}
	return ds, nil
}

// Classify maps a load error to its render outcome.
func Classify(err error) string {
	var readErr *repository.ReadError
	var parseErr *repository.ParseError
	switch {
	case err == nil:
		return ResultOK
	case errors.As(err, &readErr):
		return ResultReadError
	case errors.As(err, &parseErr):
		return ResultParseError
	default:
		return ResultRenderFail
	}
}

// IsLoadError reports whether err means the readings file was unusable.
func IsLoadError(err error) bool {
	switch Classify(err) {
	case ResultReadError, ResultParseError:
		return true
	}
	return false
}
