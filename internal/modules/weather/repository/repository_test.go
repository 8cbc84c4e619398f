package repository

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const sampleDataset = `{
  "temperature": [
    {"value": 20.0, "timestamp": "2024-01-01 09:00:00"},
    {"value": 21.5, "timestamp": "2024-01-01T10:00:00"}
  ],
  "humidity": [
    {"value": 55, "timestamp": "2024-01-01T10:00:00"}
  ]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestNewRepository(t *testing.T) {
	repo := NewRepository(t.TempDir())
	if repo == nil {
		t.Fatal("NewRepository returned nil")
	}
}

func TestLoad_WithData(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.json", sampleDataset)
	repo := NewRepository(dir)

	ds, err := repo.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Temperature) != 2 {
		t.Fatalf("Load: got %d temperature readings, want 2", len(ds.Temperature))
	}
	if len(ds.Humidity) != 1 {
		t.Fatalf("Load: got %d humidity readings, want 1", len(ds.Humidity))
	}
	last := ds.Temperature[1]
	if last.Value.Text != "21.5" || last.Timestamp != "2024-01-01T10:00:00" {
		t.Errorf("last temperature: got value=%q ts=%q, want 21.5 at 2024-01-01T10:00:00", last.Value.Text, last.Timestamp)
	}
	if ds.Humidity[0].Value.Text != "55" {
		t.Errorf("humidity: got %q, want 55", ds.Humidity[0].Value.Text)
	}
}

func TestLoad_MissingSequences(t *testing.T) {
	dir := t.TempDir()
	repo := NewRepository(dir)

	for name, content := range map[string]string{
		"empty object":   `{}`,
		"null sequences": `{"temperature": null, "humidity": null}`,
		"empty arrays":   `{"temperature": [], "humidity": []}`,
	} {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, dir, "data.json", content)
			ds, err := repo.Load(path)
			if err != nil {
				t.Fatalf("Load(%s): %v", content, err)
			}
			if len(ds.Temperature) != 0 || len(ds.Humidity) != 0 {
				t.Errorf("Load(%s) = %+v; want empty sequences", content, ds)
			}
		})
	}
}

func TestLoad_ReadError(t *testing.T) {
	dir := t.TempDir()
	repo := NewRepository(dir)

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(dir, "nope.json")
		_, err := repo.Load(path)
		var readErr *ReadError
		if !errors.As(err, &readErr) {
			t.Fatalf("Load(missing) err = %v; want *ReadError", err)
		}
		if readErr.Path != path {
			t.Errorf("ReadError.Path = %q; want %q", readErr.Path, path)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Load(missing) err = %v; want wrapping os.ErrNotExist", err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		_, err := repo.Load(dir)
		var readErr *ReadError
		if !errors.As(err, &readErr) {
			t.Fatalf("Load(dir) err = %v; want *ReadError", err)
		}
	})
}

func TestLoad_ParseError(t *testing.T) {
	dir := t.TempDir()
	repo := NewRepository(dir)

	tests := []struct {
		name    string
		content string
	}{
		{name: "empty file", content: ""},
		{name: "malformed", content: `{"temperature": [`},
		{name: "null document", content: `null`},
		{name: "array document", content: `[1, 2]`},
		{name: "number document", content: `42`},
		{name: "sequence not an array", content: `{"temperature": {"value": 1}}`},
		{name: "reading not an object", content: `{"temperature": [1, 2]}`},
		{name: "value is a bool", content: `{"temperature": [{"value": true, "timestamp": "x"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "data.json", tt.content)
			_, err := repo.Load(path)
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Load(%q) err = %v; want *ParseError", tt.content, err)
			}
			var readErr *ReadError
			if errors.As(err, &readErr) {
				t.Errorf("Load(%q) err is also a *ReadError", tt.content)
			}
		})
	}
}

func TestLoad_ReadsFreshEachCall(t *testing.T) {
	dir := t.TempDir()
	repo := NewRepository(dir)
	path := writeFile(t, dir, "data.json", `{"temperature":[{"value":1,"timestamp":"a"}]}`)

	if _, err := repo.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	writeFile(t, dir, "data.json", `{"temperature":[{"value":1,"timestamp":"a"},{"value":2,"timestamp":"b"}]}`)
	ds, err := repo.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Temperature) != 2 {
		t.Errorf("second Load: got %d readings, want 2", len(ds.Temperature))
	}
}

func TestDevicePath(t *testing.T) {
	dir := t.TempDir()
	repo := NewRepository(dir)

	got, err := repo.DevicePath("ESP32_A1B2C3D4E5F6")
	if err != nil {
		t.Fatalf("DevicePath: %v", err)
	}
	if want := filepath.Join(dir, "ESP32_A1B2C3D4E5F6.json"); got != want {
		t.Errorf("DevicePath = %q; want %q", got, want)
	}

	for _, id := range []string{"", "..", "../etc/passwd", "a/b", "a.json", "dev ice"} {
		if _, err := repo.DevicePath(id); !errors.Is(err, ErrInvalidDeviceID) {
			t.Errorf("DevicePath(%q) err = %v; want ErrInvalidDeviceID", id, err)
		}
	}
}

func TestListDevices(t *testing.T) {
	t.Run("missing dir is empty", func(t *testing.T) {
		repo := NewRepository(filepath.Join(t.TempDir(), "absent"))
		ids, err := repo.ListDevices()
		if err != nil {
			t.Fatalf("ListDevices: %v", err)
		}
		if len(ids) != 0 {
			t.Errorf("ListDevices = %v; want empty", ids)
		}
	})

	t.Run("json files only, sorted", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "ESP32_BBBBBBBBBBBB.json", `{}`)
		writeFile(t, dir, "ESP32_AAAAAAAAAAAA.json", `{}`)
		writeFile(t, dir, "notes.txt", "x")
		writeFile(t, dir, "bad name.json", `{}`)
		if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		repo := NewRepository(dir)

		ids, err := repo.ListDevices()
		if err != nil {
			t.Fatalf("ListDevices: %v", err)
		}
		want := []string{"ESP32_AAAAAAAAAAAA", "ESP32_BBBBBBBBBBBB"}
		if !reflect.DeepEqual(ids, want) {
			t.Errorf("ListDevices = %v; want %v", ids, want)
		}
	})
}

var _ WeatherRepository = (*repositoryImpl)(nil)
