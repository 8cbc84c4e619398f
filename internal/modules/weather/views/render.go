package views

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"

	"dht11-dashboard/internal/modules/weather/types"
)

// Placeholder replaces any value that has no reading behind it.
const Placeholder = "N/A"

//go:embed templates
var viewsFS embed.FS

var cardTmpl *template.Template

// loadTemplatesFromFS loads card templates from the given fs and dir.
// Used by LoadTemplates and by tests to simulate failure scenarios.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	cardTmpl, err = template.ParseFS(sub, "*.html", "partials/*.html")
	if err != nil {
		return err
	}
	return nil
}

// LoadTemplates loads embedded card templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// CardData is the view model of the weather card. Every field is display-ready.
type CardData struct {
	DeviceID    string
	Temperature string
	Humidity    string
	LastUpdated string
}

// NewCard picks the latest temperature and humidity from ds. The last-updated
// time is the temperature reading's timestamp; humidity's is never shown.
func NewCard(deviceID string, ds types.Dataset) CardData {
	card := CardData{
		DeviceID:    deviceID,
		Temperature: Placeholder,
		Humidity:    Placeholder,
		LastUpdated: Placeholder,
	}
	if t, ok := types.Latest(ds.Temperature); ok {
		card.Temperature = orPlaceholder(t.Value.Text, t.Value.Valid)
		card.LastUpdated = orPlaceholder(t.Timestamp, t.Timestamp != "")
	}
	if h, ok := types.Latest(ds.Humidity); ok {
		card.Humidity = orPlaceholder(h.Value.Text, h.Value.Valid)
	}
	return card
}

// Placeholders lists the card fields that fell back to Placeholder.
func (c CardData) Placeholders() []string {
	var out []string
	if c.Temperature == Placeholder {
		out = append(out, "temperature")
	}
	if c.Humidity == Placeholder {
		out = append(out, "humidity")
	}
	if c.LastUpdated == Placeholder {
		out = append(out, "last_updated")
	}
	return out
}

func orPlaceholder(s string, ok bool) string {
	if !ok {
		return Placeholder
	}
	return s
}

func RenderCard(w io.Writer, data CardData) error {
	if cardTmpl == nil {
		return errors.New("card template not loaded: call views.LoadTemplates during startup")
	}
	return cardTmpl.ExecuteTemplate(w, "card.html", data)
}
