package cmd

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lmancini/MTG-Proxyshop/internal/layout"
	"github.com/lmancini/MTG-Proxyshop/internal/templates"
)

func init() {
	templates.Register("default", newLayoutDump)
}

// layoutDump is the built-in template: it writes the resolved layout
// object as JSON next to the art file. Real rendering templates come
// from plugins; this one exists so a bare install still produces an
// inspectable artifact per card.
type layoutDump struct {
	data *layout.Data
	file string
}

func newLayoutDump(data *layout.Data, file string) templates.Template {
	return &layoutDump{data: data, file: file}
}

func (t *layoutDump) Execute() error {
	out := struct {
		Name            string `json:"name"`
		Class           string `json:"class"`
		Artist          string `json:"artist,omitempty"`
		Set             string `json:"set,omitempty"`
		CollectorNumber string `json:"collector_number,omitempty"`
		CardCount       string `json:"card_count,omitempty"`
		Creator         string `json:"creator,omitempty"`
	}{
		Name:            t.data.Name,
		Class:           t.data.Class,
		Artist:          t.data.Artist,
		Set:             t.data.Set,
		CollectorNumber: t.data.CollectorNumber,
		CardCount:       t.data.CardCount,
		Creator:         t.data.Creator,
	}

	payload, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	path := strings.TrimSuffix(t.file, filepath.Ext(t.file)) + ".layout.json"
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return err
	}
	slog.Debug("Wrote layout dump", "path", path)
	return nil
}
