package preset

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

type nopPersistence struct{}

func (nopPersistence) Load(context.Context) ([]byte, error) { return nil, nil }
func (nopPersistence) Save(context.Context, []byte) error   { return nil }

func newTestCatalog(t *testing.T) (*Catalog, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	return NewCatalog(t.TempDir(), CatalogOptions{Logger: log.New(&logs, "", 0)}), &logs
}

func samplePreset(id, name string) Preset {
	return Preset{
		ID:   id,
		Name: name,
		Tasks: []Template{
			{ID: "1", Text: "stretch", DueHoursOffset: HoursPtr(1)},
			{ID: "2", Text: "journal", Priority: "low", Checklist: []string{"gratitude", "plan"}},
		},
		CreatedAt: time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC),
	}
}

func TestCatalog_SaveAndLoadBothFormats(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			catalog, _ := newTestCatalog(t)
			want := samplePreset("morning", "Morning routine")

			path, err := catalog.Save(want, format)
			if err != nil {
				t.Fatalf("save: %v", err)
			}
			if filepath.Base(path) != "morning"+format.Ext() {
				t.Fatalf("unexpected path %q", path)
			}

			got, err := catalog.Load("morning")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("preset mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCatalog_SaveReplacesOtherFormat(t *testing.T) {
	catalog, _ := newTestCatalog(t)
	p := samplePreset("evening", "Evening")

	if _, err := catalog.Save(p, FormatTOML); err != nil {
		t.Fatalf("save toml: %v", err)
	}
	if _, err := catalog.Save(p, FormatYAML); err != nil {
		t.Fatalf("save yaml: %v", err)
	}

	if _, err := os.Stat(filepath.Join(catalog.Dir(), "evening.toml")); !os.IsNotExist(err) {
		t.Fatalf("expected toml file removed, stat err = %v", err)
	}
	presets, err := catalog.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(presets) != 1 {
		t.Fatalf("expected 1 preset, got %d", len(presets))
	}
}

func TestCatalog_SaveRejectsInvalid(t *testing.T) {
	catalog, _ := newTestCatalog(t)
	tests := []struct {
		name  string
		p     Preset
		field string
	}{
		{name: "bad id", p: Preset{ID: "Bad Id", Name: "x", Tasks: []Template{{Text: "a"}}}, field: "Preset.ID"},
		{name: "blank name", p: Preset{ID: "x", Name: "  ", Tasks: []Template{{Text: "a"}}}, field: "Preset.Name"},
		{name: "no tasks", p: Preset{ID: "x", Name: "x"}, field: "Preset.Tasks"},
		{name: "blank task", p: Preset{ID: "x", Name: "x", Tasks: []Template{{Text: " "}}}, field: "Preset.Tasks[0].Text"},
		{name: "bad priority", p: Preset{ID: "x", Name: "x", Tasks: []Template{{Text: "a", Priority: "urgent"}}}, field: "Preset.Tasks[0].Priority"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Save(tt.p, FormatTOML)
			if !errors.Is(err, ErrInvalidPreset) {
				t.Fatalf("expected ErrInvalidPreset, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Fatalf("expected error to mention %s, got %v", tt.field, err)
			}
		})
	}
}

func TestCatalog_LoadByNameAndPrefix(t *testing.T) {
	catalog, _ := newTestCatalog(t)
	for _, p := range []Preset{samplePreset("morning", "Morning routine"), samplePreset("moving", "Moving day")} {
		if _, err := catalog.Save(p, FormatTOML); err != nil {
			t.Fatalf("save %s: %v", p.ID, err)
		}
	}

	if got, err := catalog.Load("moving DAY"); err != nil || got.ID != "moving" {
		t.Fatalf("load by name = %v, %v", got.ID, err)
	}
	if got, err := catalog.Load("mor"); err != nil || got.ID != "morning" {
		t.Fatalf("load by prefix = %v, %v", got.ID, err)
	}
	if _, err := catalog.Load("mo"); !errors.Is(err, ErrAmbiguousPreset) {
		t.Fatalf("expected ErrAmbiguousPreset, got %v", err)
	}
	if _, err := catalog.Load("nope"); !errors.Is(err, ErrPresetNotFound) {
		t.Fatalf("expected ErrPresetNotFound, got %v", err)
	}
}

func TestCatalog_ListSkipsBrokenFiles(t *testing.T) {
	catalog, logs := newTestCatalog(t)
	if _, err := catalog.Save(samplePreset("good", "Good"), FormatYAML); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := os.WriteFile(filepath.Join(catalog.Dir(), "broken.toml"), []byte("name = ["), 0o644); err != nil {
		t.Fatalf("write broken: %v", err)
	}
	if err := os.WriteFile(filepath.Join(catalog.Dir(), "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}

	presets, err := catalog.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(presets) != 1 || presets[0].ID != "good" {
		t.Fatalf("unexpected presets %+v", presets)
	}
	if !strings.Contains(logs.String(), "broken.toml") {
		t.Fatalf("expected broken file to be logged, got %q", logs.String())
	}
}

func TestCatalog_IDDefaultsToFileName(t *testing.T) {
	catalog, _ := newTestCatalog(t)
	content := "name = \"Weekly\"\n\n[[tasks]]\ntext = \"review\"\ndue-hours-offset = 24.0\n"
	if err := os.WriteFile(filepath.Join(catalog.Dir(), "weekly.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	p, err := catalog.Load("weekly")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.ID != "weekly" || len(p.Tasks) != 1 || *p.Tasks[0].DueHoursOffset != 24 {
		t.Fatalf("unexpected preset %+v", p)
	}
}

func TestCatalog_Delete(t *testing.T) {
	catalog, _ := newTestCatalog(t)
	if _, err := catalog.Save(samplePreset("gone", "Gone"), FormatTOML); err != nil {
		t.Fatalf("save: %v", err)
	}

	deleted, err := catalog.Delete("gone")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != "gone" {
		t.Fatalf("unexpected deleted preset %q", deleted.ID)
	}
	if _, err := catalog.Load("gone"); !errors.Is(err, ErrPresetNotFound) {
		t.Fatalf("expected ErrPresetNotFound after delete, got %v", err)
	}
}

func TestCatalog_MissingDirIsEmpty(t *testing.T) {
	catalog := NewCatalog(filepath.Join(t.TempDir(), "missing"), CatalogOptions{})
	presets, err := catalog.List()
	if err != nil || len(presets) != 0 {
		t.Fatalf("List() = %v, %v", presets, err)
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Morning Routine": "morning-routine",
		"  Gym / Day 2 ":  "gym-day-2",
		"already-ok":      "already-ok",
	}
	for in, want := range tests {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"toml", ".yaml", "YML"} {
		if _, err := ParseFormat(in); err != nil {
			t.Errorf("ParseFormat(%q): %v", in, err)
		}
	}
	if _, err := ParseFormat("json"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestCatalog_InMemoryFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	var logs bytes.Buffer
	catalog := NewCatalog("/presets", CatalogOptions{Logger: log.New(&logs, "", 0), Fs: fs})

	want := samplePreset("morning", "Morning routine")
	path, err := catalog.Save(want, FormatTOML)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if path != filepath.Join("/presets", "morning.toml") {
		t.Fatalf("unexpected path %q", path)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected nothing written to the OS filesystem, stat err %v", err)
	}

	if _, err := catalog.Save(want, FormatYAML); err != nil {
		t.Fatalf("save yaml: %v", err)
	}
	if exists, _ := afero.Exists(fs, "/presets/morning.toml"); exists {
		t.Fatal("expected toml file to be replaced by yaml")
	}

	if err := afero.WriteFile(fs, "/presets/broken.toml", []byte("name = ["), 0o644); err != nil {
		t.Fatalf("write broken file: %v", err)
	}

	presets, err := catalog.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if diff := cmp.Diff([]Preset{want}, presets); diff != "" {
		t.Fatalf("unexpected presets (-want +got):\n%s", diff)
	}
	if !strings.Contains(logs.String(), "broken.toml") {
		t.Fatalf("expected broken file to be logged, got %q", logs.String())
	}

	deleted, err := catalog.Delete("morning")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.ID != "morning" {
		t.Fatalf("unexpected deleted preset %+v", deleted)
	}
	if _, err := catalog.Load("morning"); !errors.Is(err, ErrPresetNotFound) {
		t.Fatalf("expected ErrPresetNotFound after delete, got %v", err)
	}
}
