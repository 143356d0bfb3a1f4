package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/raysim/internal/config"
	"github.com/san-kum/raysim/internal/sim"
	"github.com/san-kum/raysim/internal/telemetry"
)

func runScene(t *testing.T) (*config.Config, *sim.Result, *telemetry.Recorder) {
	t.Helper()
	cfg := config.GetPreset("mirrors")
	cfg.Duration = 0.1

	w, err := cfg.BuildWorld(nil)
	if err != nil {
		t.Fatal(err)
	}
	rec := telemetry.NewRecorder(telemetry.DefaultCapacity)
	s := sim.New(w, nil)
	s.AddObserver(rec)

	result, err := s.Run(t.Context(), sim.Config{Dt: cfg.Dt, Duration: cfg.Duration})
	if err != nil {
		t.Fatal(err)
	}
	return cfg, result, rec
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, result, rec := runScene(t)
	runID, err := st.Save(cfg, result, rec)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scene != "mirrors" {
		t.Errorf("expected scene 'mirrors', got '%s'", meta.Scene)
	}
	if meta.Steps != 10 || meta.Survivors != 1 {
		t.Errorf("steps=%d survivors=%d", meta.Steps, meta.Survivors)
	}

	back, err := st.LoadConfig(runID)
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if back.Duration != 0.1 || len(back.Mirrors) != 1 {
		t.Errorf("config not preserved: %+v", back)
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("entities = %d, want world and particle", len(series))
	}
	for id, s := range series {
		if len(s["t"]) != 11 {
			t.Errorf("entity %v has %d samples, want 11", id, len(s["t"]))
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	cfg, result, _ := runScene(t)
	first, err := st.Save(cfg, result, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.Save(cfg, result, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := os.Mkdir(filepath.Join(st.baseDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != first {
		t.Error("runs must be listed oldest first")
	}

	if _, err := st.LoadSeries(first); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("run saved without telemetry: got %v", err)
	}
}

func TestStoreMissingRun(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))

	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("missing base dir must list nothing, got %v %v", runs, err)
	}
	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadConfig("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, result, rec := runScene(t)
	runID, err := st.Save(cfg, result, rec)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{metadataFile, configFile, telemetryFile} {
		if _, err := os.Stat(filepath.Join(st.baseDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}
