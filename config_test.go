package lambert

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

func writeScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("could not write scenario: %s", err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	path := writeScenario(t, "leo.toml", `
[body]
name = "Earth"

[transfer]
r1 = [7000.0, 0.0, 0.0]
r2 = [0.0, 7000.0, 0.0]
tof = "1h"
direction = "retrograde"

[propagation]
steps = 500
`)
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if !sc.Body.Equals(Earth) {
		t.Fatalf("body is %s", sc.Body)
	}
	if !mat64.Equal(sc.R1, mat64.NewVector(3, []float64{7000, 0, 0})) {
		t.Fatal("incorrect r1")
	}
	if !mat64.Equal(sc.R2, mat64.NewVector(3, []float64{0, 7000, 0})) {
		t.Fatal("incorrect r2")
	}
	if sc.Δt != time.Hour {
		t.Fatalf("tof=%s", sc.Δt)
	}
	if sc.Direction != Retrograde {
		t.Fatalf("direction=%s", sc.Direction)
	}
	if sc.Steps != 500 {
		t.Fatalf("steps=%d", sc.Steps)
	}
	if sc.Name != "leo" {
		t.Fatalf("name=%s", sc.Name)
	}
}

func TestLoadScenarioEpochs(t *testing.T) {
	// Two days between the departure and arrival Julian dates.
	path := writeScenario(t, "epochs.toml", `
[transfer]
r1 = [7000, 0, 0]
r2 = [0, 42000, 0]
departure = 2455450.0
arrival = 2455452.0
`)
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if !floats.EqualWithinAbs(sc.Δt.Seconds(), 2*86400, 1) {
		t.Fatalf("tof=%s expected ~48h", sc.Δt)
	}
	// Defaults kick in for the unset sections.
	if !sc.Body.Equals(Earth) || sc.Direction != Prograde || sc.Steps != DefaultSteps {
		t.Fatal("defaults were not applied")
	}
}

func TestLoadScenarioErrors(t *testing.T) {
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("missing scenario file should fail")
	}
	badVec := writeScenario(t, "badvec.toml", `
[transfer]
r1 = [7000, 0]
r2 = [0, 42000, 0]
tof = "1h"
`)
	if _, err := LoadScenario(badVec); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("2 component vector should be rejected, got %v", err)
	}
	noTof := writeScenario(t, "notof.toml", `
[transfer]
r1 = [7000, 0, 0]
r2 = [0, 42000, 0]
`)
	if _, err := LoadScenario(noTof); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing tof should be rejected, got %v", err)
	}
	badDir := writeScenario(t, "baddir.toml", `
[transfer]
r1 = [7000, 0, 0]
r2 = [0, 42000, 0]
tof = "1h"
direction = "sideways"
`)
	if _, err := LoadScenario(badDir); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown direction should be rejected, got %v", err)
	}
	badBody := writeScenario(t, "badbody.toml", `
[body]
name = "Krypton"

[transfer]
r1 = [7000, 0, 0]
r2 = [0, 42000, 0]
tof = "1h"
`)
	if _, err := LoadScenario(badBody); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown body should be rejected, got %v", err)
	}
}
