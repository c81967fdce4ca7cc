package lambert

import (
	"errors"
	"testing"
)

func TestCelestialObject(t *testing.T) {
	for _, name := range []string{"Sun", "earth", "Moon", "MARS"} {
		body, err := CelestialObjectFromString(name)
		if err != nil {
			t.Fatalf("could not load %s: %s", name, err)
		}
		if body.GM() <= 0 {
			t.Fatalf("%s has a non positive μ", body)
		}
		if !body.Equals(body) {
			t.Fatalf("%s is not equal to itself", body)
		}
	}
	if !Earth.Equals(Earth) || Earth.Equals(Mars) {
		t.Fatal("Equals is broken")
	}
	if Earth.String() != "Earth body" {
		t.Fatalf("stringer returned %s", Earth.String())
	}
	if _, err := CelestialObjectFromString("Krypton"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown body should be rejected, got %v", err)
	}
}
