package services_test

import (
	"strings"
	"testing"

	"campus_tracker/internal/services"
)

func TestRoutePathRoundTrip(t *testing.T) {
	geojson := `{"type":"LineString","coordinates":[[80.5083,16.4649],[80.52,16.47]]}`

	wkb, err := services.PathToWKB(geojson)
	if err != nil {
		t.Fatalf("PathToWKB: %v", err)
	}
	if len(wkb) == 0 {
		t.Fatal("empty WKB for a valid LineString")
	}

	back, err := services.WKBToPath(wkb)
	if err != nil {
		t.Fatalf("WKBToPath: %v", err)
	}
	if !strings.Contains(back, "LineString") {
		t.Errorf("round-trip lost geometry type: %s", back)
	}
}

func TestRoutePathEmptyAndInvalid(t *testing.T) {
	if wkb, err := services.PathToWKB(""); err != nil || wkb != nil {
		t.Errorf("empty path: wkb=%v err=%v", wkb, err)
	}
	if _, err := services.PathToWKB("{not geojson"); err == nil {
		t.Error("expected error for malformed GeoJSON")
	}
	if path, err := services.WKBToPath(nil); err != nil || path != "" {
		t.Errorf("nil WKB: path=%q err=%v", path, err)
	}
}
