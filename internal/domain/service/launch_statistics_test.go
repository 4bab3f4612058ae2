package service

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStatisticsBySite(t *testing.T) {
	stats := NewLaunchStatistics()
	got := stats.BySite(newTable(t, sampleRows))

	want := []SuccessRate{
		{Key: "CCAFS LC-40", Launches: 4, Successes: 2},
		{Key: "VAFB SLC-4E", Launches: 2, Successes: 1},
		{Key: "KSC LC-39A", Launches: 4, Successes: 3},
		{Key: "CCAFS SLC-40", Launches: 2, Successes: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rates mismatch (-want +got):\n%s", diff)
	}

	best, ok := stats.Best(got)
	if !ok || best.Key != "KSC LC-39A" {
		t.Fatalf("expected KSC LC-39A as best site, got %+v", best)
	}
}

func TestStatisticsByPayloadBand(t *testing.T) {
	stats := NewLaunchStatistics()
	table := newTable(t, []row{
		{"A", 100, "v1.0", 0},
		{"A", 2500, "FT", 1},
		{"B", 4100, "FT", 1},
		{"B", 4999, "B4", 0},
	})

	got, err := stats.ByPayloadBand(table, 2500)
	if err != nil {
		t.Fatalf("ByPayloadBand error = %v", err)
	}

	want := []SuccessRate{
		{Key: "0-2500", Launches: 1, Successes: 0},
		{Key: "2500-5000", Launches: 3, Successes: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("bands mismatch (-want +got):\n%s", diff)
	}
}

func TestStatisticsByPayloadBandRejectsWidth(t *testing.T) {
	stats := NewLaunchStatistics()
	if _, err := stats.ByPayloadBand(newTable(t, sampleRows), 0); err == nil {
		t.Fatalf("expected error for zero width")
	}
}

func TestStatisticsByPayloadBandRejectsTinyWidth(t *testing.T) {
	stats := NewLaunchStatistics()
	table := newTable(t, sampleRows)

	for _, width := range []float64{1e-300, 0.01, table.MaxPayload() / (MaxPayloadBands + 1)} {
		got, err := stats.ByPayloadBand(table, width)
		if err == nil || !strings.Contains(err.Error(), "too small") {
			t.Fatalf("width %g: expected too small error, got %d bands (err %v)", width, len(got), err)
		}
	}
}

func TestStatisticsByPayloadBandAtLimit(t *testing.T) {
	stats := NewLaunchStatistics()
	table := newTable(t, []row{
		{"A", 0, "v1.0", 0},
		{"A", 999, "FT", 1},
	})

	got, err := stats.ByPayloadBand(table, 1)
	if err != nil {
		t.Fatalf("ByPayloadBand error = %v", err)
	}
	if len(got) != MaxPayloadBands {
		t.Fatalf("expected %d bands, got %d", MaxPayloadBands, len(got))
	}
	if got[0].Launches != 1 || got[MaxPayloadBands-1].Successes != 1 {
		t.Fatalf("unexpected edge bands: %+v %+v", got[0], got[MaxPayloadBands-1])
	}
}

func TestStatisticsByBooster(t *testing.T) {
	got := NewLaunchStatistics().ByBooster(newTable(t, sampleRows))
	if len(got) != 5 || got[0].Key != "v1.0" || got[2].Key != "FT" {
		t.Fatalf("unexpected booster groups: %+v", got)
	}
	if got[2].Launches != 5 || got[2].Successes != 5 || got[2].Rate() != 1 {
		t.Fatalf("unexpected FT stats: %+v", got[2])
	}
}
