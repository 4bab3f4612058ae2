package service

import (
	"testing"

	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/entity"
)

type row struct {
	site    string
	payload float64
	booster string
	class   int
}

// sampleRows - небольшой срез реального датасета
var sampleRows = []row{
	{"CCAFS LC-40", 0, "v1.0", 0},
	{"CCAFS LC-40", 525, "v1.0", 0},
	{"CCAFS LC-40", 677, "v1.0", 1},
	{"VAFB SLC-4E", 500, "v1.1", 0},
	{"CCAFS LC-40", 3170, "v1.1", 1},
	{"KSC LC-39A", 2490, "FT", 1},
	{"KSC LC-39A", 5300, "FT", 1},
	{"CCAFS SLC-40", 3600, "FT", 1},
	{"KSC LC-39A", 5300, "FT", 1},
	{"VAFB SLC-4E", 9600, "FT", 1},
	{"CCAFS SLC-40", 6460, "B4", 0},
	{"KSC LC-39A", 3310, "B5", 0},
}

func newTable(t *testing.T, rows []row) *entity.LaunchTable {
	t.Helper()

	records := make([]*entity.LaunchRecord, 0, len(rows))
	for _, r := range rows {
		rec, err := entity.NewLaunchRecord(r.site, r.payload, r.booster, r.class)
		if err != nil {
			t.Fatalf("NewLaunchRecord(%+v) error = %v", r, err)
		}
		records = append(records, rec)
	}

	table, err := entity.NewLaunchTable(records)
	if err != nil {
		t.Fatalf("NewLaunchTable error = %v", err)
	}
	return table
}
