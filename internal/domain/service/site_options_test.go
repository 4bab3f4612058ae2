package service

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSiteOptions(t *testing.T) {
	table := newTable(t, sampleRows)

	want := []SiteOption{
		{Label: "All Sites", Value: "ALL"},
		{Label: "CCAFS LC-40", Value: "CCAFS LC-40"},
		{Label: "VAFB SLC-4E", Value: "VAFB SLC-4E"},
		{Label: "KSC LC-39A", Value: "KSC LC-39A"},
		{Label: "CCAFS SLC-40", Value: "CCAFS SLC-40"},
	}
	if diff := cmp.Diff(want, SiteOptions(table)); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSiteOptionsDeduplicates(t *testing.T) {
	got := BuildSiteOptions([]string{"B", "A", "B"})
	want := []SiteOption{
		{Label: "All Sites", Value: "ALL"},
		{Label: "B", Value: "B"},
		{Label: "A", Value: "A"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSiteOptionsEmpty(t *testing.T) {
	got := BuildSiteOptions(nil)
	if len(got) != 1 || got[0].Value != "ALL" {
		t.Fatalf("expected only the ALL option, got %v", got)
	}
}
