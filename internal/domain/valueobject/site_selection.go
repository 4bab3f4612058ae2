package valueobject

import "strings"

// AllSites is the sentinel dropdown value meaning "no site filter".
const AllSites = "ALL"

// AllSitesLabel is the dropdown label of the sentinel option.
const AllSitesLabel = "All Sites"

// SiteSelection is the dropdown value: a launch site name or AllSites.
type SiteSelection string

// NewSiteSelection normalizes raw input. Empty input means AllSites.
func NewSiteSelection(raw string) SiteSelection {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return SiteSelection(AllSites)
	}
	return SiteSelection(trimmed)
}

// IsAll reports whether the selection is the AllSites sentinel.
func (s SiteSelection) IsAll() bool {
	return string(s) == AllSites
}

func (s SiteSelection) String() string {
	return string(s)
}

// Label returns the human-readable name used in chart titles.
func (s SiteSelection) Label() string {
	if s.IsAll() {
		return AllSitesLabel
	}
	return string(s)
}
