package service

import (
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/entity"
	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/valueobject"
)

// SiteOption - один пункт dropdown
type SiteOption struct {
	Label string
	Value string
}

// BuildSiteOptions возвращает "All Sites" и затем по одному пункту на площадку,
// в порядке первого появления, без дубликатов
func BuildSiteOptions(sites []string) []SiteOption {
	options := make([]SiteOption, 0, len(sites)+1)
	options = append(options, SiteOption{Label: valueobject.AllSitesLabel, Value: valueobject.AllSites})

	seen := make(map[string]struct{}, len(sites))
	for _, site := range sites {
		if _, ok := seen[site]; ok {
			continue
		}
		seen[site] = struct{}{}
		options = append(options, SiteOption{Label: site, Value: site})
	}

	return options
}

// SiteOptions строит пункты dropdown по таблице
func SiteOptions(table *entity.LaunchTable) []SiteOption {
	return BuildSiteOptions(table.Sites())
}
