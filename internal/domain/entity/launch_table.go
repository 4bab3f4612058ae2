package entity

import "github.com/dreschagin/spacex-launch-dashboard/internal/domain/valueobject"

// LaunchTable - набор данных о запусках только для чтения.
// Строится один раз при старте и разделяется всеми обработчиками без блокировок
type LaunchTable struct {
	records    []*LaunchRecord
	sites      []string
	siteIndex  map[string]struct{}
	minPayload float64
	maxPayload float64
}

// NewLaunchTable строит таблицу и производные значения. Порядок записей сохраняется
func NewLaunchTable(records []*LaunchRecord) (*LaunchTable, error) {
	if len(records) == 0 {
		return nil, ErrEmptyTable
	}

	t := &LaunchTable{
		records:    make([]*LaunchRecord, len(records)),
		sites:      make([]string, 0),
		siteIndex:  make(map[string]struct{}),
		minPayload: records[0].PayloadMass(),
		maxPayload: records[0].PayloadMass(),
	}
	copy(t.records, records)

	for _, r := range t.records {
		if _, seen := t.siteIndex[r.LaunchSite()]; !seen {
			t.siteIndex[r.LaunchSite()] = struct{}{}
			t.sites = append(t.sites, r.LaunchSite())
		}
		if r.PayloadMass() < t.minPayload {
			t.minPayload = r.PayloadMass()
		}
		if r.PayloadMass() > t.maxPayload {
			t.maxPayload = r.PayloadMass()
		}
	}

	return t, nil
}

// Records возвращает копию среза записей. Сами записи иммутабельны
func (t *LaunchTable) Records() []*LaunchRecord {
	out := make([]*LaunchRecord, len(t.records))
	copy(out, t.records)
	return out
}

// Len возвращает количество записей
func (t *LaunchTable) Len() int {
	return len(t.records)
}

// Sites возвращает уникальные площадки в порядке первого появления
func (t *LaunchTable) Sites() []string {
	out := make([]string, len(t.sites))
	copy(out, t.sites)
	return out
}

// HasSite проверяет, есть ли в таблице запуски с площадки site
func (t *LaunchTable) HasSite(site string) bool {
	_, ok := t.siteIndex[site]
	return ok
}

// MinPayload возвращает наименьшую массу полезной нагрузки в таблице
func (t *LaunchTable) MinPayload() float64 {
	return t.minPayload
}

// MaxPayload возвращает наибольшую массу полезной нагрузки в таблице
func (t *LaunchTable) MaxPayload() float64 {
	return t.maxPayload
}

// FullPayloadRange - значение слайдера по умолчанию: [наименьшая масса, наибольшая масса]
func (t *LaunchTable) FullPayloadRange() valueobject.PayloadRange {
	r, _ := valueobject.NewPayloadRange(t.minPayload, t.maxPayload)
	return r
}
