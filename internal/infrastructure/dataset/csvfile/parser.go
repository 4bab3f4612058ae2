package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/dreschagin/spacex-launch-dashboard/internal/domain/entity"
)

const utf8BOM = "\ufeff"

// ParseLaunchTable разбирает CSV с заголовком в таблицу запусков.
// Лишние колонки (индекс, Flight Number, Mission Outcome) игнорируются.
// Любая ошибка возвращается как *entity.LoadError с указанным source.
func ParseLaunchTable(r io.Reader, source string) (*entity.LaunchTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, entity.NewLoadError(source, entity.ErrEmptyTable)
		}
		return nil, entity.NewLoadError(source, fmt.Errorf("failed to read header: %w", err))
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, entity.NewLoadError(source, err)
	}

	records := make([]*entity.LaunchRecord, 0, 64)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, entity.NewLoadError(source, fmt.Errorf("failed to read row: %w", err))
		}

		line, _ := reader.FieldPos(0)
		record, err := parseRow(row, index)
		if err != nil {
			return nil, entity.NewLoadError(source, fmt.Errorf("line %d: %w", line, err))
		}
		records = append(records, record)
	}

	table, err := entity.NewLaunchTable(records)
	if err != nil {
		return nil, entity.NewLoadError(source, err)
	}

	return table, nil
}

// columnIndex ищет обязательные колонки по точному имени
func columnIndex(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, utf8BOM))
		if _, dup := positions[name]; !dup {
			positions[name] = i
		}
	}

	index := make(map[string]int, 4)
	missing := make([]string, 0)
	for _, column := range entity.RequiredColumns() {
		pos, ok := positions[column]
		if !ok {
			missing = append(missing, column)
			continue
		}
		index[column] = pos
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	return index, nil
}

func parseRow(row []string, index map[string]int) (*entity.LaunchRecord, error) {
	field := func(column string) string {
		pos := index[column]
		if pos >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[pos])
	}

	payload, err := strconv.ParseFloat(field(entity.ColumnPayloadMass), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %q value %q", entity.ColumnPayloadMass, field(entity.ColumnPayloadMass))
	}

	class, err := ParseClass(field(entity.ColumnClass))
	if err != nil {
		return nil, err
	}

	return entity.NewLaunchRecord(
		field(entity.ColumnLaunchSite),
		payload,
		field(entity.ColumnBoosterCategory),
		class,
	)
}

// ParseClass принимает "0", "1" и их float-запись ("1.0")
func ParseClass(raw string) (int, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || value != math.Trunc(value) {
		return 0, fmt.Errorf("invalid %q value %q", entity.ColumnClass, raw)
	}
	if value != 0 && value != 1 {
		return 0, fmt.Errorf("class must be 0 or 1, got %q", raw)
	}
	return int(value), nil
}
