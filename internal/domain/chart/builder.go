package chart

// Default scatter encodings.
const (
	DefaultScatterX     = "Payload Mass (kg)"
	DefaultScatterY     = "class"
	DefaultScatterColor = "Booster Version Category"
)

// BuildPie groups rows by namesField and sums valuesField per group, keeping
// the order in which names first appear.
func BuildPie(data Frame, valuesField, namesField, title string) (Spec, error) {
	enc := Encoding{Values: valuesField, Names: namesField}
	if err := requireColumns(data, valuesField, namesField); err != nil {
		return Spec{}, err
	}
	if len(data) == 0 {
		return EmptySpec(KindPie, title, enc), nil
	}

	index := make(map[string]int)
	slices := make([]Slice, 0)
	for _, row := range data {
		name := label(row[namesField])
		value, _ := numeric(row[valuesField])

		i, ok := index[name]
		if !ok {
			i = len(slices)
			index[name] = i
			slices = append(slices, Slice{Label: name})
		}
		slices[i].Value += value
		slices[i].Rows += weight(row)
	}

	return Spec{
		Kind:     KindPie,
		Title:    title,
		Encoding: enc,
		Slices:   slices,
	}, nil
}

// BuildScatter plots xField against yField with one series per colorField
// value, in first-appearance order. Rows with non-numeric x or y are skipped.
func BuildScatter(data Frame, xField, yField, colorField, title string) (Spec, error) {
	enc := Encoding{X: xField, Y: yField, Color: colorField}
	if err := requireColumns(data, xField, yField, colorField); err != nil {
		return Spec{}, err
	}
	if len(data) == 0 {
		return EmptySpec(KindScatter, title, enc), nil
	}

	index := make(map[string]int)
	series := make([]Series, 0)
	for _, row := range data {
		x, okX := numeric(row[xField])
		y, okY := numeric(row[yField])
		if !okX || !okY {
			continue
		}

		name := label(row[colorField])
		i, ok := index[name]
		if !ok {
			i = len(series)
			index[name] = i
			series = append(series, Series{Name: name})
		}
		series[i].Points = append(series[i].Points, Point{X: x, Y: y})
	}

	if len(series) == 0 {
		return EmptySpec(KindScatter, title, enc), nil
	}

	return Spec{
		Kind:     KindScatter,
		Title:    title,
		Encoding: enc,
		Series:   series,
	}, nil
}
