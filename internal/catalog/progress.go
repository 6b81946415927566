package catalog

// Progress aggregates per-project completion counters for dashboards.
type Progress struct {
	// TranslateTotal is the number of entry × language pairs.
	TranslateTotal int
	// TranslateFinish is the number of pairs holding a non-empty value.
	TranslateFinish int
	// KeyTotal is the number of entries.
	KeyTotal int
	// KeyFinish is the number of entries populated for every language.
	KeyFinish int
	// Percent is TranslateFinish over TranslateTotal as a percentage, zero
	// when the project has no pairs.
	Percent float64
}

// Measure computes completion counters for a project's entries. Pure; no
// side effects and no errors beyond the zero-division guard.
func Measure(languages []Language, entries []*Entry) Progress {
	progress := Progress{
		TranslateTotal: len(entries) * len(languages),
		KeyTotal:       len(entries),
	}

	for _, entry := range entries {
		finished := true
		for _, language := range languages {
			if entry.Value(language.Code) == "" {
				finished = false
			} else {
				progress.TranslateFinish++
			}
		}
		if finished && len(languages) > 0 {
			progress.KeyFinish++
		}
	}

	if progress.TranslateTotal > 0 {
		progress.Percent = float64(progress.TranslateFinish) / float64(progress.TranslateTotal) * 100
	}
	return progress
}
