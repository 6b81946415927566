package catalog

import (
	"testing"

	"github.com/google/uuid"
)

func TestMeasureCountsPairsAndKeys(t *testing.T) {
	entries := []*Entry{
		{ID: uuid.New(), Key: "a", Values: map[string]string{"en": "A", "zh": "甲", "ja": "エー"}},
		{ID: uuid.New(), Key: "b", Values: map[string]string{"en": "B", "zh": "", "ja": ""}},
	}

	progress := Measure(testLanguages(), entries)

	if progress.TranslateTotal != 6 {
		t.Fatalf("expected 6 pairs, got %d", progress.TranslateTotal)
	}
	if progress.TranslateFinish != 4 {
		t.Fatalf("expected 4 finished pairs, got %d", progress.TranslateFinish)
	}
	if progress.KeyTotal != 2 || progress.KeyFinish != 1 {
		t.Fatalf("expected 2 keys / 1 finished, got %d / %d", progress.KeyTotal, progress.KeyFinish)
	}
	if want := float64(4) / float64(6) * 100; progress.Percent != want {
		t.Fatalf("expected percent %v, got %v", want, progress.Percent)
	}
}

func TestMeasureEmptyProject(t *testing.T) {
	progress := Measure(testLanguages(), nil)
	if progress.TranslateTotal != 0 || progress.Percent != 0 {
		t.Fatalf("expected zeroed progress, got %+v", progress)
	}
}

func TestMeasureTreatsAbsentKeysAsEmpty(t *testing.T) {
	entries := []*Entry{
		{ID: uuid.New(), Key: "a", Values: map[string]string{"en": "A"}},
	}
	progress := Measure(testLanguages(), entries)
	if progress.TranslateFinish != 1 || progress.KeyFinish != 0 {
		t.Fatalf("absent language keys should count as untranslated, got %+v", progress)
	}
}
