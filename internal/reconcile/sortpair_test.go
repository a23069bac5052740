package reconcile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"stitch/internal/tabular"
	"stitch/internal/testsupport"
)

func TestSortPairWritesSortedCopies(t *testing.T) {
	dir := t.TempDir()
	firstPath := filepath.Join(dir, "one.csv")
	secondPath := filepath.Join(dir, "two.csv")
	testsupport.WriteCSV(t, firstPath,
		[]string{"Filename", "transcript"},
		[]string{"b.wav", "2"},
		[]string{"a.wav", "1"},
		[]string{"c.wav", "3"},
	)
	testsupport.WriteCSV(t, secondPath,
		[]string{"Filename", "duration_sec"},
		[]string{"c.wav", "3.0"},
		[]string{"b.wav", "2.0"},
		[]string{"a.wav", "1.0"},
	)

	first, err := tabular.Load(firstPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	second, err := tabular.Load(secondPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	stats, err := SortPair(first, second, "Filename", "_ordered", nil)
	if err != nil {
		t.Fatalf("SortPair failed: %v", err)
	}

	if stats.First.OutputPath != filepath.Join(dir, "one_ordered.csv") {
		t.Errorf("derived output path: got %s", stats.First.OutputPath)
	}
	if !stats.KeysMatch {
		t.Errorf("identical key sets in the same sorted order should match: %+v", stats)
	}

	records := testsupport.ReadCSV(t, stats.First.OutputPath)
	if len(records) != 4 {
		t.Fatalf("sorted output record count: got %d", len(records))
	}
	for i := 2; i < len(records); i++ {
		if records[i][0] < records[i-1][0] {
			t.Errorf("key column must be non-decreasing: %v before %v", records[i-1][0], records[i][0])
		}
	}

	// Same row multiset as the input.
	seen := map[string]bool{}
	for _, record := range records[1:] {
		seen[record[0]+"|"+record[1]] = true
	}
	for _, want := range []string{"a.wav|1", "b.wav|2", "c.wav|3"} {
		if !seen[want] {
			t.Errorf("row %q lost during sort", want)
		}
	}
}

func TestSortPairIsStableForDuplicateKeys(t *testing.T) {
	first := &tabular.Source{
		Path:   filepath.Join(t.TempDir(), "dup.csv"),
		Header: []string{"Filename", "n"},
		Rows: []tabular.Row{
			{"Filename": "a.wav", "n": "1"},
			{"Filename": "a.wav", "n": "2"},
		},
	}
	second := &tabular.Source{
		Path:   filepath.Join(t.TempDir(), "other.csv"),
		Header: []string{"Filename"},
		Rows:   []tabular.Row{{"Filename": "a.wav"}, {"Filename": "a.wav"}},
	}

	stats, err := SortPair(first, second, "Filename", "_ordered", nil)
	if err != nil {
		t.Fatalf("SortPair failed: %v", err)
	}
	records := testsupport.ReadCSV(t, stats.First.OutputPath)
	if records[1][1] != "1" || records[2][1] != "2" {
		t.Errorf("equal keys must keep input order: %v", records)
	}
}

func TestSortPairReportsDifferingKeySets(t *testing.T) {
	dir := t.TempDir()
	first := &tabular.Source{
		Path:   filepath.Join(dir, "a.csv"),
		Header: []string{"Filename"},
		Rows:   []tabular.Row{{"Filename": "only-a"}, {"Filename": "both"}},
	}
	second := &tabular.Source{
		Path:   filepath.Join(dir, "b.csv"),
		Header: []string{"Filename"},
		Rows:   []tabular.Row{{"Filename": "both"}, {"Filename": "only-b"}},
	}

	stats, err := SortPair(first, second, "Filename", "_ordered", nil)
	if err != nil {
		t.Fatalf("SortPair failed: %v", err)
	}
	if stats.KeysMatch {
		t.Error("differing key sets must not match")
	}
	if stats.OnlyInFirst != 1 || stats.OnlyInSecond != 1 {
		t.Errorf("symmetric difference sizes: %+v", stats)
	}
}

func TestSortPairChecksColumnsBeforeWriting(t *testing.T) {
	dir := t.TempDir()
	first := &tabular.Source{
		Path:   filepath.Join(dir, "good.csv"),
		Header: []string{"Filename"},
		Rows:   []tabular.Row{{"Filename": "a"}},
	}
	second := &tabular.Source{
		Path:   filepath.Join(dir, "bad.csv"),
		Header: []string{"other"},
	}

	_, err := SortPair(first, second, "Filename", "_ordered", nil)
	var missing *tabular.MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnError, got %v", err)
	}
	if missing.Path != second.Path {
		t.Errorf("error should name the offending file, got %s", missing.Path)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "good_ordered.csv")); !os.IsNotExist(statErr) {
		t.Error("no output may be written when either column check fails")
	}
}
