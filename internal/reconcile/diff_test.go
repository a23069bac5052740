package reconcile

import (
	"reflect"
	"testing"

	"stitch/internal/tabular"
)

func diffSource(path string, keys ...string) *tabular.Source {
	src := &tabular.Source{Path: path, Header: []string{"Filename", "extra"}}
	for _, key := range keys {
		src.Rows = append(src.Rows, tabular.Row{"Filename": key, "extra": "x"})
	}
	return src
}

func TestDiffKeysPartitionsKeySets(t *testing.T) {
	first := diffSource("first.csv", "a.wav", "b.wav", "c.wav")
	second := diffSource("second.csv", "b.wav", "c.wav", "d.wav")

	report := DiffKeys(first, second)

	if report.FirstTotal != 3 || report.SecondTotal != 3 {
		t.Errorf("totals: %+v", report)
	}
	if report.Common != 2 {
		t.Errorf("common: got %d, want 2", report.Common)
	}
	if !reflect.DeepEqual(report.OnlyInFirst, []string{"a.wav"}) {
		t.Errorf("only in first: %v", report.OnlyInFirst)
	}
	if !reflect.DeepEqual(report.OnlyInSecond, []string{"d.wav"}) {
		t.Errorf("only in second: %v", report.OnlyInSecond)
	}
	if report.SetsEqual {
		t.Error("differing sets must not report SetsEqual")
	}
	if report.FirstDuplicates != nil || report.SecondDuplicates != nil {
		t.Error("duplicates are only reported when sets are equal")
	}
}

func TestDiffKeysListingsAreSorted(t *testing.T) {
	first := diffSource("first.csv", "zeta.wav", "alpha.wav", "mid.wav")
	second := diffSource("second.csv", "nothing.wav")

	report := DiffKeys(first, second)

	want := []string{"alpha.wav", "mid.wav", "zeta.wav"}
	if !reflect.DeepEqual(report.OnlyInFirst, want) {
		t.Errorf("listing order: got %v, want %v", report.OnlyInFirst, want)
	}
}

func TestDiffKeysReportsDuplicatesWhenSetsEqual(t *testing.T) {
	first := diffSource("first.csv", "b.wav", "a.wav", "a.wav", "a.wav")
	second := diffSource("second.csv", "a.wav", "b.wav", "b.wav")

	report := DiffKeys(first, second)

	if !report.SetsEqual {
		t.Fatal("identical key sets must report SetsEqual")
	}
	if report.FirstUnique != 2 || report.SecondUnique != 2 {
		t.Errorf("unique counts: %+v", report)
	}
	if !reflect.DeepEqual(report.FirstDuplicates, []KeyCount{{Key: "a.wav", Count: 3}}) {
		t.Errorf("first duplicates: %v", report.FirstDuplicates)
	}
	if !reflect.DeepEqual(report.SecondDuplicates, []KeyCount{{Key: "b.wav", Count: 2}}) {
		t.Errorf("second duplicates: %v", report.SecondDuplicates)
	}
}

func TestDiffKeysEmptySources(t *testing.T) {
	report := DiffKeys(&tabular.Source{Path: "a.csv"}, &tabular.Source{Path: "b.csv"})
	if !report.SetsEqual {
		t.Error("two empty key sets are equal")
	}
	if report.FirstTotal != 0 || report.Common != 0 {
		t.Errorf("empty report: %+v", report)
	}
	if len(report.FirstDuplicates) != 0 || len(report.SecondDuplicates) != 0 {
		t.Errorf("no duplicates expected: %+v", report)
	}
}
