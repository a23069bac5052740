package reconcile

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"stitch/internal/tabular"
)

// KeyCount pairs a key with its occurrence count within one file.
type KeyCount struct {
	Key   string
	Count int
}

// DiffReport is a pure in-memory comparison of the key sets of two
// sources; nothing is written to disk.
type DiffReport struct {
	FirstPath  string
	SecondPath string

	FirstTotal   int
	SecondTotal  int
	FirstUnique  int
	SecondUnique int
	Common       int

	OnlyInFirst  []string
	OnlyInSecond []string

	// SetsEqual is true when both files contain exactly the same key
	// set; only then are per-file duplicates reported.
	SetsEqual        bool
	FirstDuplicates  []KeyCount
	SecondDuplicates []KeyCount
}

// DiffKeys compares the key sets of two sources, keyed by each source's
// first column. Listings are sorted with a language-neutral collator so
// report order is stable across runs.
func DiffKeys(first, second *tabular.Source) DiffReport {
	keysFirst := firstColumnKeys(first)
	keysSecond := firstColumnKeys(second)

	countsFirst := occurrences(keysFirst)
	countsSecond := occurrences(keysSecond)

	report := DiffReport{
		FirstPath:    first.Path,
		SecondPath:   second.Path,
		FirstTotal:   len(keysFirst),
		SecondTotal:  len(keysSecond),
		FirstUnique:  len(countsFirst),
		SecondUnique: len(countsSecond),
	}

	for key := range countsFirst {
		if _, ok := countsSecond[key]; ok {
			report.Common++
		} else {
			report.OnlyInFirst = append(report.OnlyInFirst, key)
		}
	}
	for key := range countsSecond {
		if _, ok := countsFirst[key]; !ok {
			report.OnlyInSecond = append(report.OnlyInSecond, key)
		}
	}

	collator := collate.New(language.Und)
	collator.SortStrings(report.OnlyInFirst)
	collator.SortStrings(report.OnlyInSecond)

	report.SetsEqual = len(report.OnlyInFirst) == 0 && len(report.OnlyInSecond) == 0
	if report.SetsEqual {
		report.FirstDuplicates = duplicates(countsFirst, collator)
		report.SecondDuplicates = duplicates(countsSecond, collator)
	}
	return report
}

func firstColumnKeys(src *tabular.Source) []string {
	if len(src.Header) == 0 {
		return nil
	}
	keys, _ := src.Keys(src.Header[0])
	return keys
}

func occurrences(keys []string) map[string]int {
	counts := make(map[string]int, len(keys))
	for _, key := range keys {
		counts[key]++
	}
	return counts
}

func duplicates(counts map[string]int, collator *collate.Collator) []KeyCount {
	var dups []string
	for key, count := range counts {
		if count > 1 {
			dups = append(dups, key)
		}
	}
	collator.SortStrings(dups)
	result := make([]KeyCount, 0, len(dups))
	for _, key := range dups {
		result = append(result, KeyCount{Key: key, Count: counts[key]})
	}
	return result
}
