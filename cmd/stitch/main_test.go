package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stitch/internal/testsupport"
)

// runCommand executes the CLI with the given arguments in an isolated
// working directory and home, capturing combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func TestConcatCommand(t *testing.T) {
	isolate(t)
	testsupport.WriteCSV(t, filepath.Join("files", "chunk_002.csv"),
		[]string{"Filename", "Transcription"},
		[]string{"c.wav", "three"},
	)
	testsupport.WriteCSV(t, filepath.Join("files", "chunk_001.csv"),
		[]string{"Filename", "Transcription"},
		[]string{"a.wav", "one"},
		[]string{"b.wav", "two"},
	)

	out, err := runCommand(t, "concat", "-i", "files", "-o", "combined.csv")
	if err != nil {
		t.Fatalf("concat failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Merged 2 files into combined.csv (3 rows)") {
		t.Errorf("summary missing: %q", out)
	}

	records := testsupport.ReadCSV(t, "combined.csv")
	if len(records) != 4 {
		t.Fatalf("combined record count: got %d", len(records))
	}
	// Name order: chunk_001 rows before chunk_002.
	if records[1][0] != "a.wav" || records[3][0] != "c.wav" {
		t.Errorf("row order: %v", records)
	}
}

func TestConcatCommandSelectsFilesByName(t *testing.T) {
	isolate(t)
	testsupport.WriteCSV(t, filepath.Join("files", "alpha.csv"),
		[]string{"Filename"}, []string{"a.wav"})
	testsupport.WriteCSV(t, filepath.Join("files", "beta.csv"),
		[]string{"Filename"}, []string{"b.wav"})

	out, err := runCommand(t, "concat", "-i", "files", "-o", "combined.csv", "-n", "beta,alpha")
	if err != nil {
		t.Fatalf("concat failed: %v\n%s", err, out)
	}

	records := testsupport.ReadCSV(t, "combined.csv")
	if records[1][0] != "b.wav" || records[2][0] != "a.wav" {
		t.Errorf("pattern order must drive merge order: %v", records)
	}
}

func TestDurationsCommand(t *testing.T) {
	isolate(t)
	testsupport.WriteCSV(t, "meta.csv",
		[]string{"Filename", "duration_sec"},
		[]string{"a.wav", "1.5"},
	)
	testsupport.WriteCSV(t, "trans.csv",
		[]string{"Filename", "Transcription"},
		[]string{"a.wav", "hello"},
		[]string{"x.wav", "orphan"},
	)

	out, err := runCommand(t, "durations", "-m", "meta.csv", "-t", "trans.csv", "-o", "joined.csv")
	if err != nil {
		t.Fatalf("durations failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "matched 1, unmatched 1") {
		t.Errorf("stats missing: %q", out)
	}

	records := testsupport.ReadCSV(t, "joined.csv")
	if len(records) != 3 {
		t.Fatalf("joined record count: got %d", len(records))
	}
	header := records[0]
	if header[0] != "Filename" || header[1] != "duration_sec" || header[2] != "transcript" {
		t.Errorf("joined header: %v", header)
	}
	if records[1][1] != "1.5" || records[2][1] != "" {
		t.Errorf("durations: %v", records)
	}
}

func TestReorderCommandRefusesInPlaceWithoutYes(t *testing.T) {
	isolate(t)
	testsupport.WriteCSV(t, "data.csv",
		[]string{"Filename"}, []string{"a.wav"})

	// Test stdin is not a terminal, so the overwrite prompt must refuse.
	_, err := runCommand(t, "reorder", "-r", "data.csv", "-i", "data.csv", "-o", "data.csv")
	if err == nil || !strings.Contains(err.Error(), "--yes") {
		t.Fatalf("expected a refusal pointing at --yes, got %v", err)
	}
}

func TestReorderCommandInPlaceWithYes(t *testing.T) {
	isolate(t)
	testsupport.WriteCSV(t, "ref.csv",
		[]string{"Filename"},
		[]string{"b.wav"},
		[]string{"a.wav"},
	)
	testsupport.WriteCSV(t, "data.csv",
		[]string{"Filename", "n"},
		[]string{"a.wav", "1"},
		[]string{"b.wav", "2"},
	)

	out, err := runCommand(t, "reorder", "-r", "ref.csv", "-i", "data.csv", "-o", "data.csv", "--yes")
	if err != nil {
		t.Fatalf("reorder failed: %v\n%s", err, out)
	}

	records := testsupport.ReadCSV(t, "data.csv")
	if records[1][0] != "b.wav" || records[2][0] != "a.wav" {
		t.Errorf("reordered rows: %v", records)
	}
}

func TestSortCommand(t *testing.T) {
	isolate(t)
	testsupport.WriteCSV(t, "one.csv",
		[]string{"Filename"},
		[]string{"b.wav"},
		[]string{"a.wav"},
	)
	testsupport.WriteCSV(t, "two.csv",
		[]string{"Filename"},
		[]string{"a.wav"},
		[]string{"b.wav"},
	)

	out, err := runCommand(t, "sort", "one.csv", "two.csv", "-c", "Filename", "-s", "_sorted")
	if err != nil {
		t.Fatalf("sort failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "matching Filename values in the same order") {
		t.Errorf("match report missing: %q", out)
	}

	records := testsupport.ReadCSV(t, "one_sorted.csv")
	if records[1][0] != "a.wav" || records[2][0] != "b.wav" {
		t.Errorf("sorted rows: %v", records)
	}
	if _, statErr := os.Stat("two_sorted.csv"); statErr != nil {
		t.Errorf("second output missing: %v", statErr)
	}
}

func TestDiffCommand(t *testing.T) {
	isolate(t)
	testsupport.WriteCSV(t, "one.csv",
		[]string{"Filename"},
		[]string{"a.wav"},
		[]string{"b.wav"},
	)
	testsupport.WriteCSV(t, "two.csv",
		[]string{"Filename"},
		[]string{"b.wav"},
		[]string{"c.wav"},
	)

	out, err := runCommand(t, "diff", "one.csv", "two.csv")
	if err != nil {
		t.Fatalf("diff failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Common keys: 1") {
		t.Errorf("common count missing: %q", out)
	}
	if !strings.Contains(out, "Keys only in one.csv: 1") || !strings.Contains(out, "- a.wav") {
		t.Errorf("unique listing missing: %q", out)
	}
}

func TestDiffCommandReportsDuplicatesOnEqualSets(t *testing.T) {
	isolate(t)
	testsupport.WriteCSV(t, "one.csv",
		[]string{"Filename"},
		[]string{"a.wav"},
		[]string{"a.wav"},
	)
	testsupport.WriteCSV(t, "two.csv",
		[]string{"Filename"},
		[]string{"a.wav"},
	)

	out, err := runCommand(t, "diff", "one.csv", "two.csv")
	if err != nil {
		t.Fatalf("diff failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Both files have the exact same keys") {
		t.Errorf("equality report missing: %q", out)
	}
	if !strings.Contains(out, "a.wav appears 2 times") {
		t.Errorf("duplicate listing missing: %q", out)
	}
}

func TestProcessAndRunsCommands(t *testing.T) {
	isolate(t)
	testsupport.WriteCSV(t, filepath.Join("session_files", "chunk_001.csv"),
		[]string{"Filename", "Transcription"},
		[]string{"a.wav", "hello"},
	)
	testsupport.WriteCSV(t, "metadata_copy.csv",
		[]string{"Filename", "duration_sec"},
		[]string{"a.wav", "1.5"},
	)
	configPath := "stitch.toml"
	runLogPath := filepath.Join("state", "runs.db")
	content := "[run_log]\nenabled = true\npath = \"" + runLogPath + "\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := runCommand(t, "--config", configPath, "process", "session")
	if err != nil {
		t.Fatalf("process failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Processing complete for session") {
		t.Errorf("completion message missing: %q", out)
	}
	finalPath := filepath.Join("session_generated_files", "session_final.csv")
	if !strings.Contains(out, finalPath) {
		t.Errorf("artifact listing missing: %q", out)
	}
	if _, statErr := os.Stat(finalPath); statErr != nil {
		t.Errorf("final artifact not written: %v", statErr)
	}

	out, err = runCommand(t, "--config", configPath, "runs")
	if err != nil {
		t.Fatalf("runs failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "session") || !strings.Contains(out, "completed") {
		t.Errorf("run history missing: %q", out)
	}
}

func TestRunsCommandWithEmptyHistory(t *testing.T) {
	isolate(t)

	out, err := runCommand(t, "runs")
	if err != nil {
		t.Fatalf("runs failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "No recorded runs.") {
		t.Errorf("empty history message missing: %q", out)
	}
}

func TestRunsCommandRequiresEnabledRunLog(t *testing.T) {
	isolate(t)
	if err := os.WriteFile("stitch.toml", []byte("[run_log]\nenabled = false\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := runCommand(t, "runs")
	if err == nil || !strings.Contains(err.Error(), "disabled") {
		t.Fatalf("expected disabled run log error, got %v", err)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	isolate(t)
	target := filepath.Join("conf", "config.toml")

	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init failed: %v\n%s", err, out)
	}
	if _, statErr := os.Stat(target); statErr != nil {
		t.Fatalf("sample config not written: %v", statErr)
	}

	out, err = runCommand(t, "--config", target, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "[columns]") || !strings.Contains(out, "duration_sec") {
		t.Errorf("resolved config missing expected values: %q", out)
	}
}
