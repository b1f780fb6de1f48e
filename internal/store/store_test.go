package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/ainnovators/viewer/internal/domain"
)

func newTestStore(t *testing.T) (*Store, string, string) {
	t.Helper()
	experimentsDir := t.TempDir()
	testResultsDir := t.TempDir()
	return New(experimentsDir, testResultsDir, zap.NewNop()), experimentsDir, testResultsDir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestListExperiments(t *testing.T) {
	s, root, _ := newTestStore(t)

	writeFile(t, filepath.Join(root, "experiment_20240101_000000"), "context_final.json", `{"state":{}}`)
	writeFile(t, filepath.Join(root, "experiment_20240101_000000"), "statistics.json", `{}`)
	writeFile(t, filepath.Join(root, "experiment_20240102_000000"), "context_idea_development.json", `{"state":{}}`)
	writeFile(t, filepath.Join(root, "stage_run_pitch_20240103_000000"), "results.json", `{"stage":"pitch"}`)
	writeFile(t, filepath.Join(root, ".cache"), "ignored.json", `{}`)
	writeFile(t, root, "stray.txt", "not a directory")

	experiments, err := s.ListExperiments()
	if err != nil {
		t.Fatalf("ListExperiments failed: %v", err)
	}
	if len(experiments) != 3 {
		t.Fatalf("expected 3 experiments, got %d", len(experiments))
	}

	// Descending lexical order on id.
	ids := []string{experiments[0].ID, experiments[1].ID, experiments[2].ID}
	want := []string{"stage_run_pitch_20240103_000000", "experiment_20240102_000000", "experiment_20240101_000000"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("unexpected order: %v", ids)
		}
	}

	full := experiments[2]
	if full.Kind != domain.KindFull || !full.HasCompleteContext || !full.HasStatistics || full.HasResultsBundle {
		t.Fatalf("unexpected flags: %+v", full)
	}
	if len(full.ArtifactFiles) != 1 || full.ArtifactFiles[0] != "context_final.json" {
		t.Fatalf("unexpected artifact files: %v", full.ArtifactFiles)
	}

	stageRun := experiments[0]
	if stageRun.Kind != domain.KindStageRun || !stageRun.HasResultsBundle || stageRun.HasCompleteContext {
		t.Fatalf("unexpected stage run: %+v", stageRun)
	}
}

func TestListExperimentsDateOrdering(t *testing.T) {
	s, root, _ := newTestStore(t)
	writeFile(t, filepath.Join(root, "experiment_20240101_000000"), "statistics.json", `{}`)
	writeFile(t, filepath.Join(root, "experiment_20240102_000000"), "statistics.json", `{}`)

	experiments, err := s.ListExperiments()
	if err != nil {
		t.Fatalf("ListExperiments failed: %v", err)
	}
	if experiments[0].ID != "experiment_20240102_000000" {
		t.Fatalf("expected newest first, got %v", experiments[0].ID)
	}
}

func TestListExperimentsMissingRoot(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope"), t.TempDir(), zap.NewNop())
	_, err := s.ListExperiments()
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetExperimentSubfolders(t *testing.T) {
	s, root, _ := newTestStore(t)
	dir := filepath.Join(root, "experiment_20240101_000000")
	writeFile(t, dir, "context_final.json", `{"state":{}}`)
	writeFile(t, filepath.Join(dir, "designs"), "home.png", "png")
	writeFile(t, filepath.Join(dir, "logs"), "run.log", "log")

	exp, subfolders, err := s.GetExperiment("experiment_20240101_000000")
	if err != nil {
		t.Fatalf("GetExperiment failed: %v", err)
	}
	if !exp.HasCompleteContext {
		t.Fatalf("expected complete context flag: %+v", exp)
	}
	if len(subfolders) != 2 || subfolders[0] != "designs" || subfolders[1] != "logs" {
		t.Fatalf("unexpected subfolders: %v", subfolders)
	}
}

func TestGetExperimentNotFound(t *testing.T) {
	s, _, _ := newTestStore(t)
	_, _, err := s.GetExperiment("experiment_20990101_000000")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolvePrecedenceFinalOverBundle(t *testing.T) {
	s, root, _ := newTestStore(t)
	dir := filepath.Join(root, "experiment_20240101_000000")
	writeFile(t, dir, "context_final.json", `{"state":{"idea":"from final"}}`)
	writeFile(t, dir, "results.json", `{"stage":"pitch","full_context":{"state":{"idea":"from bundle"}}}`)
	writeFile(t, dir, "context_pitch.json", `{"state":{"idea":"from partial"}}`)

	res, err := s.ResolveContext("experiment_20240101_000000")
	if err != nil {
		t.Fatalf("ResolveContext failed: %v", err)
	}
	if res.Source != domain.SourceFinalContext {
		t.Fatalf("expected final context, got %s", res.Source)
	}
	if res.Context.State["idea"] != "from final" {
		t.Fatalf("wrong document selected: %+v", res.Context)
	}
}

func TestResolveBundleEmbeddedContext(t *testing.T) {
	s, root, _ := newTestStore(t)
	dir := filepath.Join(root, "stage_run_pitch_20240101_000000")
	writeFile(t, dir, "results.json", `{"stage":"pitch","success":true,"full_context":{"state":{"pitch":"deck"}}}`)

	res, err := s.ResolveContext("stage_run_pitch_20240101_000000")
	if err != nil {
		t.Fatalf("ResolveContext failed: %v", err)
	}
	if res.Source != domain.SourceResultsBundle {
		t.Fatalf("expected results bundle, got %s", res.Source)
	}
	if res.Results.FullContext == nil || res.Results.FullContext.State["pitch"] != "deck" {
		t.Fatalf("embedded context not extracted: %+v", res.Results)
	}
}

func TestResolveBundleWithoutContextFallsToPartial(t *testing.T) {
	s, root, _ := newTestStore(t)
	dir := filepath.Join(root, "stage_run_pitch_20240101_000000")
	writeFile(t, dir, "results.json", `{"stage":"pitch","success":false}`)
	writeFile(t, dir, "context_pitch.json", `{"state":{"pitch":"partial"}}`)

	res, err := s.ResolveContext("stage_run_pitch_20240101_000000")
	if err != nil {
		t.Fatalf("ResolveContext failed: %v", err)
	}
	if res.Source != domain.SourcePartialContext {
		t.Fatalf("expected partial context, got %s", res.Source)
	}
}

func TestResolvePartialLexicalFirst(t *testing.T) {
	s, root, _ := newTestStore(t)
	dir := filepath.Join(root, "experiment_20240101_000000")
	writeFile(t, dir, "context_prototyping.json", `{"state":{"current_stage":"prototyping"}}`)
	writeFile(t, dir, "context_idea_development.json", `{"state":{"current_stage":"idea_development"}}`)

	res, err := s.ResolveContext("experiment_20240101_000000")
	if err != nil {
		t.Fatalf("ResolveContext failed: %v", err)
	}
	if res.Source != domain.SourcePartialContext {
		t.Fatalf("expected partial context, got %s", res.Source)
	}
	if res.Context.State["current_stage"] != "idea_development" {
		t.Fatalf("expected lexically first snapshot, got %+v", res.Context.State)
	}
}

func TestResolveNoContextArtifacts(t *testing.T) {
	s, root, _ := newTestStore(t)
	writeFile(t, filepath.Join(root, "experiment_20240101_000000"), "statistics.json", `{}`)

	res, err := s.ResolveContext("experiment_20240101_000000")
	if err != nil {
		t.Fatalf("ResolveContext failed: %v", err)
	}
	if res.Source != domain.SourceNone || res.Context != nil || res.Results != nil {
		t.Fatalf("expected empty resolution, got %+v", res)
	}
}

func TestResolveMalformedDocument(t *testing.T) {
	s, root, _ := newTestStore(t)
	writeFile(t, filepath.Join(root, "experiment_20240101_000000"), "context_final.json", `{not json`)

	_, err := s.ResolveContext("experiment_20240101_000000")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("parse failure must be a read error, got %v", err)
	}
}

func TestReadStatistics(t *testing.T) {
	s, root, _ := newTestStore(t)
	writeFile(t, filepath.Join(root, "experiment_20240101_000000"), "statistics.json", `{
		"total_cost": 1.25,
		"max_budget": 10,
		"budget_used_percent": 12.5,
		"stages": {"pitch": {"total_calls": 4, "agents": {"Marketer": {"call_count": 2, "cost": 0.5}}}}
	}`)

	stats, err := s.ReadStatistics("experiment_20240101_000000")
	if err != nil {
		t.Fatalf("ReadStatistics failed: %v", err)
	}
	if stats.TotalCost != 1.25 || stats.Stages["pitch"].Agents["Marketer"].CallCount != 2 {
		t.Fatalf("unexpected statistics: %+v", stats)
	}
}

func TestReadStatisticsMissing(t *testing.T) {
	s, root, _ := newTestStore(t)
	writeFile(t, filepath.Join(root, "experiment_20240101_000000"), "context_final.json", `{"state":{}}`)

	_, err := s.ReadStatistics("experiment_20240101_000000")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReadAssetTraversalRejectedBeforeIO(t *testing.T) {
	// A store rooted at a path that does not exist: any filesystem access
	// would surface ErrNotFound, so ErrBadRequest proves the guard ran first.
	s := New(filepath.Join(t.TempDir(), "missing"), t.TempDir(), zap.NewNop())

	for _, tc := range [][2]string{
		{"experiment_20240101_000000", "../../secret"},
		{"../experiment_20240101_000000", "home.png"},
		{"experiment_20240101_000000", "designs/../../secret"},
	} {
		_, _, err := s.ReadAsset(tc[0], tc[1])
		if !errors.Is(err, domain.ErrBadRequest) {
			t.Fatalf("ReadAsset(%q, %q): expected ErrBadRequest, got %v", tc[0], tc[1], err)
		}
	}
}

func TestReadAsset(t *testing.T) {
	s, root, _ := newTestStore(t)
	dir := filepath.Join(root, "experiment_20240101_000000", "designs")
	writeFile(t, dir, "home.png", "fake png bytes")

	data, contentType, err := s.ReadAsset("experiment_20240101_000000", "home.png")
	if err != nil {
		t.Fatalf("ReadAsset failed: %v", err)
	}
	if string(data) != "fake png bytes" {
		t.Fatalf("unexpected bytes: %q", data)
	}
	if contentType != "image/png" {
		t.Fatalf("unexpected content type: %q", contentType)
	}
}

func TestReadAssetUnknownExtension(t *testing.T) {
	s, root, _ := newTestStore(t)
	dir := filepath.Join(root, "experiment_20240101_000000", "designs")
	writeFile(t, dir, "home.bin2", "bytes")

	_, contentType, err := s.ReadAsset("experiment_20240101_000000", "home.bin2")
	if err != nil {
		t.Fatalf("ReadAsset failed: %v", err)
	}
	if contentType != "application/octet-stream" {
		t.Fatalf("expected octet-stream fallback, got %q", contentType)
	}
}

func TestReadAssetMissing(t *testing.T) {
	s, root, _ := newTestStore(t)
	writeFile(t, filepath.Join(root, "experiment_20240101_000000"), "context_final.json", `{"state":{}}`)

	_, _, err := s.ReadAsset("experiment_20240101_000000", "home.png")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListTestResults(t *testing.T) {
	s, _, resultsDir := newTestStore(t)
	writeFile(t, resultsDir, "ceo_review_20240101_000000.json",
		`{"test_name":"ceo_review","agent_name":"CEO","success":true,"execution_time_ms":120}`)
	writeFile(t, resultsDir, "marketer_test_20240102_000000.json",
		`{"test_name":"marketer_test","agent_name":"Marketer","success":false}`)
	writeFile(t, resultsDir, "ceo_review_latest.txt", "human readable summary")

	results, err := s.ListTestResults()
	if err != nil {
		t.Fatalf("ListTestResults failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != "marketer_test_20240102_000000" {
		t.Fatalf("expected newest first, got %v", results[0].ID)
	}
	if results[1].AgentName != "CEO" || !results[1].Success || results[1].ExecutionTimeMS != 120 {
		t.Fatalf("unexpected summary: %+v", results[1])
	}
}

func TestListTestResultsMissingRoot(t *testing.T) {
	s := New(t.TempDir(), filepath.Join(t.TempDir(), "missing"), zap.NewNop())
	results, err := s.ListTestResults()
	if err != nil {
		t.Fatalf("ListTestResults failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty list, got %v", results)
	}
}

func TestReadTestResult(t *testing.T) {
	s, _, resultsDir := newTestStore(t)
	writeFile(t, resultsDir, "ceo_review_20240101_000000.json",
		`{"test_name":"ceo_review","output":{"decision":"approve"},"context_changes":[]}`)

	result, err := s.ReadTestResult("ceo_review_20240101_000000")
	if err != nil {
		t.Fatalf("ReadTestResult failed: %v", err)
	}
	output := result["output"].(map[string]any)
	if output["decision"] != "approve" {
		t.Fatalf("unexpected record: %+v", result)
	}
}

func TestReadTestResultTraversal(t *testing.T) {
	s, _, _ := newTestStore(t)
	_, err := s.ReadTestResult("../secrets")
	if !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest, got %v", err)
	}
}

func TestReadTestResultMissing(t *testing.T) {
	s, _, _ := newTestStore(t)
	_, err := s.ReadTestResult("nope_20240101_000000")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
