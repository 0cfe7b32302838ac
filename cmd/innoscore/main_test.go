package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/innoscore/internal/assessment"
	"github.com/dshills/innoscore/internal/questionnaire"
)

func assertExitCode(t *testing.T, err error, wantCode int) {
	t.Helper()
	if wantCode == 0 {
		if err != nil {
			t.Fatalf("expected success, got error: %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected exit code %d, got nil error", wantCode)
	}
	var ee *exitErr
	if !errors.As(err, &ee) {
		t.Fatalf("expected *exitErr with code %d, got %T: %v", wantCode, err, err)
	}
	if ee.code != wantCode {
		t.Errorf("exit code = %d, want %d (msg: %s)", ee.code, wantCode, ee.msg)
	}
}

func testdata(name string) string {
	return filepath.Join("testdata", name)
}

func runAssessOut(t *testing.T, sheet string, f *assessFlags) (string, error) {
	t.Helper()
	if f.format == "" {
		f.format = "json"
	}
	var buf bytes.Buffer
	err := runAssess(testdata(sheet), &globalFlags{}, f, &buf)
	return buf.String(), err
}

func TestRunAssessHappyPath(t *testing.T) {
	out, err := runAssessOut(t, "full.yaml", &assessFlags{})
	assertExitCode(t, err, 0)

	var r assessment.Result
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if r.CompanyName != "Acme Labs" || r.TotalScore != 80 || r.OverallPercentage != 100 {
		t.Errorf("unexpected result: %+v", r)
	}
	if r.Tier.Level != assessment.LevelHighlyInnovative {
		t.Errorf("tier = %s", r.Tier.Level)
	}
	if len(r.RadarPoints) != 3 {
		t.Errorf("got %d radar points", len(r.RadarPoints))
	}
}

func TestRunAssessListForm(t *testing.T) {
	out, err := runAssessOut(t, "partial.json", &assessFlags{})
	assertExitCode(t, err, 0)
	if !strings.Contains(out, `"total_score": 9`) {
		t.Errorf("expected total_score 9 in output:\n%s", out)
	}
	if !strings.Contains(out, `"code": "CRITICAL_NEED"`) {
		t.Errorf("expected CRITICAL_NEED in output:\n%s", out)
	}
}

func TestRunAssessMarkdownAndChart(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.md")
	chartPath := filepath.Join(dir, "radar.svg")

	stdout, err := runAssessOut(t, "full.yaml", &assessFlags{format: "md", out: outPath, chartOut: chartPath})
	assertExitCode(t, err, 0)
	if stdout != "" {
		t.Errorf("expected nothing on stdout with --out, got %q", stdout)
	}

	md, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(md), "# Innovation Capability Assessment: Acme Labs") {
		t.Errorf("unexpected markdown:\n%s", md)
	}

	svg, err := os.ReadFile(chartPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(svg), "<svg") || !strings.Contains(string(svg), "<path") {
		t.Errorf("unexpected svg:\n%s", svg)
	}
}

func TestRunAssessErrors(t *testing.T) {
	tests := []struct {
		name  string
		sheet string
		flags assessFlags
		code  int
	}{
		{"missing file", "nope.yaml", assessFlags{}, 3},
		{"out of range", "out_of_range.yaml", assessFlags{}, 4},
		{"duplicate answer", "duplicate.json", assessFlags{}, 4},
		{"no company", "no_company.yaml", assessFlags{}, 4},
		{"require complete", "partial.json", assessFlags{requireComplete: true}, 4},
		{"unknown format", "full.yaml", assessFlags{format: "xml"}, 3},
		{"bad fail-below", "full.yaml", assessFlags{failBelow: "legendary"}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.flags
			_, err := runAssessOut(t, tt.sheet, &f)
			assertExitCode(t, err, tt.code)
		})
	}
}

func TestRunAssessFailBelow(t *testing.T) {
	tests := []struct {
		sheet     string
		failBelow string
		code      int
	}{
		{"full.yaml", "HIGHLY_INNOVATIVE", 0},
		{"full.yaml", "potential", 0},
		{"minimal.yaml", "developing", 2},
		{"minimal.yaml", "critical-need", 0},
	}
	for _, tt := range tests {
		t.Run(tt.sheet+"/"+tt.failBelow, func(t *testing.T) {
			_, err := runAssessOut(t, tt.sheet, &assessFlags{failBelow: tt.failBelow})
			assertExitCode(t, err, tt.code)
		})
	}
}

func TestRunAssessExplicitConfig(t *testing.T) {
	err := runAssess(testdata("full.yaml"),
		&globalFlags{configPath: filepath.Join(t.TempDir(), "missing.yaml")},
		&assessFlags{format: "json"}, &bytes.Buffer{})
	assertExitCode(t, err, 3)

	cfgPath := filepath.Join(t.TempDir(), "innoscore.yaml")
	cfg := "tiers:\n  highly_innovative: 95\n  solid_innovator: 90\n  potential: 60\n  developing: 20\n  critical_need: 0\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	err = runAssess(testdata("minimal.yaml"), &globalFlags{configPath: cfgPath},
		&assessFlags{format: "json", failBelow: "developing"}, &buf)
	assertExitCode(t, err, 0)
	if !strings.Contains(buf.String(), `"code": "DEVELOPING"`) {
		t.Errorf("expected DEVELOPING with custom tiers:\n%s", buf.String())
	}
}

func TestRunAssessIgnoresServerRequireComplete(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "innoscore.yaml")
	if err := os.WriteFile(cfgPath, []byte("server:\n  require_complete: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	g := &globalFlags{configPath: cfgPath}

	err := runAssess(testdata("partial.json"), g, &assessFlags{format: "json"}, &bytes.Buffer{})
	assertExitCode(t, err, 0)

	err = runAssess(testdata("partial.json"), g, &assessFlags{format: "json", requireComplete: true}, &bytes.Buffer{})
	assertExitCode(t, err, 4)
}

func TestRunValidate(t *testing.T) {
	dir := t.TempDir()
	resultPath := filepath.Join(dir, "result.json")
	_, err := runAssessOut(t, "full.yaml", &assessFlags{out: resultPath})
	assertExitCode(t, err, 0)

	var buf bytes.Buffer
	assertExitCode(t, runValidate(resultPath, &buf), 0)
	if !strings.Contains(buf.String(), "valid") {
		t.Errorf("unexpected output %q", buf.String())
	}

	data, err := os.ReadFile(resultPath)
	if err != nil {
		t.Fatal(err)
	}
	tampered := strings.Replace(string(data), `"total_score": 80`, `"total_score": 79`, 1)
	tamperedPath := filepath.Join(dir, "tampered.json")
	if err := os.WriteFile(tamperedPath, []byte(tampered), 0o600); err != nil {
		t.Fatal(err)
	}
	assertExitCode(t, runValidate(tamperedPath, &buf), 5)

	notJSON := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(notJSON, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	assertExitCode(t, runValidate(notJSON, &buf), 5)
	assertExitCode(t, runValidate(filepath.Join(dir, "missing.json"), &buf), 3)
}

func TestWriteQuestions(t *testing.T) {
	var buf bytes.Buffer
	if err := writeQuestions(&buf, questionnaire.Default(), "json"); err != nil {
		t.Fatal(err)
	}
	var doc questionsDoc
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.TotalQuestions != 20 || len(doc.Modules) != 3 || doc.Scale["1"] != "Does not apply" {
		t.Errorf("unexpected doc: %+v", doc)
	}

	buf.Reset()
	if err := writeQuestions(&buf, questionnaire.Default(), "text"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "[m3_q9]") {
		t.Errorf("text listing missing m3_q9:\n%s", buf.String())
	}

	assertExitCode(t, writeQuestions(&buf, questionnaire.Default(), "yaml"), 3)
}

func TestRootTiersCommand(t *testing.T) {
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"tiers"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Highly Innovative") || !strings.Contains(out, "CRITICAL_NEED") {
		t.Errorf("unexpected tiers output:\n%s", out)
	}
}
