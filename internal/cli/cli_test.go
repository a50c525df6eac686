package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/yildizm/pitchdeck/internal/formatter"
	"github.com/yildizm/pitchdeck/internal/monitor"
	"github.com/yildizm/pitchdeck/internal/ui"
)

const testConfig = `version: "1.0"
output:
  default_format: json
  color_mode: never
export:
  dir: handouts
  width: 640
  height: 360
  concurrency: 2
`

// writeConfig writes a config file so tests do not pick up the user's own
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand("1.2.3", "abc123", "2025-01-01")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// stubPresenter makes the presenter think it owns a terminal and captures
// the options it would run with
func stubPresenter(t *testing.T, run func(ui.Options) error) {
	t.Helper()
	oldRun, oldInteractive := runUI, interactive
	runUI = run
	interactive = func() bool { return true }
	t.Cleanup(func() {
		runUI, interactive = oldRun, oldInteractive
	})
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "version", "-c", writeConfig(t, testConfig))
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "pitchdeck 1.2.3 (abc123) built on 2025-01-01") {
		t.Errorf("Unexpected version output: %q", out)
	}
}

func TestSlidesJSON(t *testing.T) {
	out, err := executeCommand(t, "slides", "-c", writeConfig(t, testConfig))
	if err != nil {
		t.Fatalf("slides failed: %v", err)
	}

	var o formatter.Outline
	if err := json.Unmarshal([]byte(out), &o); err != nil {
		t.Fatalf("Expected JSON from the configured default format: %v", err)
	}
	if len(o.Slides) != 11 {
		t.Errorf("Expected 11 slides, got %d", len(o.Slides))
	}
}

func TestSlidesOutputFlagOverridesConfig(t *testing.T) {
	file := filepath.Join(t.TempDir(), "index.csv")
	_, err := executeCommand(t, "slides", "-c", writeConfig(t, testConfig), "-o", "csv", "--output-file", file)
	if err != nil {
		t.Fatalf("slides failed: %v", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("Expected output file: %v", err)
	}
	if !strings.HasPrefix(string(data), "Number,ID,Kind,Title") {
		t.Errorf("Expected CSV header, got %q", string(data))
	}
}

func TestSlidesUnknownFormat(t *testing.T) {
	_, err := executeCommand(t, "slides", "-c", writeConfig(t, testConfig), "-o", "xml")
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("Expected unsupported format error, got %v", err)
	}
}

func TestSlidesMissingDeck(t *testing.T) {
	_, err := executeCommand(t, "slides", "-c", writeConfig(t, testConfig), "--deck", filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("Expected error for a missing deck file")
	}
}

func TestPresentPrintsOutlineWithoutTerminal(t *testing.T) {
	oldInteractive := interactive
	interactive = func() bool { return false }
	defer func() { interactive = oldInteractive }()

	out, err := executeCommand(t, "-c", writeConfig(t, testConfig))
	if err != nil {
		t.Fatalf("present failed: %v", err)
	}
	if !strings.Contains(out, `"slides"`) {
		t.Errorf("Expected the JSON outline, got %q", out)
	}
}

func TestPresentPassesFlagsToPresenter(t *testing.T) {
	var got ui.Options
	stubPresenter(t, func(opts ui.Options) error {
		got = opts
		return nil
	})

	_, err := executeCommand(t, "present", "-c", writeConfig(t, testConfig),
		"--start", "6", "--no-mouse", "--transition", "0s", "--theme", "minimal")
	if err != nil {
		t.Fatalf("present failed: %v", err)
	}

	if got.Deck == nil || got.Deck.Len() != 11 {
		t.Fatal("Expected the built-in deck")
	}
	if got.Start != 5 {
		t.Errorf("Expected zero-based start 5, got %d", got.Start)
	}
	if got.Mouse {
		t.Error("Expected mouse disabled")
	}
	if got.Transition != 0 {
		t.Errorf("Expected transition disabled, got %v", got.Transition)
	}
	if got.Theme != "minimal" {
		t.Errorf("Expected minimal theme, got %s", got.Theme)
	}
	if got.Recorder != nil {
		t.Error("Expected no recorder without --report")
	}
}

func TestPresentReport(t *testing.T) {
	stubPresenter(t, func(opts ui.Options) error {
		if opts.Recorder == nil {
			t.Fatal("Expected a recorder with --report")
		}
		opts.Recorder.SlideEntered(0, "cover", time.Now())
		return nil
	})

	out, err := executeCommand(t, "-c", writeConfig(t, testConfig), "--report", "json")
	if err != nil {
		t.Fatalf("present failed: %v", err)
	}

	var r monitor.Report
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("Expected a JSON report, got %q: %v", out, err)
	}
	if r.TotalSlides != 11 || r.SlidesPresented != 1 {
		t.Errorf("Unexpected report: %d/%d slides", r.SlidesPresented, r.TotalSlides)
	}
}

func TestPresentInvalidReportFormat(t *testing.T) {
	stubPresenter(t, func(ui.Options) error {
		t.Fatal("presenter should not start")
		return nil
	})

	_, err := executeCommand(t, "present", "-c", writeConfig(t, testConfig), "--report", "pdf")
	if err == nil || !strings.Contains(err.Error(), "invalid report format") {
		t.Errorf("Expected invalid report format error, got %v", err)
	}
}

func TestInvalidFlagValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown theme", []string{"--theme", "neon"}},
		{"start before first slide", []string{"--start", "0"}},
		{"negative transition", []string{"--transition", "-1s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubPresenter(t, func(ui.Options) error { return nil })
			args := append([]string{"present", "-c", writeConfig(t, testConfig)}, tt.args...)
			_, err := executeCommand(t, args...)
			if err == nil || !strings.Contains(err.Error(), "invalid flags") {
				t.Errorf("Expected invalid flags error, got %v", err)
			}
		})
	}
}

func TestExportCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	out, err := executeCommand(t, "export", "-c", writeConfig(t, testConfig), "--out", dir)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 11 {
		t.Errorf("Expected 11 handouts, got %d", len(files))
	}
	if !strings.Contains(out, "Exported 11 slides") {
		t.Errorf("Unexpected export output: %q", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, "01-cover.svg"))
	if err != nil {
		t.Fatalf("Expected cover handout: %v", err)
	}
	if !strings.Contains(string(data), `width="640"`) {
		t.Error("Expected configured handout width")
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pitchdeck.yaml")

	out, err := executeCommand(t, "config", "init", "--minimal", "--output", path)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("Expected created path in output, got %q", out)
	}

	if _, err := executeCommand(t, "config", "init", "--output", path); err == nil {
		t.Error("Expected error when the file exists without --force")
	}

	out, err = executeCommand(t, "config", "validate", "-c", path)
	if err != nil {
		t.Fatalf("config validate failed: %v", err)
	}
	if !strings.Contains(out, "Configuration is valid") || !strings.Contains(out, "Deck: built-in") {
		t.Errorf("Unexpected validate output: %q", out)
	}
}

func TestConfigValidateReportsBadConfig(t *testing.T) {
	path := writeConfig(t, "presentation:\n  theme: neon\n")
	out, err := executeCommand(t, "config", "validate", "-c", path)
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !strings.Contains(out, "Configuration validation failed") {
		t.Errorf("Unexpected validate output: %q", out)
	}
}

func TestConfigShowJSON(t *testing.T) {
	out, err := executeCommand(t, "config", "show", "-c", writeConfig(t, testConfig), "--format", "json")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}

	var cfg map[string]interface{}
	if err := json.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("Expected JSON config: %v", err)
	}
	export, ok := cfg["export"].(map[string]interface{})
	if !ok || export["width"] != float64(640) {
		t.Errorf("Expected export width 640, got %v", cfg["export"])
	}
}

func TestWriteOutputRejectsTraversal(t *testing.T) {
	var b bytes.Buffer
	if err := writeOutput(&b, []byte("x"), "../escape.txt"); err == nil {
		t.Error("Expected path traversal error")
	}
	if err := writeOutput(&b, []byte("x"), ""); err != nil || b.String() != "x" {
		t.Errorf("Expected write to buffer, got %q (%v)", b.String(), err)
	}
}
