package convert

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"onepaper/config"
	"onepaper/slide"
	"onepaper/state"
)

func setupTestEnvForOutputPath(t *testing.T, noDirs bool, transliterate bool, template string) *state.LocalEnv {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Document.FileNameTransliterate = transliterate
	cfg.Document.OutputNameTemplate = template

	env := state.EnvFromContext(state.ContextWithEnv(context.Background()))
	env.Log = logger
	env.Cfg = cfg
	env.NoDirs = noDirs
	return env
}

func testDocument() *slide.Document {
	return &slide.Document{Theme: "Test Plan", Department: "Sales"}
}

func TestBuildOutputPath_SimpleCase_NoDirs(t *testing.T) {
	env := setupTestEnvForOutputPath(t, true, false, "")

	result := buildOutputPath(testDocument(), "Test Plan", "plans/q3/plan.json", "/output", env)
	expected := filepath.Join("/output", "plan.pptx")

	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_SimpleCase_WithDirs(t *testing.T) {
	env := setupTestEnvForOutputPath(t, false, false, "")

	result := buildOutputPath(testDocument(), "Test Plan", "plans/q3/plan.json", "/output", env)
	expected := filepath.Join("/output", "plans", "q3", "plan.pptx")

	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_Transliterate(t *testing.T) {
	env := setupTestEnvForOutputPath(t, true, true, "")

	result := buildOutputPath(testDocument(), "Test Plan", "План.json", "/output", env)
	expected := filepath.Join("/output", "plan.pptx")

	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_DefaultTemplate(t *testing.T) {
	env := setupTestEnvForOutputPath(t, true, false, "")
	env.Cfg.Document.OutputNameTemplate = `{{ .Date }}_{{ .Title | replace " " "_" | replace "/" "-" }}`

	result := buildOutputPath(testDocument(), "Test Plan", "plan.json", "/output", env)
	expected := filepath.Join("/output", env.StartTime().Format("20060102")+"_Test_Plan.pptx")

	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_TemplateWithSubdirs(t *testing.T) {
	env := setupTestEnvForOutputPath(t, false, false, "{{ .Department }}/{{ .Title }}")

	result := buildOutputPath(testDocument(), "Test Plan", "in/plan.json", "/output", env)
	expected := filepath.Join("/output", "in", "Sales", "Test Plan.pptx")

	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestBuildOutputPath_BadTemplateFallsBack(t *testing.T) {
	env := setupTestEnvForOutputPath(t, true, false, "{{ .Unknown }}")

	result := buildOutputPath(testDocument(), "Test Plan", "plan.json", "/output", env)
	expected := filepath.Join("/output", "plan.pptx")

	if result != expected {
		t.Errorf("buildOutputPath() = %q, want %q", result, expected)
	}
}

func TestDetermineOutputDir(t *testing.T) {
	tests := []struct {
		name     string
		noDirs   bool
		expected string
	}{
		{"no dirs", true, "/output"},
		{"with dirs", false, filepath.Join("/output", "plans", "q3")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, tt.noDirs, false, "")
			if result := determineOutputDir("plans/q3/plan.json", "/output", env); result != tt.expected {
				t.Errorf("determineOutputDir() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestBuildDefaultFileName(t *testing.T) {
	tests := []struct {
		name          string
		src           string
		transliterate bool
		expected      string
	}{
		{"simple", "plan.json", false, "plan.pptx"},
		{"with path", "path/to/plan.yaml", false, "plan.pptx"},
		{"transliterate", "План.yml", true, "plan.pptx"},
		{"leading dots", "..hidden.json", false, "hidden.pptx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, true, tt.transliterate, "")

			result := buildDefaultFileName(tt.src, env)
			if result != tt.expected {
				t.Errorf("buildDefaultFileName() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected []string
	}{
		{"simple path", "dept/plan", []string{"dept", "plan"}},
		{"single segment", "plan", []string{"plan"}},
		{"with trailing slash", "dept/plan/", []string{"dept", "plan"}},
		{"three levels", "year/dept/plan", []string{"year", "dept", "plan"}},
		{"dot segments", "../plan", []string{"plan"}},
		{"empty path", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndCleanPath(filepath.FromSlash(tt.path))
			if len(result) != len(tt.expected) {
				t.Fatalf("splitAndCleanPath() = %q, want %q", result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitAndCleanPath()[%d] = %q, want %q", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestCleanPathSegment(t *testing.T) {
	tests := []struct {
		name          string
		segment       string
		transliterate bool
		expected      string
	}{
		{"simple segment", "sales", false, "sales"},
		{"with spaces", "My Plan", false, "My Plan"},
		{"transliterate", "План", true, "plan"},
		{"only dots", "...", false, "_bad_file_name_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, true, tt.transliterate, "")

			result := cleanPathSegment(tt.segment, env)
			if result != tt.expected {
				t.Errorf("cleanPathSegment() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestAssemblePathWithSubdirs(t *testing.T) {
	tests := []struct {
		name          string
		expandedName  string
		transliterate bool
		expected      string
	}{
		{"nested", "dept/plan", false, filepath.Join("/output", "dept", "plan.pptx")},
		{"single level", "plan", false, filepath.Join("/output", "plan.pptx")},
		{"with transliterate", "Отдел/План", true, filepath.Join("/output", "otdel", "plan.pptx")},
		{"empty", "", false, filepath.Join("/output", "_bad_file_name_.pptx")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, true, tt.transliterate, "")

			result := assemblePathWithSubdirs("/output", filepath.FromSlash(tt.expandedName), env)
			if result != tt.expected {
				t.Errorf("assemblePathWithSubdirs() = %q, want %q", result, tt.expected)
			}
		})
	}
}
