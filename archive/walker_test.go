package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func makeZip(t *testing.T, names ...string) string {
	t.Helper()
	zipPath := filepath.Join(t.TempDir(), "test.zip")
	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, name := range names {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", name, err)
		}
		if strings.HasSuffix(name, "/") {
			// directory entries carry no data
			continue
		}
		if _, err := fw.Write([]byte(name)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return zipPath
}

func TestWalk(t *testing.T) {
	zipPath := makeZip(t,
		"slides/slide10.json",
		"slides/slide2.yaml",
		"slides/notes.txt",
		"slides/",
		"slide1.JSON",
	)

	tests := []struct {
		name   string
		accept func(string) bool
		want   []string
	}{
		{
			name:   "documents only",
			accept: HasExt(".json", ".yaml", ".yml"),
			want:   []string{"slide1.JSON", "slides/slide2.yaml", "slides/slide10.json"},
		},
		{
			name: "everything",
			want: []string{"slide1.JSON", "slides/notes.txt", "slides/slide2.yaml", "slides/slide10.json"},
		},
		{
			name:   "nothing",
			accept: func(string) bool { return false },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var visited []string
			err := Walk(zipPath, tt.accept, func(archive string, file *zip.File) error {
				if archive != zipPath {
					t.Errorf("archive = %s, want %s", archive, zipPath)
				}
				visited = append(visited, file.Name)
				return nil
			})
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			if !slices.Equal(visited, tt.want) {
				t.Errorf("visited = %v, want %v", visited, tt.want)
			}
		})
	}
}

func TestWalk_StopsOnError(t *testing.T) {
	zipPath := makeZip(t, "a.json", "b.json", "c.json")
	stop := errors.New("stop")

	count := 0
	err := Walk(zipPath, nil, func(string, *zip.File) error {
		count++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Errorf("Walk() error = %v, want %v", err, stop)
	}
	if count != 1 {
		t.Errorf("callback called %d times, want 1", count)
	}
}

func TestWalk_UnsafeArchive(t *testing.T) {
	zipPath := makeZip(t, "ok.json", "../evil.json")
	err := Walk(zipPath, nil, func(string, *zip.File) error { return nil })
	if err == nil {
		t.Error("Walk() expected error for path traversal entry")
	}
}

func TestWalk_NotArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.json")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Walk(path, nil, func(string, *zip.File) error { return nil }); err == nil {
		t.Error("Walk() expected error for non-zip file")
	}
}

func TestIsSafePath(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"slide.json", true},
		{"dir/slide.json", true},
		{"dir/..slide.json", true},
		{"/etc/passwd", false},
		{`\windows\system.ini`, false},
		{"../slide.json", false},
		{"dir/../../slide.json", false},
		{`dir\..\slide.json`, false},
	}
	for _, tt := range tests {
		if got := isSafePath(tt.name); got != tt.want {
			t.Errorf("isSafePath(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
