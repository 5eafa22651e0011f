package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	m "gooze.dev/pkg/morph/internal/model"
)

func TestLocalSourceFSAdapter_Get(t *testing.T) {
	ctx := context.Background()

	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "math.js"), "var x = 1;\n")
	writeTestFile(t, filepath.Join(root, "math.test.js"), "test();\n")
	writeTestFile(t, filepath.Join(root, "README.md"), "# readme\n")
	writeTestFile(t, filepath.Join(root, "lib", "util.mjs"), "var y = 2;\n")
	writeTestFile(t, filepath.Join(root, "lib", "util.spec.mjs"), "test();\n")
	writeTestFile(t, filepath.Join(root, "lib", "generated.js"), "var z = 3;\n")
	writeTestFile(t, filepath.Join(root, "node_modules", "dep", "index.js"), "var d = 4;\n")

	t.Run("non recursive skips nested files", func(t *testing.T) {
		sources, err := NewLocalSourceFSAdapter().Get(ctx, []m.Path{m.Path(root)})
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}

		if len(sources) != 1 {
			t.Fatalf("Get() returned %d sources, want 1", len(sources))
		}

		origin := sources[0].Origin
		if origin.FullPath != m.Path(filepath.Join(root, "math.js")) {
			t.Fatalf("Get() origin = %s", origin.FullPath)
		}

		if sources[0].Test == nil || sources[0].Test.FullPath != m.Path(filepath.Join(root, "math.test.js")) {
			t.Fatalf("Get() did not pair math.js with its test file: %+v", sources[0].Test)
		}

		if origin.Hash == "" {
			t.Fatalf("Get() left the origin hash empty")
		}
	})

	t.Run("recursive pattern walks nested directories", func(t *testing.T) {
		sources, err := NewLocalSourceFSAdapter().Get(ctx, []m.Path{m.Path(root + "/...")})
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}

		want := []string{
			filepath.Join(root, "lib", "generated.js"),
			filepath.Join(root, "lib", "util.mjs"),
			filepath.Join(root, "math.js"),
		}

		if got := originPaths(sources); !equalStrings(got, want) {
			t.Fatalf("Get() = %v, want %v", got, want)
		}
	})

	t.Run("exclude patterns filter files", func(t *testing.T) {
		sources, err := NewLocalSourceFSAdapter().Get(ctx, []m.Path{m.Path(root + "/...")}, `^generated\.js$`, "util")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}

		want := []string{filepath.Join(root, "math.js")}
		if got := originPaths(sources); !equalStrings(got, want) {
			t.Fatalf("Get() = %v, want %v", got, want)
		}
	})

	t.Run("overlapping patterns yield each file once", func(t *testing.T) {
		sources, err := NewLocalSourceFSAdapter().Get(ctx, []m.Path{
			m.Path(root + "/..."),
			m.Path(filepath.Join(root, "math.js")),
		})
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}

		if len(sources) != 3 {
			t.Fatalf("Get() returned %d sources, want 3", len(sources))
		}
	})

	t.Run("invalid exclude pattern", func(t *testing.T) {
		if _, err := NewLocalSourceFSAdapter().Get(ctx, []m.Path{m.Path(root)}, "("); err == nil {
			t.Fatalf("Get() expected error for invalid regex")
		}
	})

	t.Run("missing path", func(t *testing.T) {
		if _, err := NewLocalSourceFSAdapter().Get(ctx, []m.Path{m.Path(filepath.Join(root, "nope"))}); err == nil {
			t.Fatalf("Get() expected error for missing path")
		}
	})
}

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	path := filepath.Join(t.TempDir(), "main.js")
	content := "function main() {}\n"
	writeTestFile(t, path, content)

	got, err := adapter.ReadFile(context.Background(), m.Path(path))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(got) != content {
		t.Fatalf("ReadFile() = %q, want %q", string(got), content)
	}
}

func TestLocalSourceFSAdapter_HashFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	path := filepath.Join(t.TempDir(), "main.js")
	content := []byte("function main() {}\n")
	writeTestFile(t, path, string(content))

	expected := fmt.Sprintf("%x", sha256.Sum256(content))

	hash, err := adapter.HashFile(context.Background(), m.Path(path))
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}

	if hash != expected {
		t.Fatalf("HashFile() = %s, want %s", hash, expected)
	}
}

func TestLocalSourceFSAdapter_DetectTestFile(t *testing.T) {
	ctx := context.Background()
	adapter := NewLocalSourceFSAdapter()
	root := t.TempDir()

	tests := []struct {
		name   string
		files  []string
		source string
		want   string
	}{
		{"test suffix", []string{"calc.js", "calc.test.js"}, "calc.js", "calc.test.js"},
		{"spec suffix", []string{"parse.cjs", "parse.spec.cjs"}, "parse.cjs", "parse.spec.cjs"},
		{"no companion", []string{"lonely.js"}, "lonely.js", ""},
		{"test file itself", []string{"calc.test.js"}, "calc.test.js", ""},
		{"not a script", []string{"notes.txt"}, "notes.txt", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, file := range tt.files {
				writeTestFile(t, filepath.Join(root, file), "\n")
			}

			got, err := adapter.DetectTestFile(ctx, m.Path(filepath.Join(root, tt.source)))
			if err != nil {
				t.Fatalf("DetectTestFile() error = %v", err)
			}

			want := m.Path("")
			if tt.want != "" {
				want = m.Path(filepath.Join(root, tt.want))
			}

			if got != want {
				t.Fatalf("DetectTestFile() = %q, want %q", got, want)
			}
		})
	}
}

func TestLocalSourceFSAdapter_FindProjectRoot(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "package.json"), "{}\n")

	source := filepath.Join(root, "src", "deep", "math.js")
	writeTestFile(t, source, "var x = 1;\n")

	got, err := adapter.FindProjectRoot(context.Background(), m.Path(source))
	if err != nil {
		t.Fatalf("FindProjectRoot() error = %v", err)
	}

	if got != m.Path(root) {
		t.Fatalf("FindProjectRoot() = %s, want %s", got, root)
	}
}

func TestLocalSourceFSAdapter_CreateTempDirAndRemoveAll(t *testing.T) {
	ctx := context.Background()
	adapter := NewLocalSourceFSAdapter()

	dir, err := adapter.CreateTempDir(ctx, "morph-test-*")
	if err != nil {
		t.Fatalf("CreateTempDir() error = %v", err)
	}

	if _, err := os.Stat(string(dir)); err != nil {
		t.Fatalf("temp dir missing: %v", err)
	}

	if err := adapter.RemoveAll(ctx, dir); err != nil {
		t.Fatalf("RemoveAll() error = %v", err)
	}

	if _, err := os.Stat(string(dir)); !os.IsNotExist(err) {
		t.Fatalf("temp dir still exists after RemoveAll")
	}
}

func TestLocalSourceFSAdapter_CopyDirAndWriteFile(t *testing.T) {
	ctx := context.Background()
	adapter := NewLocalSourceFSAdapter()

	src := t.TempDir()
	writeTestFile(t, filepath.Join(src, "package.json"), "{}\n")
	writeTestFile(t, filepath.Join(src, "src", "math.js"), "var x = 1;\n")
	writeTestFile(t, filepath.Join(src, "node_modules", "dep", "index.js"), "module.exports = 1;\n")
	writeTestFile(t, filepath.Join(src, ".git", "HEAD"), "ref\n")

	dst := filepath.Join(t.TempDir(), "copy")

	if err := adapter.CopyDir(ctx, m.Path(src), m.Path(dst)); err != nil {
		t.Fatalf("CopyDir() error = %v", err)
	}

	copied, err := os.ReadFile(filepath.Join(dst, "src", "math.js"))
	if err != nil || string(copied) != "var x = 1;\n" {
		t.Fatalf("copied file = %q, %v", copied, err)
	}

	info, err := os.Lstat(filepath.Join(dst, "node_modules"))
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		t.Fatalf("node_modules should be linked, got %v, %v", info, err)
	}

	if _, err := os.Stat(filepath.Join(dst, ".git")); !os.IsNotExist(err) {
		t.Fatalf(".git should not be copied")
	}

	target := filepath.Join(dst, "src", "math.js")
	if err := adapter.WriteFile(ctx, m.Path(target), []byte("var x = -1;\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	original, _ := os.ReadFile(filepath.Join(src, "src", "math.js"))
	if string(original) != "var x = 1;\n" {
		t.Fatalf("writing the copy changed the original: %q", original)
	}
}

func TestLocalSourceFSAdapter_PathHelpers(t *testing.T) {
	ctx := context.Background()
	adapter := NewLocalSourceFSAdapter()

	rel, err := adapter.RelPath(ctx, "/proj", "/proj/src/math.js")
	if err != nil {
		t.Fatalf("RelPath() error = %v", err)
	}

	if rel != m.Path(filepath.Join("src", "math.js")) {
		t.Fatalf("RelPath() = %s", rel)
	}

	if got := adapter.JoinPath(ctx, "/tmp", "copy", "src"); got != m.Path(filepath.Join("/tmp", "copy", "src")) {
		t.Fatalf("JoinPath() = %s", got)
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func originPaths(sources []m.Source) []string {
	paths := make([]string, 0, len(sources))
	for _, source := range sources {
		paths = append(paths, string(source.Origin.FullPath))
	}

	return paths
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
