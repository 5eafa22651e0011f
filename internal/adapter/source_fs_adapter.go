// Package adapter contains the language driver and the infrastructure adapters
// used by the morph workflow.
package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/emirpasic/gods/sets/linkedhashset"
	m "gooze.dev/pkg/morph/internal/model"
)

// ScriptExtensions lists the file extensions treated as script sources.
var ScriptExtensions = []string{".js", ".mjs", ".cjs"}

var testSuffixes = []string{".test", ".spec"}

// SourceFSAdapter abstracts the filesystem operations the domain layer needs
// to discover sources and to prepare scratch copies of a project.
//
//nolint:interfacebloat // A richer interface keeps workflow logic decoupled from os/fs.
type SourceFSAdapter interface {
	// Get resolves path patterns ("dir", "dir/...", "file.js") into sources,
	// skipping test files and files matching any exclude regex.
	Get(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Source, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// HashFile returns a SHA-256 fingerprint for the file at path.
	HashFile(ctx context.Context, path m.Path) (string, error)

	// DetectTestFile finds the companion *.test.js / *.spec.js file of a source.
	DetectTestFile(ctx context.Context, sourcePath m.Path) (m.Path, error)

	// FindProjectRoot searches for package.json walking up the directory tree.
	FindProjectRoot(ctx context.Context, startPath m.Path) (m.Path, error)

	// CreateTempDir creates a temporary directory for mutation testing.
	CreateTempDir(ctx context.Context, pattern string) (m.Path, error)

	// RemoveAll removes a directory and all its contents.
	RemoveAll(ctx context.Context, path m.Path) error

	// CopyDir recursively copies a directory tree.
	CopyDir(ctx context.Context, src, dst m.Path) error

	// WriteFile writes content to a file with the given permissions.
	WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error

	// RelPath returns the relative path from base to target.
	RelPath(ctx context.Context, base, target m.Path) (m.Path, error)

	// JoinPath joins path elements into a single path.
	JoinPath(ctx context.Context, elem ...string) m.Path
}

// LocalSourceFSAdapter implements SourceFSAdapter on the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get resolves path patterns into sources sorted by path.
func (a *LocalSourceFSAdapter) Get(ctx context.Context, paths []m.Path, exclude ...string) ([]m.Source, error) {
	filters, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	if len(paths) == 0 {
		paths = []m.Path{"./..."}
	}

	found := linkedhashset.New()

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		root, recursive := splitPattern(string(path))
		if err := a.collect(root, recursive, filters, found); err != nil {
			return nil, err
		}
	}

	files := make([]string, 0, found.Size())
	for _, value := range found.Values() {
		files = append(files, value.(string))
	}

	sort.Strings(files)

	sources := make([]m.Source, 0, len(files))

	for _, file := range files {
		source, err := a.buildSource(ctx, m.Path(file))
		if err != nil {
			return nil, err
		}

		sources = append(sources, source)
	}

	return sources, nil
}

func compileExcludes(exclude []string) ([]*regexp.Regexp, error) {
	filters := make([]*regexp.Regexp, 0, len(exclude))

	for _, pattern := range exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		filters = append(filters, re)
	}

	return filters, nil
}

func splitPattern(pattern string) (string, bool) {
	if pattern == "..." {
		return ".", true
	}

	if strings.HasSuffix(pattern, "/...") {
		root := strings.TrimSuffix(pattern, "/...")
		if root == "" {
			root = "."
		}

		return root, true
	}

	return pattern, false
}

func (a *LocalSourceFSAdapter) collect(root string, recursive bool, filters []*regexp.Regexp, found *linkedhashset.Set) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("stat %s: %w", root, err)
	}

	if !info.IsDir() {
		if isScriptSource(root) && !excluded(root, filters) {
			found.Add(filepath.Clean(root))
		}

		return nil
	}

	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}

			if !recursive || skippedDir(entry.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		if isScriptSource(path) && !excluded(path, filters) {
			found.Add(filepath.Clean(path))
		}

		return nil
	})
}

func skippedDir(name string) bool {
	return name == "node_modules" || name == ".git" || strings.HasPrefix(name, ".morph")
}

func excluded(path string, filters []*regexp.Regexp) bool {
	for _, re := range filters {
		if re.MatchString(path) || re.MatchString(filepath.Base(path)) {
			return true
		}
	}

	return false
}

func isScriptSource(path string) bool {
	ext := filepath.Ext(path)
	if !hasScriptExtension(ext) {
		return false
	}

	return !isTestFile(path)
}

func hasScriptExtension(ext string) bool {
	for _, candidate := range ScriptExtensions {
		if ext == candidate {
			return true
		}
	}

	return false
}

func isTestFile(path string) bool {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for _, suffix := range testSuffixes {
		if strings.HasSuffix(stem, suffix) {
			return true
		}
	}

	return false
}

func (a *LocalSourceFSAdapter) buildSource(ctx context.Context, path m.Path) (m.Source, error) {
	hash, err := a.HashFile(ctx, path)
	if err != nil {
		return m.Source{}, fmt.Errorf("hash %s: %w", path, err)
	}

	source := m.Source{Origin: a.newFile(path, hash)}

	testPath, err := a.DetectTestFile(ctx, path)
	if err != nil {
		return m.Source{}, fmt.Errorf("detect test for %s: %w", path, err)
	}

	if testPath != "" {
		testHash, err := a.HashFile(ctx, testPath)
		if err != nil {
			return m.Source{}, fmt.Errorf("hash %s: %w", testPath, err)
		}

		source.Test = a.newFile(testPath, testHash)
	}

	return source, nil
}

func (a *LocalSourceFSAdapter) newFile(path m.Path, hash string) *m.File {
	full, err := filepath.Abs(string(path))
	if err != nil {
		full = string(path)
	}

	return &m.File{FullPath: m.Path(full), ShortPath: path, Hash: hash}
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(_ context.Context, path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(_ context.Context, path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// DetectTestFile finds the companion test file next to the source.
func (a *LocalSourceFSAdapter) DetectTestFile(_ context.Context, sourcePath m.Path) (m.Path, error) {
	source := string(sourcePath)

	ext := filepath.Ext(source)
	if !hasScriptExtension(ext) || isTestFile(source) {
		return "", nil
	}

	stem := strings.TrimSuffix(source, ext)

	for _, suffix := range testSuffixes {
		testFile := stem + suffix + ext

		_, err := os.Stat(testFile)
		if err == nil {
			return m.Path(testFile), nil
		}

		if !os.IsNotExist(err) {
			return "", err
		}
	}

	return "", nil
}

// FindProjectRoot searches for package.json walking up the directory tree.
func (a *LocalSourceFSAdapter) FindProjectRoot(_ context.Context, startPath m.Path) (m.Path, error) {
	dir := filepath.Dir(string(startPath))

	for {
		manifest := filepath.Join(dir, "package.json")
		if _, err := os.Stat(manifest); err == nil {
			return m.Path(dir), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("package.json not found in any parent directory of %s", startPath)
		}

		dir = parent
	}
}

// CreateTempDir creates a temporary directory for mutation testing.
func (a *LocalSourceFSAdapter) CreateTempDir(_ context.Context, pattern string) (m.Path, error) {
	tmpDir, err := os.MkdirTemp("", pattern)
	if err != nil {
		return "", err
	}

	return m.Path(tmpDir), nil
}

// RemoveAll removes a directory and all its contents.
func (a *LocalSourceFSAdapter) RemoveAll(_ context.Context, path m.Path) error {
	return os.RemoveAll(string(path))
}

// CopyDir recursively copies a directory tree. node_modules is linked rather
// than copied so the scratch project resolves the same dependencies.
func (a *LocalSourceFSAdapter) CopyDir(_ context.Context, src, dst m.Path) error {
	return filepath.Walk(string(src), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(string(src), path)
		if err != nil {
			return err
		}

		targetPath := filepath.Join(string(dst), relPath)

		if info.IsDir() {
			switch info.Name() {
			case ".git":
				return filepath.SkipDir
			case "node_modules":
				if err := os.Symlink(path, targetPath); err != nil {
					return err
				}

				return filepath.SkipDir
			}

			return os.MkdirAll(targetPath, info.Mode())
		}

		return a.copyFile(path, targetPath, info.Mode())
	})
}

func (a *LocalSourceFSAdapter) copyFile(src, dst string, mode os.FileMode) error {
	// #nosec G304 - src is internal project file path, not user input
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}

	defer func() { _ = sourceFile.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return err
	}

	// #nosec G304 - dst is internal destination path, not user input
	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	defer func() { _ = destFile.Close() }()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return os.Chmod(dst, mode)
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(_ context.Context, path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(_ context.Context, base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// JoinPath joins path elements into a single path.
func (a *LocalSourceFSAdapter) JoinPath(_ context.Context, elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
