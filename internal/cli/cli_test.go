package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/temirov/sqtree/internal/config"
	"github.com/temirov/sqtree/internal/entry"
	"github.com/temirov/sqtree/internal/services/clipboard"
	"github.com/temirov/sqtree/internal/utils"
)

const testRegistryJSON = `{"icons": {"T": ["txt", "md"]}, "default_icons": {"folder": "D", "unknown_file": "U"}}`

type recordingCopier struct {
	copies []string
}

func (copier *recordingCopier) Copy(text string) error {
	copier.copies = append(copier.copies, text)
	return nil
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// createProject builds a traversal root with the scenario layout: two visible
// files, a hidden file and an ignored node_modules directory.
func createProject(t *testing.T) string {
	t.Helper()
	projectDirectory := filepath.Join(t.TempDir(), "project")
	writeFile(t, filepath.Join(projectDirectory, utils.IconConfigFileName), testRegistryJSON)
	writeFile(t, filepath.Join(projectDirectory, utils.IgnoreFileName), "node_modules\n"+utils.IconConfigFileName+"\n")
	writeFile(t, filepath.Join(projectDirectory, "a.txt"), "a")
	writeFile(t, filepath.Join(projectDirectory, "b.md"), "b")
	writeFile(t, filepath.Join(projectDirectory, ".hidden"), "h")
	writeFile(t, filepath.Join(projectDirectory, "node_modules", "pkg", "index.js"), "x")
	writeFile(t, filepath.Join(projectDirectory, "docs", "guide.md"), "g")
	return projectDirectory
}

// isolateConfiguration points the home and working directories at empty
// temporary directories so no user configuration leaks into a test.
func isolateConfiguration(t *testing.T) string {
	t.Helper()
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	t.Setenv("USERPROFILE", homeDirectory)
	workingDirectory := t.TempDir()
	t.Chdir(workingDirectory)
	return workingDirectory
}

func executeCommand(t *testing.T, copier clipboard.Copier, arguments ...string) (string, error) {
	t.Helper()
	command := createRootCommand(commandEnvironment{copier: copier})
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	command.SetOut(&stdout)
	command.SetErr(&stderr)
	command.SetArgs(arguments)
	executionError := command.Execute()
	return stdout.String(), executionError
}

func TestTreeCommandRendersFilteredTree(t *testing.T) {
	isolateConfiguration(t)
	projectDirectory := createProject(t)

	testCases := []struct {
		name      string
		arguments []string
		expected  string
	}{
		{
			name:      "depth one",
			arguments: []string{projectDirectory, "--color", "never", "-d", "1"},
			expected:  "D project/\n  T a.txt\n  T b.md\n  D docs/\n",
		},
		{
			name:      "default depth descends",
			arguments: []string{projectDirectory, "--color", "never"},
			expected:  "D project/\n  T a.txt\n  T b.md\n  D docs/\n    T guide.md\n",
		},
		{
			name:      "depth zero shows only the root",
			arguments: []string{projectDirectory, "--color=never", "--depth=0"},
			expected:  "D project/\n",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			rendered, err := executeCommand(t, &recordingCopier{}, testCase.arguments...)
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			if rendered != testCase.expected {
				t.Fatalf("got %q want %q", rendered, testCase.expected)
			}
		})
	}
}

func TestTreeCommandHighlightsMatches(t *testing.T) {
	isolateConfiguration(t)
	projectDirectory := createProject(t)

	rendered, err := executeCommand(t, &recordingCopier{}, projectDirectory, "--color", "always", "-d", "1", "--term", "^a")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(rendered, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("unexpected lines %q", lines)
	}
	if !strings.Contains(lines[1], "\x1b[") {
		t.Fatalf("expected a.txt to be highlighted, got %q", lines[1])
	}
	if strings.Contains(lines[2], "\x1b[") {
		t.Fatalf("expected b.md to stay plain, got %q", lines[2])
	}
}

func TestTreeCommandRejectsInvalidPatternBeforeOutput(t *testing.T) {
	isolateConfiguration(t)
	projectDirectory := createProject(t)

	rendered, err := executeCommand(t, &recordingCopier{}, projectDirectory, "--ext", "[unclosed")
	if !errors.Is(err, entry.ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
	if rendered != "" {
		t.Fatalf("expected no output, got %q", rendered)
	}
}

func TestTreeCommandRequiresIgnoreFile(t *testing.T) {
	isolateConfiguration(t)
	projectDirectory := createProject(t)
	if err := os.Remove(filepath.Join(projectDirectory, utils.IgnoreFileName)); err != nil {
		t.Fatalf("remove ignore file: %v", err)
	}

	rendered, err := executeCommand(t, &recordingCopier{}, projectDirectory)
	if !errors.Is(err, config.ErrIgnoreFile) {
		t.Fatalf("expected ErrIgnoreFile, got %v", err)
	}
	if rendered != "" {
		t.Fatalf("expected no output, got %q", rendered)
	}
}

func TestTreeCommandRejectsInvalidStartPaths(t *testing.T) {
	isolateConfiguration(t)
	projectDirectory := createProject(t)

	for _, startPath := range []string{
		filepath.Join(projectDirectory, "absent"),
		filepath.Join(projectDirectory, "a.txt"),
	} {
		if _, err := executeCommand(t, &recordingCopier{}, startPath); err == nil {
			t.Fatalf("expected an error for %s", startPath)
		}
	}
}

func TestTreeCommandUsesSeparateTraversalRoot(t *testing.T) {
	isolateConfiguration(t)
	resourcesDirectory := t.TempDir()
	writeFile(t, filepath.Join(resourcesDirectory, utils.IconConfigFileName), `{"icons": {}, "default_icons": {"folder": "F", "unknown_file": "?"}}`)
	writeFile(t, filepath.Join(resourcesDirectory, utils.IgnoreFileName), "skip.txt\n")
	targetDirectory := filepath.Join(t.TempDir(), "target")
	writeFile(t, filepath.Join(targetDirectory, "keep.txt"), "k")
	writeFile(t, filepath.Join(targetDirectory, "skip.txt"), "s")

	rendered, err := executeCommand(t, &recordingCopier{}, targetDirectory, "--root", resourcesDirectory, "--color", "never")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if rendered != "F target/\n  ? keep.txt\n" {
		t.Fatalf("unexpected output %q", rendered)
	}
}

func TestTreeCommandCopiesPlainTree(t *testing.T) {
	isolateConfiguration(t)
	projectDirectory := createProject(t)
	copier := &recordingCopier{}

	rendered, err := executeCommand(t, copier, projectDirectory, "--color", "always", "-d", "1", "-t", "^b", "--copy")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(copier.copies) != 1 {
		t.Fatalf("expected one clipboard copy, got %d", len(copier.copies))
	}
	if copier.copies[0] != "D project/\n  T a.txt\n  T b.md\n  D docs/\n" {
		t.Fatalf("unexpected clipboard content %q", copier.copies[0])
	}
	if !strings.Contains(rendered, "\x1b[") {
		t.Fatalf("expected colored stdout, got %q", rendered)
	}
}

func TestTreeCommandAppliesApplicationConfiguration(t *testing.T) {
	workingDirectory := isolateConfiguration(t)
	projectDirectory := createProject(t)
	writeFile(t, filepath.Join(workingDirectory, utils.LocalConfigFileName), "depth: 1\ncolor: never\n")

	rendered, err := executeCommand(t, &recordingCopier{}, projectDirectory)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if rendered != "D project/\n  T a.txt\n  T b.md\n  D docs/\n" {
		t.Fatalf("configuration depth not applied: %q", rendered)
	}

	rendered, err = executeCommand(t, &recordingCopier{}, projectDirectory, "--depth", "0")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if rendered != "D project/\n" {
		t.Fatalf("explicit flag must override configuration: %q", rendered)
	}
}

func TestTreeCommandRejectsInvalidConfiguredColor(t *testing.T) {
	workingDirectory := isolateConfiguration(t)
	projectDirectory := createProject(t)
	writeFile(t, filepath.Join(workingDirectory, utils.LocalConfigFileName), "color: rainbow\n")

	if _, err := executeCommand(t, &recordingCopier{}, projectDirectory); err == nil {
		t.Fatalf("expected an error for an invalid configured color")
	}
}

func TestTreeCommandRejectsInvalidColorFlag(t *testing.T) {
	isolateConfiguration(t)
	projectDirectory := createProject(t)

	if _, err := executeCommand(t, &recordingCopier{}, projectDirectory, "--color", "rainbow"); err == nil {
		t.Fatalf("expected an error for an invalid color flag")
	}
}

func TestInitCommandScaffoldsTraversalRoot(t *testing.T) {
	isolateConfiguration(t)
	targetDirectory := filepath.Join(t.TempDir(), "fresh")

	rendered, err := executeCommand(t, &recordingCopier{}, "init", targetDirectory)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	for _, fileName := range []string{utils.IconConfigFileName, utils.IgnoreFileName} {
		if !strings.Contains(rendered, filepath.Join(targetDirectory, fileName)) {
			t.Fatalf("init output does not mention %s: %q", fileName, rendered)
		}
	}

	if _, err := executeCommand(t, &recordingCopier{}, "init", targetDirectory); err == nil {
		t.Fatalf("expected init to refuse overwriting without --force")
	}
	if _, err := executeCommand(t, &recordingCopier{}, "init", targetDirectory, "--force"); err != nil {
		t.Fatalf("init --force: %v", err)
	}

	rendered, err = executeCommand(t, &recordingCopier{}, targetDirectory, "--color", "never")
	if err != nil {
		t.Fatalf("tree after init: %v", err)
	}
	if !strings.Contains(rendered, "config.json") {
		t.Fatalf("expected the scaffolded registry in the tree, got %q", rendered)
	}
}

func TestVersionFlag(t *testing.T) {
	isolateConfiguration(t)
	rendered, err := executeCommand(t, &recordingCopier{}, "--version")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(rendered, "sqtree version: ") {
		t.Fatalf("unexpected version output %q", rendered)
	}
}
