package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/sqtree/internal/utils"
)

const (
	defaultIconConfigurationTemplate = `{
  "icons": {
    "🐹": "go",
    "🐍": ["py", "pyc", "pyi"],
    "📜": ["js", "mjs", "cjs", "ts", "tsx", "jsx"],
    "🦀": "rs",
    "☕": ["java", "kt", "scala"],
    "🐚": ["sh", "bash", "zsh", "fish"],
    "🌐": ["html", "htm", "css", "scss"],
    "📝": ["md", "rst", "txt"],
    "🔧": ["json", "yaml", "yml", "toml", "ini", "cfg"],
    "🖼️": ["png", "jpg", "jpeg", "gif", "svg", "webp", "ico"],
    "🎵": ["mp3", "wav", "flac", "ogg"],
    "🎬": ["mp4", "mkv", "avi", "mov"],
    "📦": ["zip", "tar", "gz", "bz2", "xz", "7z", "rar"],
    "📕": "pdf",
    "🗄️": ["db", "sqlite", "sql"]
  },
  "default_icons": {
    "folder": "📁",
    "unknown_file": "📄"
  }
}
`
	defaultIgnoreTemplate = `node_modules
__pycache__
vendor
venv
dist
build
`
	scaffoldFilePermissions = 0o644
)

// InitOptions controls how a traversal root is scaffolded.
type InitOptions struct {
	Directory string
	Force     bool
}

// InitializeTraversalRoot writes the default icon registry and ignore file
// into the directory and returns the written paths. Existing files are kept
// unless Force is set; nothing is written when any target already exists.
func InitializeTraversalRoot(options InitOptions) ([]string, error) {
	directory := options.Directory
	if directory == "" {
		current, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determine working directory for initialization: %w", err)
		}
		directory = current
	}
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", directory, err)
	}

	scaffold := []struct {
		path    string
		content string
	}{
		{path: filepath.Join(directory, utils.IconConfigFileName), content: defaultIconConfigurationTemplate},
		{path: filepath.Join(directory, utils.IgnoreFileName), content: defaultIgnoreTemplate},
	}

	for _, target := range scaffold {
		if _, err := os.Stat(target.path); err == nil {
			if !options.Force {
				return nil, fmt.Errorf("file already exists at %s", target.path)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("inspect path %s: %w", target.path, err)
		}
	}

	writtenPaths := make([]string, 0, len(scaffold))
	for _, target := range scaffold {
		if err := os.WriteFile(target.path, []byte(target.content), scaffoldFilePermissions); err != nil {
			return writtenPaths, fmt.Errorf("write %s: %w", target.path, err)
		}
		writtenPaths = append(writtenPaths, target.path)
	}
	return writtenPaths, nil
}
