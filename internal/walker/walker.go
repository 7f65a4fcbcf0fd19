// Package walker enumerates a directory tree lazily in depth-first pre-order,
// bounded by a maximum depth and filtered by the traversal root's ignore list.
package walker

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/sqtree/internal/config"
	"github.com/temirov/sqtree/internal/entry"
	"github.com/temirov/sqtree/internal/icons"
	"github.com/temirov/sqtree/internal/utils"
)

const (
	errorLoadRegistryFormat  = "loading icon registry from %s: %w"
	errorLoadIgnoreFormat    = "loading ignore list from %s: %w"
	errorReadDirectoryFormat = "reading directory %s: %w"
	errorNegativeMaxDepth    = "maximum depth must not be negative, got %d"
)

// Options configures a traversal. Root is the directory holding config.json
// and .sqignore; it need not be the directory being walked.
type Options struct {
	Root     string
	MaxDepth int
	Patterns entry.MatchPatterns
	Logger   *zap.Logger
}

// Walker carries the resources loaded for one traversal root.
type Walker struct {
	maxDepth   int
	patterns   entry.MatchPatterns
	registry   *icons.Registry
	ignoreList config.IgnoreList
	logger     *zap.Logger
}

// New loads the icon registry and the ignore list from options.Root.
func New(options Options) (*Walker, error) {
	if options.MaxDepth < 0 {
		return nil, fmt.Errorf(errorNegativeMaxDepth, options.MaxDepth)
	}
	registry, registryError := icons.Load(options.Root)
	if registryError != nil {
		return nil, fmt.Errorf(errorLoadRegistryFormat, options.Root, registryError)
	}
	ignoreList, ignoreError := config.LoadIgnoreList(options.Root)
	if ignoreError != nil {
		return nil, fmt.Errorf(errorLoadIgnoreFormat, options.Root, ignoreError)
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{
		maxDepth:   options.MaxDepth,
		patterns:   options.Patterns,
		registry:   registry,
		ignoreList: ignoreList,
		logger:     logger,
	}, nil
}

// Walk loads the traversal root and walks start from depth zero. A loading
// failure is yielded as the only element.
func Walk(start string, options Options) iter.Seq2[entry.Descriptor, error] {
	treeWalker, newError := New(options)
	if newError != nil {
		return func(yield func(entry.Descriptor, error) bool) {
			yield(entry.Descriptor{}, newError)
		}
	}
	return treeWalker.Walk(start, 0)
}

// Walk yields start itself when depth is zero, followed by its surviving
// children and their subtrees. Children are listed only below the maximum
// depth. The first error ends the sequence.
func (treeWalker *Walker) Walk(start string, depth int) iter.Seq2[entry.Descriptor, error] {
	return func(yield func(entry.Descriptor, error) bool) {
		if depth == 0 {
			rootDescriptor, classifyError := entry.Classify(start, 0, treeWalker.registry, entry.MatchPatterns{})
			if classifyError != nil {
				yield(entry.Descriptor{}, classifyError)
				return
			}
			if !yield(rootDescriptor, nil) {
				return
			}
		}
		treeWalker.descend(start, depth, yield)
	}
}

// descend reports false once the consumer stopped or an error was yielded.
func (treeWalker *Walker) descend(directoryPath string, depth int, yield func(entry.Descriptor, error) bool) bool {
	if depth >= treeWalker.maxDepth {
		return true
	}

	// os.ReadDir returns entries sorted by name.
	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		yield(entry.Descriptor{}, fmt.Errorf(errorReadDirectoryFormat, directoryPath, readError))
		return false
	}

	for _, directoryEntry := range directoryEntries {
		childName := directoryEntry.Name()
		if treeWalker.skip(childName) {
			treeWalker.logger.Debug("skipping entry", zap.String("path", utils.CleanPath(directoryPath, childName)))
			continue
		}

		childPath := filepath.Join(directoryPath, childName)
		childDescriptor, classifyError := entry.Classify(childPath, depth+1, treeWalker.registry, treeWalker.patterns)
		if classifyError != nil {
			yield(entry.Descriptor{}, classifyError)
			return false
		}
		if !yield(childDescriptor, nil) {
			return false
		}
		if childDescriptor.IsDirectory {
			treeWalker.logger.Debug("descending", zap.String("path", childDescriptor.Path), zap.Int("depth", depth+1))
			if !treeWalker.descend(childPath, depth+1, yield) {
				return false
			}
		}
	}
	return true
}

func (treeWalker *Walker) skip(name string) bool {
	return utils.HasHiddenPrefix(name) || treeWalker.ignoreList.Contains(name)
}
