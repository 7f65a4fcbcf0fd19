// Package entry classifies a single filesystem node into a display-ready
// descriptor: name split, icon, and highlight flags.
package entry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/sqtree/internal/icons"
	"github.com/temirov/sqtree/internal/utils"
)

const (
	indentUnit             = "  "
	iconSeparator          = " "
	directorySuffix        = "/"
	extensionSeparator     = "."
	errorClassifyFormat    = "classifying %s: %w"
	errorNegativeDepthText = "negative depth %d for %s"
)

// MatchClass tells a Highlighter which part of a line it is styling.
type MatchClass int

const (
	ClassDefault MatchClass = iota
	ClassTerm
	ClassExtension
)

// Highlighter decorates a fragment of a rendered line.
type Highlighter func(text string, class MatchClass) string

// Descriptor is the display-ready view of one filesystem node.
type Descriptor struct {
	Name             string
	Extension        string
	DisplayName      string
	Path             string
	Depth            int
	IsDirectory      bool
	Icon             string
	TermMatched      bool
	ExtensionMatched bool
}

// Classify stats path and builds its descriptor. Stat failures are returned
// to the caller.
func Classify(path string, depth int, registry *icons.Registry, patterns MatchPatterns) (Descriptor, error) {
	if depth < 0 {
		return Descriptor{}, fmt.Errorf(errorNegativeDepthText, depth, path)
	}
	info, statError := os.Stat(path)
	if statError != nil {
		return Descriptor{}, fmt.Errorf(errorClassifyFormat, path, statError)
	}

	displayName := filepath.Base(path)
	isDirectory := info.IsDir()
	stem, extension := SplitName(displayName, isDirectory)

	return Descriptor{
		Name:             stem,
		Extension:        extension,
		DisplayName:      displayName,
		Path:             utils.CleanPath(path),
		Depth:            depth,
		IsDirectory:      isDirectory,
		Icon:             registry.Resolve(extension, isDirectory),
		TermMatched:      matches(patterns.Term, displayName),
		ExtensionMatched: matches(patterns.Extension, displayName),
	}, nil
}

// SplitName separates a base name into its stem and lowercase extension at
// the last dot. Directories are never split.
func SplitName(displayName string, isDirectory bool) (string, string) {
	if isDirectory {
		return displayName, ""
	}
	separatorIndex := strings.LastIndex(displayName, extensionSeparator)
	if separatorIndex < 0 {
		return displayName, ""
	}
	return displayName[:separatorIndex], strings.ToLower(displayName[separatorIndex+1:])
}

// Indent returns two spaces per depth level.
func (descriptor Descriptor) Indent() string {
	return strings.Repeat(indentUnit, descriptor.Depth)
}

// Format renders the descriptor as one tree line. The stem and the extension
// are highlighted independently; a nil highlighter leaves text unstyled.
func (descriptor Descriptor) Format(highlight Highlighter) string {
	if highlight == nil {
		highlight = plainText
	}
	var line strings.Builder
	line.WriteString(descriptor.Indent())
	line.WriteString(descriptor.Icon)
	line.WriteString(iconSeparator)
	line.WriteString(highlight(descriptor.Name, descriptor.stemClass()))
	if descriptor.IsDirectory {
		line.WriteString(directorySuffix)
		return line.String()
	}
	if len(descriptor.DisplayName) > len(descriptor.Name) {
		line.WriteString(extensionSeparator)
		displayedExtension := descriptor.DisplayName[len(descriptor.Name)+len(extensionSeparator):]
		line.WriteString(highlight(displayedExtension, descriptor.extensionClass()))
	}
	return line.String()
}

// String renders the descriptor without color.
func (descriptor Descriptor) String() string {
	return descriptor.Format(nil)
}

func (descriptor Descriptor) stemClass() MatchClass {
	if descriptor.TermMatched {
		return ClassTerm
	}
	return ClassDefault
}

func (descriptor Descriptor) extensionClass() MatchClass {
	if descriptor.ExtensionMatched {
		return ClassExtension
	}
	return ClassDefault
}

func plainText(text string, _ MatchClass) string {
	return text
}
