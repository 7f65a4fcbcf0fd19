// Package icons loads the icon registry from a traversal root and resolves
// the icon shown next to each entry.
package icons

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/sqtree/internal/utils"
)

const (
	errorReadRegistryFormat    = "reading icon registry %s: %w"
	errorDecodeRegistryFormat  = "%w: decoding %s: %v"
	errorMissingSectionFormat  = "%w: missing %q section"
	errorMissingDefaultFormat  = "%w: missing default icon %q"
	errorInvalidBindingFormat  = "%w: icon %q must map to an extension or a list of extensions"
	errorUnexpectedTokenFormat = "%w: %q must be an object"
	iconsSectionName           = "icons"
	defaultIconsSectionName    = "default_icons"
	folderDefaultKey           = "folder"
	unknownFileDefaultKey      = "unknown_file"
	extensionSeparator         = "."
)

// ErrInvalidRegistry marks a registry file that is malformed or lacks a required key.
var ErrInvalidRegistry = errors.New("invalid icon registry")

// Binding associates one icon with the extensions it represents.
type Binding struct {
	Icon       string
	Extensions []string
}

// Registry resolves icons for entries. Bindings keep the order in which they
// appear in the configuration file; the first matching binding wins.
type Registry struct {
	Bindings    []Binding
	Folder      string
	UnknownFile string
}

type registryDocument struct {
	Icons        json.RawMessage  `json:"icons"`
	DefaultIcons *defaultSettings `json:"default_icons"`
}

type defaultSettings struct {
	Folder      *string `json:"folder"`
	UnknownFile *string `json:"unknown_file"`
}

// Load reads utils.IconConfigFileName from the traversal root.
func Load(rootDirectory string) (*Registry, error) {
	return LoadFile(filepath.Join(rootDirectory, utils.IconConfigFileName))
}

// LoadFile reads and parses a registry file.
//
// #nosec G304
func LoadFile(registryPath string) (*Registry, error) {
	registryContent, readError := os.ReadFile(registryPath)
	if readError != nil {
		return nil, fmt.Errorf(errorReadRegistryFormat, registryPath, readError)
	}
	registry, parseError := Parse(registryContent)
	if parseError != nil {
		return nil, fmt.Errorf(errorReadRegistryFormat, registryPath, parseError)
	}
	return registry, nil
}

// Parse decodes registry JSON.
func Parse(registryContent []byte) (*Registry, error) {
	var document registryDocument
	if decodeError := json.Unmarshal(registryContent, &document); decodeError != nil {
		return nil, fmt.Errorf(errorDecodeRegistryFormat, ErrInvalidRegistry, utils.IconConfigFileName, decodeError)
	}
	if len(document.Icons) == 0 || isNullJSON(document.Icons) {
		return nil, fmt.Errorf(errorMissingSectionFormat, ErrInvalidRegistry, iconsSectionName)
	}
	if document.DefaultIcons == nil {
		return nil, fmt.Errorf(errorMissingSectionFormat, ErrInvalidRegistry, defaultIconsSectionName)
	}
	if document.DefaultIcons.Folder == nil {
		return nil, fmt.Errorf(errorMissingDefaultFormat, ErrInvalidRegistry, folderDefaultKey)
	}
	if document.DefaultIcons.UnknownFile == nil {
		return nil, fmt.Errorf(errorMissingDefaultFormat, ErrInvalidRegistry, unknownFileDefaultKey)
	}

	bindings, bindingsError := decodeBindings(document.Icons)
	if bindingsError != nil {
		return nil, bindingsError
	}

	return &Registry{
		Bindings:    bindings,
		Folder:      *document.DefaultIcons.Folder,
		UnknownFile: *document.DefaultIcons.UnknownFile,
	}, nil
}

// decodeBindings walks the icons object token by token; map decoding would
// lose the key order that decides ties.
func decodeBindings(iconsSection json.RawMessage) ([]Binding, error) {
	decoder := json.NewDecoder(bytes.NewReader(iconsSection))
	openingToken, tokenError := decoder.Token()
	if tokenError != nil {
		return nil, fmt.Errorf(errorDecodeRegistryFormat, ErrInvalidRegistry, iconsSectionName, tokenError)
	}
	if delimiter, isDelimiter := openingToken.(json.Delim); !isDelimiter || delimiter != '{' {
		return nil, fmt.Errorf(errorUnexpectedTokenFormat, ErrInvalidRegistry, iconsSectionName)
	}

	var bindings []Binding
	for decoder.More() {
		keyToken, keyError := decoder.Token()
		if keyError != nil {
			return nil, fmt.Errorf(errorDecodeRegistryFormat, ErrInvalidRegistry, iconsSectionName, keyError)
		}
		icon, _ := keyToken.(string)

		var rawExtensions json.RawMessage
		if valueError := decoder.Decode(&rawExtensions); valueError != nil {
			return nil, fmt.Errorf(errorDecodeRegistryFormat, ErrInvalidRegistry, iconsSectionName, valueError)
		}
		extensions, extensionsError := decodeExtensions(rawExtensions)
		if extensionsError != nil {
			return nil, fmt.Errorf(errorInvalidBindingFormat, ErrInvalidRegistry, icon)
		}
		bindings = append(bindings, Binding{Icon: icon, Extensions: extensions})
	}
	return bindings, nil
}

func decodeExtensions(rawExtensions json.RawMessage) ([]string, error) {
	if isNullJSON(rawExtensions) {
		return nil, errors.New("null extension binding")
	}
	var singleExtension string
	if json.Unmarshal(rawExtensions, &singleExtension) == nil {
		return []string{normalizeExtension(singleExtension)}, nil
	}
	var extensionList []string
	if listError := json.Unmarshal(rawExtensions, &extensionList); listError != nil {
		return nil, listError
	}
	normalized := make([]string, 0, len(extensionList))
	for _, extension := range extensionList {
		normalized = append(normalized, normalizeExtension(extension))
	}
	return normalized, nil
}

func isNullJSON(rawValue json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(rawValue), []byte("null"))
}

func normalizeExtension(extension string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(extension), extensionSeparator))
}

// Resolve returns the icon for an entry. Directories always get the folder
// default; files without a matching binding get the unknown-file default.
func (registry *Registry) Resolve(extension string, isDirectory bool) string {
	if isDirectory {
		return registry.Folder
	}
	if extension == "" {
		return registry.UnknownFile
	}
	for _, binding := range registry.Bindings {
		for _, boundExtension := range binding.Extensions {
			if boundExtension == extension {
				return binding.Icon
			}
		}
	}
	return registry.UnknownFile
}
