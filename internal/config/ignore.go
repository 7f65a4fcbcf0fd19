// Package config loads the ignore list, the application defaults and
// scaffolds the resources a traversal root needs.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/sqtree/internal/utils"
)

const (
	errorOpenIgnoreFormat = "%w: opening %s: %w"
	errorScanIgnoreFormat = "%w: reading %s: %w"
	carriageReturn        = "\r"
)

// ErrIgnoreFile marks an ignore file that is missing or unreadable.
var ErrIgnoreFile = errors.New("ignore file unavailable")

// IgnoreList is the set of literal names excluded from a traversal.
type IgnoreList map[string]struct{}

// Contains reports whether name is listed verbatim.
func (ignoreList IgnoreList) Contains(name string) bool {
	_, listed := ignoreList[name]
	return listed
}

// Names returns the listed names in no particular order.
func (ignoreList IgnoreList) Names() []string {
	names := make([]string, 0, len(ignoreList))
	for name := range ignoreList {
		names = append(names, name)
	}
	return names
}

// LoadIgnoreList reads utils.IgnoreFileName from the traversal root.
func LoadIgnoreList(rootDirectory string) (IgnoreList, error) {
	return LoadIgnoreFile(filepath.Join(rootDirectory, utils.IgnoreFileName))
}

// LoadIgnoreFile reads one name per line. A trailing carriage return is
// dropped and blank lines are skipped; every other line is an exact entry
// name, never a glob.
//
// #nosec G304
func LoadIgnoreFile(ignoreFilePath string) (IgnoreList, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		return nil, fmt.Errorf(errorOpenIgnoreFormat, ErrIgnoreFile, ignoreFilePath, openFileError)
	}
	defer fileHandle.Close()

	ignoreList := IgnoreList{}
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimRight(scanner.Text(), carriageReturn)
		if trimmedLine == "" {
			continue
		}
		ignoreList[trimmedLine] = struct{}{}
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf(errorScanIgnoreFormat, ErrIgnoreFile, ignoreFilePath, scanError)
	}
	return ignoreList, nil
}
