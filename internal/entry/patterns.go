package entry

import (
	"errors"
	"fmt"
	"regexp"
)

const (
	anchoredPatternFormat     = "(?i)^(?:%s)"
	errorCompilePatternFormat = "%w: %s pattern %q: %v"
	termPatternLabel          = "term"
	extensionPatternLabel     = "extension"
)

// ErrInvalidPattern marks a term or extension expression that does not compile.
var ErrInvalidPattern = errors.New("invalid match pattern")

// MatchPatterns holds the compiled highlight expressions. A nil pattern never matches.
type MatchPatterns struct {
	Term      *regexp.Regexp
	Extension *regexp.Regexp
}

// CompilePatterns compiles case-insensitive expressions anchored at the start
// of the display name. An empty source leaves the pattern unset.
func CompilePatterns(termSource string, extensionSource string) (MatchPatterns, error) {
	termPattern, termError := compileAnchored(termPatternLabel, termSource)
	if termError != nil {
		return MatchPatterns{}, termError
	}
	extensionPattern, extensionError := compileAnchored(extensionPatternLabel, extensionSource)
	if extensionError != nil {
		return MatchPatterns{}, extensionError
	}
	return MatchPatterns{Term: termPattern, Extension: extensionPattern}, nil
}

func compileAnchored(label string, source string) (*regexp.Regexp, error) {
	if source == "" {
		return nil, nil
	}
	compiled, compileError := regexp.Compile(fmt.Sprintf(anchoredPatternFormat, source))
	if compileError != nil {
		return nil, fmt.Errorf(errorCompilePatternFormat, ErrInvalidPattern, label, source, compileError)
	}
	return compiled, nil
}

func matches(pattern *regexp.Regexp, displayName string) bool {
	return pattern != nil && pattern.MatchString(displayName)
}
