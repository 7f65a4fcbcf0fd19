package cli

import (
	"github.com/spf13/pflag"

	"github.com/temirov/sqtree/internal/output"
)

const colorFlagTypeName = "mode"

// colorFlagValue validates --color while parsing so a bad mode fails with
// the usual flag error.
type colorFlagValue struct {
	target *output.ColorMode
}

func newColorFlagValue(target *output.ColorMode, defaultMode output.ColorMode) *colorFlagValue {
	*target = defaultMode
	return &colorFlagValue{target: target}
}

func (value *colorFlagValue) Set(input string) error {
	mode, parseError := output.ParseColorMode(input)
	if parseError != nil {
		return parseError
	}
	*value.target = mode
	return nil
}

func (value *colorFlagValue) String() string {
	if value == nil || value.target == nil {
		return string(output.ColorAuto)
	}
	return string(*value.target)
}

func (value *colorFlagValue) Type() string {
	return colorFlagTypeName
}

var _ pflag.Value = (*colorFlagValue)(nil)
