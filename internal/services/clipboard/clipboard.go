// Package clipboard copies rendered trees to the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// CopierFunc adapts a function to Copier.
type CopierFunc func(text string) error

// Copy calls the function.
func (copyFunction CopierFunc) Copy(text string) error {
	return copyFunction(text)
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a clipboard-backed Copier.
func NewService() *Service {
	return &Service{}
}

// Copy replaces the clipboard content with text. It fails when no clipboard
// utility is available (for example xclip or xsel on Linux).
func (service *Service) Copy(text string) error {
	return clipboard.WriteAll(text)
}

var (
	_ Copier = (*Service)(nil)
	_ Copier = CopierFunc(nil)
)
