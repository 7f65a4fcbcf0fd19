// Package output renders walker descriptors as tree lines.
package output

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/temirov/sqtree/internal/entry"
	"github.com/temirov/sqtree/internal/services/clipboard"
)

const errorCopyFormat = "copying tree to clipboard: %w"

// Renderer consumes descriptors in traversal order.
type Renderer interface {
	Handle(descriptor entry.Descriptor) error
	Flush() error
}

// Render feeds every descriptor to renderer and flushes it. The first
// traversal or rendering error is returned without flushing; lines already
// handled stay written.
func Render(descriptors iter.Seq2[entry.Descriptor, error], renderer Renderer) error {
	for descriptor, traversalError := range descriptors {
		if traversalError != nil {
			return traversalError
		}
		if handleError := renderer.Handle(descriptor); handleError != nil {
			return handleError
		}
	}
	return renderer.Flush()
}

type lineRenderer struct {
	writer    io.Writer
	highlight entry.Highlighter
}

// NewLineRenderer writes one highlighted line per descriptor as it arrives.
func NewLineRenderer(writer io.Writer, highlight entry.Highlighter) Renderer {
	return &lineRenderer{writer: writer, highlight: highlight}
}

func (renderer *lineRenderer) Handle(descriptor entry.Descriptor) error {
	_, writeError := fmt.Fprintln(renderer.writer, descriptor.Format(renderer.highlight))
	return writeError
}

func (renderer *lineRenderer) Flush() error {
	return nil
}

type clipboardRenderer struct {
	copier     clipboard.Copier
	transcript strings.Builder
}

// NewClipboardRenderer collects uncolored lines and copies them on Flush.
func NewClipboardRenderer(copier clipboard.Copier) Renderer {
	return &clipboardRenderer{copier: copier}
}

func (renderer *clipboardRenderer) Handle(descriptor entry.Descriptor) error {
	renderer.transcript.WriteString(descriptor.String())
	renderer.transcript.WriteString("\n")
	return nil
}

func (renderer *clipboardRenderer) Flush() error {
	if copyError := renderer.copier.Copy(renderer.transcript.String()); copyError != nil {
		return fmt.Errorf(errorCopyFormat, copyError)
	}
	return nil
}

type multiRenderer []Renderer

// Combine fans descriptors out to every renderer in order.
func Combine(renderers ...Renderer) Renderer {
	return multiRenderer(renderers)
}

func (renderers multiRenderer) Handle(descriptor entry.Descriptor) error {
	for _, renderer := range renderers {
		if handleError := renderer.Handle(descriptor); handleError != nil {
			return handleError
		}
	}
	return nil
}

func (renderers multiRenderer) Flush() error {
	for _, renderer := range renderers {
		if flushError := renderer.Flush(); flushError != nil {
			return flushError
		}
	}
	return nil
}
