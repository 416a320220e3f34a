// SPDX-License-Identifier: MPL-2.0

package widget

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/charmbracelet/log"
)

// ErrMissingRoot is the sentinel error wrapped by MissingRootError.
var ErrMissingRoot = errors.New("component used outside its root")

// discard is shared by every widget constructed without a logger.
var discard = log.New(io.Discard)

// MissingRootError reports a leaf component created without its root widget.
// It is a programmer error and is raised with panic, never returned.
type MissingRootError struct {
	Component string
	Root      string
}

// Error implements the error interface for MissingRootError.
func (e *MissingRootError) Error() string {
	return fmt.Sprintf("%s must be used within %s", e.Component, e.Root)
}

// Unwrap returns ErrMissingRoot for errors.Is() compatibility.
func (e *MissingRootError) Unwrap() error { return ErrMissingRoot }

// MustRoot panics with a *MissingRootError when root is nil, including a typed
// nil pointer stored in the interface.
func MustRoot(root any, component, rootName string) {
	if root == nil {
		panic(&MissingRootError{Component: component, Root: rootName})
	}
	v := reflect.ValueOf(root)
	if v.Kind() == reflect.Pointer && v.IsNil() {
		panic(&MissingRootError{Component: component, Root: rootName})
	}
}

// Logger returns l, or a logger that discards everything when l is nil.
func Logger(l *log.Logger) *log.Logger {
	if l == nil {
		return discard
	}
	return l
}
