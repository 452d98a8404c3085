package cfgerr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leynos/ortho-config-sub000/internal/l10n"
)

// Kind classifies a configuration error.
type Kind int

const (
	// KindCliParsing is passed through from an external CLI parser.
	KindCliParsing Kind = iota + 1
	// KindFile covers I/O failures, parse failures and bad extends directives.
	KindFile
	// KindCyclicExtends reports a file that extends itself through a chain.
	KindCyclicExtends
	// KindMergeShape reports a layer whose root is not an object.
	KindMergeShape
	// KindMerge reports a failure to decode the composed tree.
	KindMerge
	// KindGathering reports a failure to build a layer from its source.
	KindGathering
	// KindValidation reports missing required values or a post-merge hook failure.
	KindValidation
	// KindDiscoveryFailed aggregates the failures of every discovery candidate.
	KindDiscoveryFailed
)

var (
	// ErrCliParsing is the sentinel for KindCliParsing.
	ErrCliParsing = errors.New("command-line parsing failed")
	// ErrFile is the sentinel for KindFile.
	ErrFile = errors.New("configuration file error")
	// ErrCyclicExtends is the sentinel for KindCyclicExtends.
	ErrCyclicExtends = errors.New("cyclic extends")
	// ErrMergeShape is the sentinel for KindMergeShape.
	ErrMergeShape = errors.New("layer is not an object")
	// ErrMerge is the sentinel for KindMerge.
	ErrMerge = errors.New("failed to merge configuration")
	// ErrGathering is the sentinel for KindGathering.
	ErrGathering = errors.New("failed to gather configuration")
	// ErrValidation is the sentinel for KindValidation.
	ErrValidation = errors.New("invalid configuration")
	// ErrDiscoveryFailed is the sentinel for KindDiscoveryFailed.
	ErrDiscoveryFailed = errors.New("no configuration file could be loaded")

	// ErrNotFound marks a missing file. It is wrapped inside a KindFile error.
	ErrNotFound = errors.New("file not found")
	// ErrInvalidExtends marks an extends value that is not a non-empty string.
	ErrInvalidExtends = errors.New("extends must be a non-empty string")
	// ErrExtends marks any failure while following an extends directive.
	// Such failures abort discovery instead of skipping the file.
	ErrExtends = errors.New("extends resolution failed")
)

var sentinels = map[Kind]error{
	KindCliParsing:      ErrCliParsing,
	KindFile:            ErrFile,
	KindCyclicExtends:   ErrCyclicExtends,
	KindMergeShape:      ErrMergeShape,
	KindMerge:           ErrMerge,
	KindGathering:       ErrGathering,
	KindValidation:      ErrValidation,
	KindDiscoveryFailed: ErrDiscoveryFailed,
}

// String returns the kind name used in messages and logs.
func (k Kind) String() string {
	switch k {
	case KindCliParsing:
		return "cli-parsing"
	case KindFile:
		return "file"
	case KindCyclicExtends:
		return "cyclic-extends"
	case KindMergeShape:
		return "merge-shape"
	case KindMerge:
		return "merge"
	case KindGathering:
		return "gathering"
	case KindValidation:
		return "validation"
	case KindDiscoveryFailed:
		return "discovery-failed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a configuration failure with enough context to locate the
// offending file, layer or field.
type Error struct {
	Kind Kind
	// Path is the file involved, if any.
	Path string
	// Provenance names the layer involved (defaults, file, environment, cli).
	Provenance string
	// Field is the configuration key involved, if any.
	Field string
	// Chain lists the files forming an extends cycle, in visit order.
	Chain []string
	// Detail is a human readable description added to the kind's summary.
	Detail string
	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	if sentinel, ok := sentinels[e.Kind]; ok {
		b.WriteString(l10n.T(sentinel.Error()))
	} else {
		b.WriteString(e.Kind.String())
	}
	if e.Provenance != "" {
		b.WriteString(l10n.T(" in %s layer", e.Provenance))
	}
	if e.Path != "" {
		b.WriteString(fmt.Sprintf(" (%s)", e.Path))
	}
	if e.Field != "" {
		b.WriteString(l10n.T(" for field %q", e.Field))
	}
	if len(e.Chain) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Chain, " -> "))
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	return sentinels[e.Kind] == target
}

// File returns a KindFile error for path.
func File(path string, err error) *Error {
	return &Error{Kind: KindFile, Path: path, Err: err}
}

// NotFound returns a KindFile error wrapping ErrNotFound.
func NotFound(path string) *Error {
	return File(path, ErrNotFound)
}

// extendsError tags a failure of extends resolution with ErrExtends without
// changing its message.
type extendsError struct {
	err error
}

func (e *extendsError) Error() string {
	return e.err.Error()
}

func (e *extendsError) Unwrap() []error {
	return []error{e.err, ErrExtends}
}

// Extends marks err as an extends resolution failure. It returns nil for a
// nil err.
func Extends(err error) error {
	if err == nil || errors.Is(err, ErrExtends) {
		return err
	}
	return &extendsError{err: err}
}

// CyclicExtends returns a KindCyclicExtends error for the given chain.
func CyclicExtends(chain []string) *Error {
	return &Error{Kind: KindCyclicExtends, Chain: append([]string(nil), chain...)}
}

// MergeShape returns a KindMergeShape error describing the offending layer.
func MergeShape(provenance, jsonKind, path string) *Error {
	return &Error{
		Kind:       KindMergeShape,
		Provenance: provenance,
		Path:       path,
		Detail:     l10n.T("expected an object but found %s", jsonKind),
	}
}

// Merge wraps a decoding failure.
func Merge(err error) *Error {
	return &Error{Kind: KindMerge, Err: err}
}

// Gathering wraps a failure to build the named layer.
func Gathering(provenance string, err error) *Error {
	return &Error{Kind: KindGathering, Provenance: provenance, Err: err}
}

// Validation returns a KindValidation error for field.
func Validation(field, detail string, err error) *Error {
	return &Error{Kind: KindValidation, Field: field, Detail: detail, Err: err}
}

// CliParsing wraps an error from a command-line parser.
func CliParsing(err error) *Error {
	return &Error{Kind: KindCliParsing, Err: err}
}

// IsKind reports whether err is, or wraps, an *Error of kind k.
func IsKind(err error, k Kind) bool {
	sentinel, ok := sentinels[k]
	if !ok {
		return false
	}
	return errors.Is(err, sentinel)
}
