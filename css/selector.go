// Package css builds CSS selector strings from ordered fragments.
package css

import (
	"fmt"
	"slices"
	"strings"

	"go.uber.org/multierr"
)

// Combinators accepted by Combine. Combine does not check the token, these
// are provided for convenience.
const (
	Child             = ">"
	NextSibling       = "+"
	SubsequentSibling = "~"
)

type fragment struct {
	value string
	set   bool
}

// Selector accumulates selector fragments. Every fragment step returns a new
// value and leaves the receiver untouched, so a Selector can be used as a
// base for several chains. Stringify and Combine are the only operations
// that modify the value they are given.
//
// The zero value is an empty selector ready for use.
type Selector struct {
	typ           fragment
	id            fragment
	classes       []string
	attrs         []string
	pseudoClasses []string
	pseudoElement fragment

	combined fragment
	last     Category
	err      error
}

// New returns an empty selector.
func New() Selector {
	return Selector{}
}

// Type starts a new selector with a type fragment.
func Type(value string) Selector { return New().Type(value) }

// ID starts a new selector with an id fragment.
func ID(value string) Selector { return New().ID(value) }

// Class starts a new selector with a class fragment.
func Class(value string) Selector { return New().Class(value) }

// Attr starts a new selector with an attribute fragment.
func Attr(value string) Selector { return New().Attr(value) }

// PseudoClass starts a new selector with a pseudo-class fragment.
func PseudoClass(value string) Selector { return New().PseudoClass(value) }

// PseudoElement starts a new selector with a pseudo-element fragment.
func PseudoElement(value string) Selector { return New().PseudoElement(value) }

// Derive returns a copy of sel with value added as a fragment of category
// cat. sel is never modified. On failure sel is returned as is together
// with a *BuildError. If sel already carries an error, that error is
// returned.
func Derive(sel Selector, cat Category, value string) (Selector, error) {
	if !cat.IsValid() {
		// this should never happen
		panic(fmt.Sprintf("unknown selector category %d", int(cat)))
	}
	if sel.err != nil {
		return sel, sel.err
	}
	if cat < sel.last {
		return sel, &BuildError{Category: cat, Last: sel.last, Value: value, Err: ErrOrderViolation}
	}
	if cat.Singleton() && sel.has(cat) {
		return sel, &BuildError{Category: cat, Last: sel.last, Value: value, Err: ErrDuplicateCategory}
	}

	next := sel.clone()
	switch cat {
	case CategoryType:
		next.typ = fragment{value: value, set: true}
	case CategoryID:
		next.id = fragment{value: value, set: true}
	case CategoryClass:
		next.classes = append(next.classes, value)
	case CategoryAttr:
		next.attrs = append(next.attrs, value)
	case CategoryPseudoClass:
		next.pseudoClasses = append(next.pseudoClasses, value)
	case CategoryPseudoElement:
		next.pseudoElement = fragment{value: value, set: true}
	}
	next.last = cat
	return next, nil
}

// With adds a fragment of category cat. If the step is not allowed the
// returned selector keeps its previous fragments and carries the error,
// and all following steps are ignored. See Err.
func (s Selector) With(cat Category, value string) Selector {
	next, err := Derive(s, cat, value)
	if err != nil {
		s.err = err
		return s
	}
	return next
}

// Type sets the type fragment, e.g. "div".
func (s Selector) Type(value string) Selector { return s.With(CategoryType, value) }

// ID sets the id fragment, rendered as "#value".
func (s Selector) ID(value string) Selector { return s.With(CategoryID, value) }

// Class appends a class fragment, rendered as ".value".
func (s Selector) Class(value string) Selector { return s.With(CategoryClass, value) }

// Attr appends an attribute fragment, rendered as "[value]". The value is
// used verbatim, e.g. `href$=".png"`.
func (s Selector) Attr(value string) Selector { return s.With(CategoryAttr, value) }

// PseudoClass appends a pseudo-class fragment, rendered as ":value".
func (s Selector) PseudoClass(value string) Selector { return s.With(CategoryPseudoClass, value) }

// PseudoElement sets the pseudo-element fragment, rendered as "::value".
func (s Selector) PseudoElement(value string) Selector {
	return s.With(CategoryPseudoElement, value)
}

// Err returns the first error encountered while building the selector.
func (s Selector) Err() error {
	return s.err
}

// IsEmpty is true when the selector has nothing to render.
func (s Selector) IsEmpty() bool {
	return s.render() == ""
}

// IsCombined is true for selectors produced by Combine.
func (s Selector) IsCombined() bool {
	return s.combined.set
}

// String renders the selector without consuming it.
func (s Selector) String() string {
	return s.render()
}

// Stringify renders the selector and resets it to the empty value, so the
// same value cannot be rendered twice. If the selector carries an error
// the error is returned instead of the text.
func (s *Selector) Stringify() (string, error) {
	if s == nil {
		return "", nil
	}
	text, err := s.render(), s.err
	*s = Selector{}
	if err != nil {
		return "", err
	}
	return text, nil
}

// Combine consumes a and b and returns a new selector rendering as
// "<a> <combinator> <b>". Both operands are reset by the call. The result
// accepts no further fragments but may be used as an operand of another
// Combine. Errors carried by the operands are merged into the result.
func Combine(a *Selector, combinator string, b *Selector) Selector {
	left, lerr := a.Stringify()
	right, rerr := b.Stringify()
	if err := multierr.Combine(lerr, rerr); err != nil {
		return Selector{last: categoryCombined, err: err}
	}
	return Selector{
		combined: fragment{value: left + " " + combinator + " " + right, set: true},
		last:     categoryCombined,
	}
}

// Then combines copies of s and next, leaving both caller values intact.
func (s Selector) Then(combinator string, next Selector) Selector {
	return Combine(&s, combinator, &next)
}

func (s Selector) has(cat Category) bool {
	switch cat {
	case CategoryType:
		return s.typ.set
	case CategoryID:
		return s.id.set
	case CategoryClass:
		return len(s.classes) > 0
	case CategoryAttr:
		return len(s.attrs) > 0
	case CategoryPseudoClass:
		return len(s.pseudoClasses) > 0
	case CategoryPseudoElement:
		return s.pseudoElement.set
	default:
		return false
	}
}

// clone copies fragment lists so appends on the copy never reach the
// backing arrays of s.
func (s Selector) clone() Selector {
	s.classes = slices.Clone(s.classes)
	s.attrs = slices.Clone(s.attrs)
	s.pseudoClasses = slices.Clone(s.pseudoClasses)
	return s
}

func (s Selector) render() string {
	if s.combined.set {
		return s.combined.value
	}

	var sb strings.Builder
	single := func(cat Category, f fragment) {
		if f.set {
			sb.WriteString(cat.Prefix())
			sb.WriteString(f.value)
			sb.WriteString(cat.Suffix())
		}
	}
	many := func(cat Category, values []string) {
		for _, v := range values {
			sb.WriteString(cat.Prefix())
			sb.WriteString(v)
			sb.WriteString(cat.Suffix())
		}
	}

	single(CategoryType, s.typ)
	single(CategoryID, s.id)
	many(CategoryClass, s.classes)
	many(CategoryAttr, s.attrs)
	many(CategoryPseudoClass, s.pseudoClasses)
	single(CategoryPseudoElement, s.pseudoElement)
	return sb.String()
}
