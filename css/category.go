package css

import (
	"fmt"
	"strings"
)

// Category is the kind of a selector fragment. Categories are totally
// ordered and fragments must be added in non-decreasing category order.
type Category int

const (
	CategoryType          Category = iota // div, a, span
	CategoryID                            // #main
	CategoryClass                         // .container
	CategoryAttr                          // [href$=".png"]
	CategoryPseudoClass                   // :focus
	CategoryPseudoElement                 // ::before

	// categoryCombined is the rank of a selector produced by Combine. It is
	// past every real category so nothing can be added after combining.
	categoryCombined
)

var categoryNames = map[Category]string{
	CategoryType:          "type",
	CategoryID:            "id",
	CategoryClass:         "class",
	CategoryAttr:          "attr",
	CategoryPseudoClass:   "pseudo-class",
	CategoryPseudoElement: "pseudo-element",
	categoryCombined:      "combined",
}

// String returns the name used for the category in steps and messages.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Singleton reports whether at most one fragment of this category is allowed.
func (c Category) Singleton() bool {
	switch c {
	case CategoryType, CategoryID, CategoryPseudoElement:
		return true
	default:
		return false
	}
}

// IsValid returns true for the six fragment categories.
func (c Category) IsValid() bool {
	return c >= CategoryType && c <= CategoryPseudoElement
}

// Prefix is prepended to the fragment value when rendering.
func (c Category) Prefix() string {
	switch c {
	case CategoryID:
		return "#"
	case CategoryClass:
		return "."
	case CategoryAttr:
		return "["
	case CategoryPseudoClass:
		return ":"
	case CategoryPseudoElement:
		return "::"
	default:
		return ""
	}
}

// Suffix is appended to the fragment value when rendering.
func (c Category) Suffix() string {
	if c == CategoryAttr {
		return "]"
	}
	return ""
}

// Categories lists fragment categories in rendering order.
func Categories() []Category {
	return []Category{
		CategoryType,
		CategoryID,
		CategoryClass,
		CategoryAttr,
		CategoryPseudoClass,
		CategoryPseudoElement,
	}
}

// CategoryNames returns the names accepted by ParseCategory, in rendering order.
func CategoryNames() []string {
	names := make([]string, 0, len(categoryNames))
	for _, c := range Categories() {
		names = append(names, c.String())
	}
	return names
}

// ParseCategory converts a category name to Category. Names are case
// insensitive and both "pseudo-class" and "pseudo_class" spellings are
// accepted.
func ParseCategory(name string) (Category, error) {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for _, c := range Categories() {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%q is not a valid selector category, try [%s]", name, strings.Join(CategoryNames(), ", "))
}
