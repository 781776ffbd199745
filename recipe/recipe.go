// Package recipe describes selectors in YAML and builds them with the css
// package.
package recipe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gosimple/slug"
	"github.com/rupor-github/gencfg"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"cssb/css"
)

type (
	// Step is a single "category: value" instruction.
	Step map[string]string

	// Node is either an ordered list of steps or a combination of two nodes.
	Node struct {
		Steps   []Step       `yaml:"steps,omitempty" validate:"required_without=Combine,excluded_with=Combine,dive,len=1"`
		Combine *Combination `yaml:"combine,omitempty" validate:"required_without=Steps"`
	}

	Combination struct {
		Left       Node   `yaml:"left"`
		Combinator string `yaml:"combinator" validate:"required"`
		Right      Node   `yaml:"right"`
	}

	Definition struct {
		Name string `yaml:"name" validate:"required"`
		Node `yaml:",inline"`
	}

	Recipe struct {
		Selectors []Definition `yaml:"selectors" validate:"required,min=1,dive"`
	}

	// Result is a successfully built selector.
	Result struct {
		Key      string `json:"key" yaml:"key"`
		Name     string `json:"name" yaml:"name"`
		Selector string `json:"selector" yaml:"selector"`
	}
)

var errMalformedStep = errors.New("malformed step")

// Load decodes and validates a recipe. Unknown fields are rejected.
func Load(r io.Reader) (*Recipe, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	rcp := &Recipe{}
	if err := dec.Decode(rcp); err != nil {
		return nil, fmt.Errorf("failed to decode recipe: %w", err)
	}
	if err := gencfg.Validate(rcp); err != nil {
		return nil, fmt.Errorf("invalid recipe: %w", err)
	}
	return rcp, nil
}

// LoadFile reads recipe from the file at the given path.
func LoadFile(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file: %w", err)
	}
	return Load(bytes.NewReader(data))
}

// ParseStep converts "category=value" to Step. Only the first '=' separates
// category from value, so attribute expressions may contain '='.
func ParseStep(arg string) (Step, error) {
	name, value, found := strings.Cut(arg, "=")
	if !found {
		return nil, fmt.Errorf("%w %q: expected category=value", errMalformedStep, arg)
	}
	if _, err := css.ParseCategory(name); err != nil {
		return nil, fmt.Errorf("%w %q: %w", errMalformedStep, arg, err)
	}
	return Step{name: value}, nil
}

// ParseSteps converts arguments to steps, keeping their order.
func ParseSteps(args []string) ([]Step, error) {
	steps := make([]Step, 0, len(args))
	for _, arg := range args {
		step, err := ParseStep(arg)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func (s Step) split() (css.Category, string, error) {
	if len(s) != 1 {
		return 0, "", fmt.Errorf("%w: expected exactly one category, got %d", errMalformedStep, len(s))
	}
	for name, value := range s {
		cat, err := css.ParseCategory(name)
		if err != nil {
			return 0, "", fmt.Errorf("%w: %w", errMalformedStep, err)
		}
		return cat, value, nil
	}
	// unreachable
	return 0, "", errMalformedStep
}

// Selector builds the node. The returned error reports malformed steps only,
// fragment ordering problems are carried by the selector itself (see
// css.Selector.Err).
func (n Node) Selector() (css.Selector, error) {
	if n.Combine != nil {
		left, err := n.Combine.Left.Selector()
		if err != nil {
			return css.Selector{}, err
		}
		right, err := n.Combine.Right.Selector()
		if err != nil {
			return css.Selector{}, err
		}
		return css.Combine(&left, n.Combine.Combinator, &right), nil
	}

	sel := css.New()
	for _, step := range n.Steps {
		cat, value, err := step.split()
		if err != nil {
			return css.Selector{}, err
		}
		sel = sel.With(cat, value)
	}
	return sel, nil
}

// Key is the normalized name used to identify the definition in output.
func (d Definition) Key() string {
	if key := slug.Make(d.Name); key != "" {
		return key
	}
	return d.Name
}

// Build builds every definition. Failures are logged and returned together,
// results for good definitions are returned regardless.
func (r *Recipe) Build(log *zap.Logger) ([]Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("recipe")

	var (
		results = make([]Result, 0, len(r.Selectors))
		seen    = make(map[string]string, len(r.Selectors))
		errs    error
	)

	for _, def := range r.Selectors {
		key := def.Key()
		if prev, exists := seen[key]; exists {
			err := fmt.Errorf("selector %q: name collides with %q", def.Name, prev)
			log.Warn("Skipping selector", zap.String("name", def.Name), zap.Error(err))
			errs = multierr.Append(errs, err)
			continue
		}
		seen[key] = def.Name

		sel, err := def.Selector()
		if err == nil {
			var text string
			if text, err = sel.Stringify(); err == nil {
				log.Debug("Selector built", zap.String("key", key), zap.String("selector", text))
				results = append(results, Result{Key: key, Name: def.Name, Selector: text})
				continue
			}
		}
		err = fmt.Errorf("selector %q: %w", def.Name, err)
		log.Warn("Unable to build selector", zap.String("name", def.Name), zap.Error(err))
		errs = multierr.Append(errs, err)
	}
	return results, errs
}
