package build

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/maruel/natural"
	yaml "gopkg.in/yaml.v3"

	"cssb/common"
	"cssb/jsonx"
	"cssb/recipe"
	"cssb/state"
)

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// openOutput returns destination file or program stdout when dst is empty.
func openOutput(dst string, env *state.LocalEnv) (io.WriteCloser, error) {
	if dst == "" {
		return nopCloser{env.Stdout}, nil
	}
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if !env.Overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(dst, flags, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("output file already exists, use --overwrite to replace it: %s", dst)
		}
		return nil, fmt.Errorf("unable to create output file: %w", err)
	}
	return f, nil
}

func closeOutput(out io.WriteCloser, err error) error {
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}

func write(w io.Writer, format common.OutputFormat, naturalSort bool, rcps []*recipe.Recipe, results []recipe.Result) error {
	switch format {
	case common.OutputFormatText:
		return writeText(w, naturalSort, results)
	case common.OutputFormatJson:
		s, err := jsonx.ToJSON(results)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, s)
		return err
	case common.OutputFormatYaml:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	case common.OutputFormatTree:
		for _, rcp := range rcps {
			if _, err := io.WriteString(w, rcp.Tree()); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// writeText writes "key<TAB>selector" lines. Results are kept in recipe
// order unless natural sorting is requested, equal keys from different
// recipes stay together.
func writeText(w io.Writer, naturalSort bool, results []recipe.Result) error {
	if naturalSort {
		byKey := make(map[string][]recipe.Result, len(results))
		keys := make([]string, 0, len(results))
		for _, r := range results {
			if _, ok := byKey[r.Key]; !ok {
				keys = append(keys, r.Key)
			}
			byKey[r.Key] = append(byKey[r.Key], r)
		}
		sort.Sort(natural.StringSlice(keys))

		results = make([]recipe.Result, 0, len(results))
		for _, k := range keys {
			results = append(results, byKey[k]...)
		}
	}

	var b strings.Builder
	for _, r := range results {
		b.WriteString(r.Key)
		b.WriteByte('\t')
		b.WriteString(r.Selector)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
