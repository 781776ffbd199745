package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"cssb/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates initialized empty report.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	r := &Report{id: id, entries: make(map[string]entry)}

	if f, err := os.Create(conf.Destination); err == nil {
		r.file = f
	} else if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err == nil {
		r.file = f
	} else {
		return nil, fmt.Errorf("unable to create report: %w", err)
	}
	return r, nil
}

type entry struct {
	path  string
	stamp time.Time
	data  []byte
}

// Report accumulates files and data to be archived for troubleshooting.
// All methods are safe to call on nil Report, which means no report has been
// requested. Not to be used concurrently.
type Report struct {
	id      uuid.UUID
	entries map[string]entry
	file    *os.File
}

// Close writes the archive.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	defer r.file.Close()
	return r.finalize()
}

// Name returns name of the archive file.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// ID identifies this report, it is written into archive manifest.
func (r *Report) ID() string {
	if r == nil {
		return ""
	}
	return r.id.String()
}

// Store remembers file to be put in the archive under name. File is read
// when report is closed, absent files are skipped.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	if p, err := filepath.Abs(path); err == nil {
		path = p
	}
	if old, exists := r.entries[name]; exists && old.path != path {
		panic(fmt.Sprintf("Attempt to overwrite file in the report for [%s]: was %s, now %s", name, old.path, path))
	}
	r.entries[name] = entry{path: path}
}

// StoreData puts data in the archive under name. Repeated names get a
// timestamp suffix.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	e := entry{data: data, stamp: time.Now()}
	if _, exists := r.entries[name]; exists {
		name = fmt.Sprintf("%s-%d", name, e.stamp.UnixNano())
	}
	r.entries[name] = e
}

func (r *Report) finalize() error {
	arc := zip.NewWriter(r.file)

	names := make([]string, 0, len(r.entries))
	for k := range r.entries {
		names = append(names, k)
	}
	sort.Strings(names)

	now := time.Now()
	manifest := new(bytes.Buffer)
	fmt.Fprintf(manifest, "# %s %s report %s\n", misc.GetAppName(), misc.GetVersion(), r.id)
	for _, name := range names {
		e := r.entries[name]
		stamp := e.stamp
		if stamp.IsZero() {
			stamp = now
		}
		src := e.path
		if len(e.data) > 0 {
			src = "<data>"
		}
		fmt.Fprintf(manifest, "%s\t%s\t%s\n", stamp.UTC().Format(time.UnixDate), name, src)
	}
	if err := saveFile(arc, "MANIFEST", now, manifest); err != nil {
		return err
	}

	for _, name := range names {
		e := r.entries[name]
		if e.path == "" {
			if err := saveFile(arc, name, e.stamp, bytes.NewReader(e.data)); err != nil {
				return err
			}
			continue
		}
		info, err := os.Stat(e.path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		f, err := os.Open(e.path)
		if err != nil {
			return err
		}
		err = saveFile(arc, name, info.ModTime(), f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return arc.Close()
}

func saveFile(dst *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := dst.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
