// Package foreign implements the interpreter's foreign-conjunction calls
// (m!:n, e.g. "1!:1" to read a file or "9!:12" to query a session
// parameter). Each call is dispatched by its (m, n) pair the way the
// teacher's built-in registry dispatches DWScript's intrinsic routines by
// name, except the lookup key here is a pair of small integers rather
// than an identifier.
package foreign

import (
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	jerr "github.com/sambacha/jgo/internal/errors"
	"github.com/sambacha/jgo/internal/jarray"
)

// Store is the 9!:12 / 9!:25 session parameter store: a small JSON
// document queried and mutated by dotted path, so an embedding host can
// introspect or set session parameters without a bespoke key-value
// format.
type Store struct {
	doc string
}

// NewStore returns an empty parameter store ("{}").
func NewStore() *Store { return &Store{doc: "{}"} }

// Get implements 9!:12, reading the value at path as a character vector
// of its JSON text, or an empty vector if path is unset.
func (s *Store) Get(path string) jarray.Array {
	r := gjson.Get(s.doc, path)
	if !r.Exists() {
		return jarray.NewCharVector("")
	}
	return jarray.NewCharVector(r.Raw)
}

// Set implements 9!:25, writing raw JSON text at path.
func (s *Store) Set(path, rawJSON string) error {
	out, err := sjson.SetRaw(s.doc, path, rawJSON)
	if err != nil {
		return jerr.Domain("9!:25 %s: %v", path, err)
	}
	s.doc = out
	return nil
}

// Doc returns the store's full JSON document, for diagnostics.
func (s *Store) Doc() string { return s.doc }

// Policy gates which calls are permitted; a disabled class reports a
// FileNameError rather than silently no-op'ing.
type Policy struct {
	AllowFileIO     bool
	AllowParamStore bool
}

// Dispatcher executes foreign calls against a cache directory (for the
// 1!:2 script-cache write, made atomic via renameio) and a
// parameter Store (for 9!:12 / 9!:25).
type Dispatcher struct {
	Policy   Policy
	CacheDir string
	Params   *Store
}

// New returns a Dispatcher with a fresh parameter store.
func New(policy Policy, cacheDir string) *Dispatcher {
	return &Dispatcher{Policy: policy, CacheDir: cacheDir, Params: NewStore()}
}

// ReadFile implements 1!:1 y — read the named file's contents as a
// character vector.
func (d *Dispatcher) ReadFile(name string) (jarray.Array, error) {
	if !d.Policy.AllowFileIO {
		return jarray.Array{}, jerr.FileName("1!:1: file access disabled by session policy")
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return jarray.Array{}, jerr.FileName("1!:1 %s: %v", name, err)
	}
	return jarray.NewCharVector(string(data)), nil
}

// CacheScript backs the 1!:2 foreign call: it writes content to a cache
// file named by key under CacheDir (nothing here reads it back), atomically (so a reader
// never observes a partial write), and returns the cache path.
func (d *Dispatcher) CacheScript(key, content string) (string, error) {
	if !d.Policy.AllowFileIO {
		return "", jerr.FileName("0!: file cache disabled by session policy")
	}
	if d.CacheDir == "" {
		return "", jerr.FileName("0!: no cache directory configured")
	}
	if err := os.MkdirAll(d.CacheDir, 0o755); err != nil {
		return "", jerr.FileName("0!: creating cache dir: %v", err)
	}
	path := filepath.Join(d.CacheDir, key)
	pf, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return "", jerr.FileName("0!: caching script %s: %v", key, err)
	}
	defer pf.Cleanup()
	if _, err := pf.Write([]byte(content)); err != nil {
		return "", jerr.FileName("0!: caching script %s: %v", key, err)
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return "", jerr.FileName("0!: caching script %s: %v", key, err)
	}
	return path, nil
}

// GetParam implements 9!:12.
func (d *Dispatcher) GetParam(path string) (jarray.Array, error) {
	if !d.Policy.AllowParamStore {
		return jarray.Array{}, jerr.FileName("9!:12: parameter store disabled by session policy")
	}
	return d.Params.Get(path), nil
}

// SetParam implements 9!:25.
func (d *Dispatcher) SetParam(path, rawJSON string) error {
	if !d.Policy.AllowParamStore {
		return jerr.FileName("9!:25: parameter store disabled by session policy")
	}
	return d.Params.Set(path, rawJSON)
}
