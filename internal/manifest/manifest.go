// Package manifest reads and updates component manifests (Cargo.toml).
//
// A Document pairs the raw source bytes with a decoded, typed tree. Reads go
// through the tree; writes are applied to the source so that every field the
// release does not touch is preserved byte for byte. After each edit the
// source is decoded again and checked, so an edit can never leave a manifest
// that no longer parses.
package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/simplybusiness/kiln-release/internal/log"
	"github.com/simplybusiness/kiln-release/internal/version"
)

// Table is a decoded TOML table. Values are string, int64, float64, bool,
// date/time values, []any, or Table.
type Table map[string]any

// Table returns the nested table at key.
func (t Table) Table(key string) (Table, bool) {
	v, ok := t[key].(Table)
	return v, ok
}

// String returns the string at key.
func (t Table) String(key string) (string, bool) {
	v, ok := t[key].(string)
	return v, ok
}

// Has reports whether key is present with any value.
func (t Table) Has(key string) bool {
	_, ok := t[key]
	return ok
}

// Document is a parsed manifest.
type Document struct {
	path string
	raw  []byte
	tree Table
}

// Load reads and parses a manifest. The file must exist and carry a
// [package] table with a string version.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ManifestError{Path: path, Reason: "not found", Err: err}
		}
		return nil, &ManifestError{Path: path, Reason: "unreadable", Err: err}
	}
	return Parse(path, data)
}

// Parse decodes data as the manifest at path.
func Parse(path string, data []byte) (*Document, error) {
	tree, err := decode(path, data)
	if err != nil {
		return nil, err
	}
	d := &Document{path: path, raw: data, tree: tree}
	if _, err := d.Version(); err != nil {
		return nil, err
	}
	return d, nil
}

// Path returns the file the document was loaded from.
func (d *Document) Path() string { return d.path }

// Bytes returns the current source.
func (d *Document) Bytes() []byte { return d.raw }

// Tree returns the decoded document.
func (d *Document) Tree() Table { return d.tree }

// Version returns package.version.
func (d *Document) Version() (string, error) {
	pkg, ok := d.tree.Table("package")
	if !ok {
		return "", missing(d.path, "[package] table")
	}
	if !pkg.Has("version") {
		return "", missing(d.path, "package.version")
	}
	v, ok := pkg.String("version")
	if !ok {
		return "", malformed(d.path, "package.version is not a string", nil)
	}
	return v, nil
}

// Dependency returns the pin of a git dependency. ok is false when the
// dependency is present but carries neither rev nor branch.
func (d *Document) Dependency(name string) (pin Pin, ok bool, err error) {
	dep, err := d.dependencyTable(name)
	if err != nil {
		return nil, false, err
	}
	rev, hasRev := dep.String("rev")
	branch, hasBranch := dep.String("branch")
	switch {
	case hasRev && hasBranch:
		return nil, false, malformed(d.path, "dependencies."+name+" sets both rev and branch", nil)
	case hasRev:
		return Rev(rev), true, nil
	case hasBranch:
		return Branch(branch), true, nil
	default:
		return nil, false, nil
	}
}

func (d *Document) dependencyTable(name string) (Table, error) {
	deps, ok := d.tree.Table("dependencies")
	if !ok {
		return nil, missing(d.path, "[dependencies] table")
	}
	if !deps.Has(name) {
		return nil, missing(d.path, "dependencies."+name)
	}
	dep, ok := deps.Table(name)
	if !ok {
		return nil, malformed(d.path, "dependencies."+name+" is not a table", nil)
	}
	return dep, nil
}

// SetVersion sets package.version and leaves everything else untouched.
func (d *Document) SetVersion(v version.Version) error {
	out, err := editVersion(d.path, d.raw, v.String())
	if err != nil {
		return err
	}
	next, err := Parse(d.path, out)
	if err != nil {
		return err
	}
	if got, _ := next.Version(); got != v.String() {
		return malformed(d.path, fmt.Sprintf("package.version reads back as %q after edit", got), nil)
	}
	*d = *next
	return nil
}

// PinDependency pins dependency name to pin, removing the other of rev and
// branch. Removing a key that is already absent is not an error.
func (d *Document) PinDependency(name string, pin Pin) error {
	if _, err := d.dependencyTable(name); err != nil {
		return err
	}
	out, err := editPin(d.path, d.raw, name, pin)
	if err != nil {
		return err
	}
	next, err := Parse(d.path, out)
	if err != nil {
		return err
	}
	got, ok, err := next.Dependency(name)
	if err != nil {
		return err
	}
	if !ok || got != pin {
		return malformed(d.path, fmt.Sprintf("dependencies.%s pin reads back as %v after edit", name, got), nil)
	}
	*d = *next
	return nil
}

// Save writes the document back to its path, keeping the file mode.
func (d *Document) Save() error {
	mode := fs.FileMode(0o644)
	if fi, err := os.Stat(d.path); err == nil {
		mode = fi.Mode().Perm()
	}
	if err := os.WriteFile(d.path, d.raw, mode); err != nil {
		return &ManifestError{Path: d.path, Reason: "write failed", Err: err}
	}
	return nil
}

// SetVersion loads the manifest at path, sets its version and writes it back.
// The caller stages the file.
func SetVersion(path string, v version.Version) error {
	d, err := Load(path)
	if err != nil {
		return err
	}
	if err := d.SetVersion(v); err != nil {
		return err
	}
	log.Debug(log.CatManifest, "Set manifest version", "path", path, "version", v.String())
	return d.Save()
}

// PinDependency loads the manifest at path, re-pins dependency name and
// writes it back. The caller stages the file.
func PinDependency(path, name string, pin Pin) error {
	d, err := Load(path)
	if err != nil {
		return err
	}
	if err := d.PinDependency(name, pin); err != nil {
		return err
	}
	log.Debug(log.CatManifest, "Pinned dependency", "path", path, "dependency", name, pin.Key(), pin.Value())
	return d.Save()
}

func decode(path string, data []byte) (Table, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, malformed(path, fmt.Sprintf("line %d column %d", row, col), err)
		}
		return nil, malformed(path, "decode failed", err)
	}
	return toTable(raw), nil
}

// toTable converts go-toml's nested maps into Tables.
func toTable(m map[string]any) Table {
	t := make(Table, len(m))
	for k, v := range m {
		t[k] = toValue(v)
	}
	return t
}

func toValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return toTable(x)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = toValue(e)
		}
		return out
	default:
		return v
	}
}
