// Package formats provides the catalog of input file formats and the import
// menu built from it.
//
// A catalog is written as s-expressions, one (format ...) node per format:
//
//	(format binary
//	  (name Raw binary logic data)
//	  (ext bin raw)
//	  (option numchannels (name Number of logic channels) (type uint64) (default 8)))
//
// Text fields are the remaining words of the node joined by single spaces.
// A ';' starts a comment that runs to the end of the line.
package formats

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/chewxy/sexp"

	"github.com/OpenTraceLab/OpenTraceView/pkg/binding"
	"github.com/OpenTraceLab/OpenTraceView/pkg/capture"
)

//go:embed formats.sexp
var builtinCatalog string

// ErrUnknownFormat is returned when a format ID is not in the catalog.
var ErrUnknownFormat = errors.New("formats: unknown format")

// Option is one option of an input format.
type Option struct {
	ID          string
	Name        string
	Description string
	Type        capture.DataType
	Default     capture.Value
	Values      []capture.Value
}

// Format describes an input file format.
type Format struct {
	ID          string
	Name        string
	Description string
	Extensions  []string
	Options     []Option
}

// Option returns the option with the given ID.
func (f *Format) Option(id string) (Option, bool) {
	for _, o := range f.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// IOOptions converts the format options for binding.NewInputOutput.
func (f *Format) IOOptions() map[string]binding.IOOption {
	out := make(map[string]binding.IOOption, len(f.Options))
	for _, o := range f.Options {
		out[o.ID] = binding.IOOption{
			ID:          o.ID,
			Name:        o.Name,
			Description: o.Description,
			Default:     o.Default,
			Values:      o.Values,
		}
	}
	return out
}

// NewInputBinding binds the options of f, initialised to their defaults.
func NewInputBinding(f *Format) *binding.InputOutput {
	return binding.NewInputOutput(f.IOOptions())
}

// Catalog is a set of input formats keyed by ID.
type Catalog struct {
	formats map[string]*Format
}

// Formats returns all formats sorted by ID.
func (c *Catalog) Formats() []*Format {
	out := make([]*Format, 0, len(c.formats))
	for _, f := range c.formats {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of formats.
func (c *Catalog) Len() int { return len(c.formats) }

// Lookup returns the format with the given ID.
func (c *Catalog) Lookup(id string) (*Format, bool) {
	f, ok := c.formats[id]
	return f, ok
}

// Find is like Lookup but returns ErrUnknownFormat when id is missing.
func (c *Catalog) Find(id string) (*Format, error) {
	f, ok := c.formats[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, id)
	}
	return f, nil
}

// ForFile returns the formats whose extensions match path, sorted by ID.
func (c *Catalog) ForFile(path string) []*Format {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return nil
	}
	var out []*Format
	for _, f := range c.Formats() {
		for _, e := range f.Extensions {
			if e == ext {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(builtinCatalog)
	})
	return defaultCatalog, defaultErr
}

// ParseFile reads a catalog from disk.
func ParseFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formats: read catalog: %w", err)
	}
	c, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse parses a catalog from s-expression text.
func Parse(src string) (*Catalog, error) {
	src = strings.TrimSpace(stripComments(src))
	if err := checkParens(src); err != nil {
		return nil, fmt.Errorf("formats: %w", err)
	}

	exprs, err := sexp.ParseString(src)
	if err != nil {
		return nil, fmt.Errorf("formats: %w", err)
	}

	c := &Catalog{formats: make(map[string]*Format)}
	for _, expr := range exprs {
		f, err := parseFormat(expr)
		if err != nil {
			return nil, fmt.Errorf("formats: %w", err)
		}
		if _, dup := c.formats[f.ID]; dup {
			return nil, fmt.Errorf("formats: duplicate format %q", f.ID)
		}
		c.formats[f.ID] = f
	}
	return c, nil
}

func parseFormat(node sexp.Sexp) (*Format, error) {
	if name, err := nodeName(node); err != nil || name != "format" {
		return nil, fmt.Errorf("expected (format ...), got %v", node)
	}
	items := nodeItems(node)
	if len(items) < 2 {
		return nil, fmt.Errorf("format without ID")
	}
	id, ok := items[1].(sexp.Symbol)
	if !ok {
		return nil, fmt.Errorf("format ID must be a symbol, got %v", items[1])
	}
	f := &Format{ID: string(id)}

	for _, child := range items[2:] {
		field, err := nodeName(child)
		if err != nil {
			return nil, fmt.Errorf("format %s: %w", f.ID, err)
		}
		switch field {
		case "name":
			f.Name, err = nodeText(child)
		case "desc":
			f.Description, err = nodeText(child)
		case "ext":
			var exts []string
			exts, err = nodeSymbols(child)
			for _, e := range exts {
				f.Extensions = append(f.Extensions, strings.ToLower(e))
			}
		case "option":
			var opt Option
			opt, err = parseOption(child)
			if err == nil {
				if _, dup := f.Option(opt.ID); dup {
					err = fmt.Errorf("duplicate option %q", opt.ID)
				}
			}
			f.Options = append(f.Options, opt)
		default:
			err = fmt.Errorf("unknown field %q", field)
		}
		if err != nil {
			return nil, fmt.Errorf("format %s: %w", f.ID, err)
		}
	}

	if f.Name == "" {
		f.Name = f.ID
	}
	return f, nil
}

func parseOption(node sexp.Sexp) (Option, error) {
	items := nodeItems(node)
	if len(items) < 2 {
		return Option{}, fmt.Errorf("option without ID")
	}
	id, ok := items[1].(sexp.Symbol)
	if !ok {
		return Option{}, fmt.Errorf("option ID must be a symbol, got %v", items[1])
	}
	opt := Option{ID: string(id), Type: capture.TypeString}

	var (
		defText    string
		hasDefault bool
		valueTexts []string
	)
	for _, child := range items[2:] {
		field, err := nodeName(child)
		if err != nil {
			return Option{}, fmt.Errorf("option %s: %w", opt.ID, err)
		}
		switch field {
		case "name":
			opt.Name, err = nodeText(child)
		case "desc":
			opt.Description, err = nodeText(child)
		case "type":
			var name string
			if name, err = nodeText(child); err == nil {
				opt.Type, err = parseDataType(name)
			}
		case "default":
			defText, err = nodeText(child)
			hasDefault = true
		case "values":
			valueTexts, err = nodeSymbols(child)
		default:
			err = fmt.Errorf("unknown field %q", field)
		}
		if err != nil {
			return Option{}, fmt.Errorf("option %s: %w", opt.ID, err)
		}
	}

	if !hasDefault {
		return Option{}, fmt.Errorf("option %s: missing default", opt.ID)
	}
	def, err := capture.ParseValue(opt.Type, defText)
	if err != nil {
		return Option{}, fmt.Errorf("option %s: default: %w", opt.ID, err)
	}
	opt.Default = def

	for _, text := range valueTexts {
		v, err := capture.ParseValue(opt.Type, text)
		if err != nil {
			return Option{}, fmt.Errorf("option %s: values: %w", opt.ID, err)
		}
		opt.Values = append(opt.Values, v)
	}
	return opt, nil
}

func parseDataType(name string) (capture.DataType, error) {
	for t := capture.TypeBool; t <= capture.TypeDoubleRange; t++ {
		if t.String() == name {
			return t, nil
		}
	}
	return capture.TypeUnknown, fmt.Errorf("unknown type %q", name)
}
