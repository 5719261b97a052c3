// Package declaration loads the statutory VAT rates declared for each country.
//
// Declarations are YAML files named after the lower-case ISO 3166-1 alpha-2
// country code (fr.yaml, be.yaml, ...). A set is embedded in the binary; a
// directory can be used instead to ship rate changes without a rebuild.
package declaration

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"taxsync/internal/model"
	"taxsync/internal/taxerr"
)

//go:embed rates/*.yaml
var embedded embed.FS

const fileExt = ".yaml"

// LabelSource provides the translated tax name used when an entry has none
type LabelSource interface {
	VAT(country string) string
}

type declarationFile struct {
	Rates []declarationEntry `yaml:"rates"`
}

type declarationEntry struct {
	Country  string  `yaml:"country"`
	Rate     *string `yaml:"rate"`
	Name     string  `yaml:"name"`
	Priority *int    `yaml:"priority"`
	Order    *int    `yaml:"order"`
	Class    string  `yaml:"class"`
}

// Loader reads declarations from a file system
type Loader struct {
	fsys   fs.FS
	labels LabelSource
}

// NewLoader returns a loader over the declarations embedded in the binary
func NewLoader(labels LabelSource) *Loader {
	sub, err := fs.Sub(embedded, "rates")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory
	}
	return NewFSLoader(sub, labels)
}

// NewDirLoader returns a loader over a directory of declaration files
func NewDirLoader(dir string, labels LabelSource) *Loader {
	return NewFSLoader(os.DirFS(dir), labels)
}

// NewFSLoader returns a loader over any file system
func NewFSLoader(fsys fs.FS, labels LabelSource) *Loader {
	return &Loader{fsys: fsys, labels: labels}
}

// Load returns the declared rates of a country in file order.
// A missing or malformed declaration is a *taxerr.ConfigurationError.
func (l *Loader) Load(country string) ([]model.DeclaredRate, error) {
	code := strings.ToLower(strings.TrimSpace(country))
	if !validCode(code) {
		return nil, taxerr.NewConfigurationError(country,
			fmt.Errorf("%w: %q is not a two letter country code", taxerr.ErrNoDeclaration, country))
	}

	data, err := fs.ReadFile(l.fsys, code+fileExt)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, taxerr.NewConfigurationError(code, taxerr.ErrNoDeclaration)
		}
		return nil, taxerr.NewConfigurationError(code, fmt.Errorf("reading declaration: %w", err))
	}

	var file declarationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, taxerr.NewConfigurationError(code, fmt.Errorf("%w: %v", taxerr.ErrInvalidDeclaration, err))
	}
	if len(file.Rates) == 0 {
		return nil, taxerr.NewConfigurationError(code, fmt.Errorf("%w: no rates declared", taxerr.ErrInvalidDeclaration))
	}

	rates := make([]model.DeclaredRate, 0, len(file.Rates))
	for i, e := range file.Rates {
		r, err := l.toRate(code, e)
		if err != nil {
			return nil, taxerr.NewConfigurationError(code, fmt.Errorf("%w: entry %d: %v", taxerr.ErrInvalidDeclaration, i, err))
		}
		rates = append(rates, r)
	}
	return rates, nil
}

// Countries lists the country codes that have a declaration, sorted.
func (l *Loader) Countries() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("listing declarations: %w", err)
	}
	var codes []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		if code := strings.TrimSuffix(name, fileExt); validCode(code) {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes, nil
}

func (l *Loader) toRate(code string, e declarationEntry) (model.DeclaredRate, error) {
	r := model.DeclaredRate{
		Country:  strings.ToUpper(e.Country),
		Name:     e.Name,
		Priority: e.Priority,
		Order:    e.Order,
		Class:    e.Class,
	}
	if r.Country == "" {
		r.Country = strings.ToUpper(code)
	}
	if r.Name == "" && l.labels != nil {
		r.Name = l.labels.VAT(code)
	}
	if e.Rate != nil {
		d, err := decimal.NewFromString(strings.TrimSpace(*e.Rate))
		if err != nil {
			return r, fmt.Errorf("rate %q: %v", *e.Rate, err)
		}
		r.Rate = decimal.NewNullDecimal(d)
	}
	return r, nil
}

func validCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	for _, c := range code {
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
