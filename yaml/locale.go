// Package yaml loads locale catalog overrides from YAML files.
package yaml

import (
	"fmt"
	"os"

	"github.com/fwojciec/chatmbti"
	"gopkg.in/yaml.v3"
)

// Compile-time interface verification.
var _ chatmbti.LocaleLoader = (*LocaleLoader)(nil)

// LocaleLoader implements chatmbti.LocaleLoader. Keys present in the file
// replace the base catalog's strings; everything else is kept.
type LocaleLoader struct{}

// NewLocaleLoader returns a new LocaleLoader.
func NewLocaleLoader() *LocaleLoader {
	return &LocaleLoader{}
}

// Load reads the catalog at path on top of base. base is not modified.
func (l *LocaleLoader) Load(path string, base chatmbti.Locale) (chatmbti.Locale, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return chatmbti.Locale{}, fmt.Errorf("read locale file: %w", err)
	}
	loc := base.Clone()
	if err := yaml.Unmarshal(data, &loc); err != nil {
		return chatmbti.Locale{}, fmt.Errorf("parse locale file %s: %w", path, err)
	}
	return loc, nil
}
