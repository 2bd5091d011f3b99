// Package profile loads the optional account metadata stored next to series files.
package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/penwyp/go-tally/internal/core/model"
	"github.com/penwyp/go-tally/internal/util"
)

// InvalidError reports a profile file whose content is not a valid profile.
type InvalidError struct {
	Path string
	Err  error
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid profile %s: %v", e.Path, e.Err)
}

func (e *InvalidError) Unwrap() error {
	return e.Err
}

type cached struct {
	profile *model.Profile
	err     error
}

// Loader reads profile files lazily and remembers the outcome per directory.
type Loader struct {
	fileName string
	cache    map[string]cached
}

// NewLoader creates a loader looking for fileName in account directories.
func NewLoader(fileName string) *Loader {
	return &Loader{
		fileName: fileName,
		cache:    make(map[string]cached),
	}
}

// Load returns the profile of the account directory dir. A missing file yields an
// empty profile. Invalid content yields an *InvalidError together with an empty profile,
// so callers can warn and carry on.
func (l *Loader) Load(dir string) (*model.Profile, error) {
	key := filepath.Clean(dir)
	if c, ok := l.cache[key]; ok {
		return c.profile, c.err
	}

	p, err := l.read(filepath.Join(key, l.fileName))
	l.cache[key] = cached{profile: p, err: err}
	return p, err
}

func (l *Loader) read(path string) (*model.Profile, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &model.Profile{}, nil
	}
	if err != nil {
		return &model.Profile{}, &model.PathError{Op: "read", Path: path, Err: err}
	}

	var raw map[string]interface{}
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return &model.Profile{}, &InvalidError{Path: path, Err: err}
	}

	p, err := FromMap(raw)
	if err != nil {
		return &model.Profile{}, &InvalidError{Path: path, Err: err}
	}

	util.LogDebugf("Loaded profile %s (name=%q, %d tags)", path, p.Name, len(p.Tags))
	return p, nil
}

// FromMap builds a profile from a decoded JSON object and validates it.
// Unknown keys are ignored.
func FromMap(raw map[string]interface{}) (*model.Profile, error) {
	p := &model.Profile{}
	errs := validation.Errors{}

	if v, ok := raw["name"]; ok {
		if s, ok := v.(string); ok {
			p.Name = s
		} else {
			errs["name"] = errors.New("must be a string")
		}
	}
	if v, ok := raw["url"]; ok {
		if s, ok := v.(string); ok {
			p.URL = s
		} else {
			errs["url"] = errors.New("must be a string")
		}
	}
	if v, ok := raw["tags"]; ok {
		tags, err := toStrings(v)
		if err != nil {
			errs["tags"] = err
		}
		p.Tags = tags
	}
	if err := errs.Filter(); err != nil {
		return nil, err
	}

	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks field contents of a profile.
func Validate(p *model.Profile) error {
	return validation.ValidateStruct(p,
		validation.Field(&p.URL, is.URL),
		validation.Field(&p.Tags, validation.Each(validation.Required, validation.By(noSpace))),
	)
}

func toStrings(v interface{}) ([]string, error) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, errors.New("must be a list of strings")
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, errors.New("must be a list of strings")
		}
		out = append(out, s)
	}
	return out, nil
}

func noSpace(value interface{}) error {
	s, _ := value.(string)
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			return errors.New("must not contain whitespace")
		}
	}
	return nil
}
