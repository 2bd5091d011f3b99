package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/penwyp/go-tally/internal/core/model"
)

// EpochFormat is the timestamp format token meaning "Unix epoch seconds".
const EpochFormat = "epoch"

// Config contains everything the commands need to locate and interpret series files
type Config struct {
	// Data tree
	DataRoot      string `yaml:"data_root"`
	ProfileFile   string `yaml:"profile_file"`
	GraphListFile string `yaml:"graph_list_file"`
	ExportFile    string `yaml:"export_file"`

	// Series kinds by file extension
	IntegerExtensions []string `yaml:"integer_extensions"`
	StringExtensions  []string `yaml:"string_extensions"`

	// Manual timestamp entry
	TimestampFormats []string `yaml:"timestamp_formats"`
	Timezone         string   `yaml:"timezone"`

	// Logging
	LogFormat string `yaml:"log_format"` // text, json
}

// NewDefaultConfig returns a Config with the defaults used when no file is given.
func NewDefaultConfig() *Config {
	return &Config{
		DataRoot:          "data",
		ProfileFile:       model.DefaultProfileFile,
		GraphListFile:     model.DefaultGraphListFile,
		ExportFile:        model.DefaultExportFile,
		IntegerExtensions: []string{".csv"},
		StringExtensions:  []string{".journal"},
		TimestampFormats: []string{
			"%Y-%m-%d %H:%M:%S",
			"%Y-%m-%d %H:%M",
			"%Y-%m-%dT%H:%M:%S",
			"%Y-%m-%d",
			EpochFormat,
		},
		Timezone:  "Local",
		LogFormat: "text",
	}
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.DataRoot, validation.Required),
		validation.Field(&c.ProfileFile, validation.Required),
		validation.Field(&c.GraphListFile, validation.Required),
		validation.Field(&c.ExportFile, validation.Required),
		validation.Field(&c.IntegerExtensions, validation.Required, validation.Each(validation.By(isExtension))),
		validation.Field(&c.StringExtensions, validation.Each(validation.By(isExtension))),
		validation.Field(&c.TimestampFormats, validation.Required, validation.Each(validation.Required)),
		validation.Field(&c.Timezone, validation.By(isTimezone)),
		validation.Field(&c.LogFormat, validation.In("text", "json")),
	); err != nil {
		return err
	}

	for _, ext := range c.StringExtensions {
		for _, other := range c.IntegerExtensions {
			if strings.EqualFold(ext, other) {
				return fmt.Errorf("extension %q is configured as both integer and string", ext)
			}
		}
	}
	return nil
}

// KindOf returns the value kind of a series file by its extension.
func (c *Config) KindOf(path string) (model.Kind, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range c.IntegerExtensions {
		if strings.ToLower(e) == ext {
			return model.KindInteger, true
		}
	}
	for _, e := range c.StringExtensions {
		if strings.ToLower(e) == ext {
			return model.KindString, true
		}
	}
	return 0, false
}

// Location returns the configured timezone, falling back to Local.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// GraphListPath is the graph list file resolved against the data root.
func (c *Config) GraphListPath() string {
	if filepath.IsAbs(c.GraphListFile) {
		return c.GraphListFile
	}
	return filepath.Join(c.DataRoot, c.GraphListFile)
}

func isExtension(value interface{}) error {
	ext, _ := value.(string)
	if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
		return errors.New("must start with a dot")
	}
	return nil
}

func isTimezone(value interface{}) error {
	tz, _ := value.(string)
	if tz == "" || tz == "Local" {
		return nil
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Errorf("invalid timezone '%s'", tz)
	}
	return nil
}
