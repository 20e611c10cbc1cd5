// Package config loads the optional sensorsgen.toml file of the application
// being instrumented.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	// FileName is the name of the configuration file looked up in the
	// application directory.
	FileName = "sensorsgen.toml"

	DefaultSDKImportPath     = "github.com/sensorsdata/sa-sdk-go/sensorsanalytics"
	DefaultSharedInstance    = "SharedInstance"
	DefaultMethodOf          = "MethodOf"
	DefaultStartWithTag      = "StartWithTag"
	DefaultDirectivePrefix   = "sensors"
	DefaultDiffFileName      = "sensors-instrumentation.diff"
	DefaultRecoveredLogLabel = "sensorsanalytics"
)

// Config describes the analytics SDK the generated code calls and how
// directives are spelled in the instrumented sources.
type Config struct {
	SDK        SDK        `toml:"sdk"`
	Directives Directives `toml:"directives"`
	Output     Output     `toml:"output"`

	// Path is the file the configuration was read from, empty when the
	// defaults are in use.
	Path string `toml:"-"`
}

// SDK names the entry points of the analytics client.
type SDK struct {
	ImportPath     string `toml:"import_path"`
	SharedInstance string `toml:"shared_instance"`
	MethodOf       string `toml:"method_of"`
	StartWithTag   string `toml:"start_with_tag"`
	// LogLabel prefixes the message logged when generated code recovers
	// from a panic.
	LogLabel string `toml:"log_label"`
}

// Directives configures the comment directive spelling.
type Directives struct {
	Prefix string `toml:"prefix"`
}

// Output configures where the diff is written.
type Output struct {
	Diff string `toml:"diff"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads sensorsgen.toml from dir. A missing file is not an error, the
// defaults are returned instead.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName), true)
}

// LoadFile reads the configuration at path. When optional is true a missing
// file yields the defaults.
func LoadFile(path string, optional bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrapf(err, "cannot read %s", path)
	}

	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrapf(err, "parse error in %s", path)
	}
	c.Path = path
	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid configuration in %s", path)
	}
	return &c, nil
}

// Validate checks that the configured names can be used in generated code.
func (c *Config) Validate() error {
	if strings.ContainsAny(c.SDK.ImportPath, " \t\"") {
		return errors.Errorf("sdk.import_path %q is not a valid import path", c.SDK.ImportPath)
	}
	if strings.ContainsAny(c.Directives.Prefix, " \t:") {
		return errors.Errorf("directives.prefix %q must not contain spaces or colons", c.Directives.Prefix)
	}
	return nil
}

// DirectiveMarker returns the comment prefix that starts every directive,
// e.g. "//sensors:".
func (c *Config) DirectiveMarker() string {
	return "//" + c.Directives.Prefix + ":"
}

func (c *Config) applyDefaults() {
	c.SDK.ImportPath = setDefault(c.SDK.ImportPath, DefaultSDKImportPath)
	c.SDK.SharedInstance = setDefault(c.SDK.SharedInstance, DefaultSharedInstance)
	c.SDK.MethodOf = setDefault(c.SDK.MethodOf, DefaultMethodOf)
	c.SDK.StartWithTag = setDefault(c.SDK.StartWithTag, DefaultStartWithTag)
	c.SDK.LogLabel = setDefault(c.SDK.LogLabel, DefaultRecoveredLogLabel)
	c.Directives.Prefix = setDefault(c.Directives.Prefix, DefaultDirectivePrefix)
	c.Output.Diff = setDefault(c.Output.Diff, DefaultDiffFileName)
}

func setDefault(value, defaultValue string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}
