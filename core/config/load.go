package config

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anoideaopen/pluginhost/core/stringsx"
	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPluginDirectory overrides the configured plugin directory.
const EnvPluginDirectory = "PLUGINHOST_PLUGIN_DIRECTORY"

var (
	// ErrCfgBytesEmpty is returned when there is no configuration data to parse.
	ErrCfgBytesEmpty = errors.New("config bytes is empty")

	// ErrUnsupportedFormat is returned for configuration files of an unknown format.
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// viperFormats are the file extensions decoded through viper.
var viperFormats = []string{"json", "yaml", "yml", "toml"}

// Load reads the extensibility configuration from a file. The decoder is picked by
// extension: ".xml" files use the XML element form, json, yaml and toml files are read
// through viper. The EnvPluginDirectory environment variable overrides the plugin
// directory in every format.
//
// The returned configuration is normalized but not validated.
func Load(path string) (*Extensibility, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	switch {
	case ext == "xml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		cfg, err := FromXML(data)
		if err != nil {
			return nil, err
		}

		if dir := os.Getenv(EnvPluginDirectory); dir != "" {
			cfg.PluginDirectory = dir
		}

		return cfg, nil

	case stringsx.OneOf(ext, viperFormats...):
		return loadViper(path)

	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedFormat, path)
	}
}

func loadViper(path string) (*Extensibility, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.BindEnv("pluginDirectory", EnvPluginDirectory); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := new(Extensibility)

	err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.normalize()

	return cfg, nil
}

// Parse decodes configuration data, detecting its format: JSON objects, XML documents
// and YAML otherwise.
func Parse(data []byte) (*Extensibility, error) {
	trimmed := bytes.TrimSpace(data)

	switch {
	case len(trimmed) == 0:
		return nil, ErrCfgBytesEmpty
	case IsJSON(trimmed):
		return FromJSON(trimmed)
	case trimmed[0] == '<':
		return FromXML(trimmed)
	default:
		return FromYAML(trimmed)
	}
}

// IsJSON checks if the provided data is a valid JSON document.
func IsJSON(data []byte) bool {
	return json.Valid(data)
}

// FromJSON parses the provided byte slice containing JSON-encoded configuration.
func FromJSON(data []byte) (*Extensibility, error) {
	if len(data) == 0 {
		return nil, ErrCfgBytesEmpty
	}

	cfg := new(Extensibility)
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal json config: %w", err)
	}

	cfg.normalize()

	return cfg, nil
}

// FromYAML parses the provided byte slice containing YAML-encoded configuration.
func FromYAML(data []byte) (*Extensibility, error) {
	if len(data) == 0 {
		return nil, ErrCfgBytesEmpty
	}

	cfg := new(Extensibility)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml config: %w", err)
	}

	cfg.normalize()

	return cfg, nil
}

type xmlExtensibility struct {
	XMLName         xml.Name      `xml:"extensibility"`
	PluginDirectory string        `xml:"pluginDirectory,attr"`
	Contracts       []xmlContract `xml:"segmentedContracts>contract"`
}

type xmlContract struct {
	Name    string      `xml:"name,attr"`
	Plugins []xmlPlugin `xml:"routablePlugins>plugin"`
}

type xmlPlugin struct {
	ID      string     `xml:"id,attr"`
	Primary bool       `xml:"primary,attr"`
	Claims  []xmlClaim `xml:"methodClaims>claim"`
}

type xmlClaim struct {
	Name string `xml:"name,attr"`
}

// FromXML parses the XML element form of the configuration:
//
//	<extensibility pluginDirectory="plugins">
//	  <segmentedContracts>
//	    <contract name="SegmentedContract">
//	      <routablePlugins>
//	        <plugin id="..." primary="true"/>
//	        <plugin id="...">
//	          <methodClaims><claim name="SomeOtherMethod"/></methodClaims>
//	        </plugin>
//	      </routablePlugins>
//	    </contract>
//	  </segmentedContracts>
//	</extensibility>
func FromXML(data []byte) (*Extensibility, error) {
	if len(data) == 0 {
		return nil, ErrCfgBytesEmpty
	}

	var doc xmlExtensibility
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal xml config: %w", err)
	}

	cfg := &Extensibility{
		PluginDirectory: doc.PluginDirectory,
	}

	for _, xc := range doc.Contracts {
		c := Contract{Name: xc.Name}

		for _, xp := range xc.Plugins {
			id, err := uuid.Parse(xp.ID)
			if err != nil {
				return nil, fmt.Errorf("%w: contract '%s', id '%s': %v", ErrInvalidPluginID, xc.Name, xp.ID, err)
			}

			p := RoutablePlugin{ID: id, Primary: xp.Primary}
			for _, claim := range xp.Claims {
				p.MethodClaims = append(p.MethodClaims, claim.Name)
			}

			c.RoutablePlugins = append(c.RoutablePlugins, p)
		}

		cfg.SegmentedContracts = append(cfg.SegmentedContracts, c)
	}

	cfg.normalize()

	return cfg, nil
}
