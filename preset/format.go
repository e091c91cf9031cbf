package preset

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/amonks/routine/internal/validation"
)

// Format is a preset file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// ParseFormat accepts "toml", "yaml", or "yml".
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(value, ".")) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", validation.FormatInvalidValueError(ErrUnknownFormat, Format(value), []Format{FormatTOML, FormatYAML})
}

// FormatOf returns the format implied by a file name.
func FormatOf(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Marshal encodes p in format f.
func Marshal(p Preset, f Format) ([]byte, error) {
	switch f {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(p); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		data, err := yaml.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Unmarshal decodes a preset encoded in format f.
func Unmarshal(data []byte, f Format) (Preset, error) {
	var p Preset
	switch f {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &p); err != nil {
			return Preset{}, fmt.Errorf("decode toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Preset{}, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return p, nil
}
