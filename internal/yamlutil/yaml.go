// Package yamlutil funnels all YAML handling through one place: lenient
// decoding for front matter, strict decoding for config files, and encoding
// for the derived document headers. Callers never import the YAML library
// directly.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps YAML input. Front matter blocks and config files are
// small; anything larger is a runaway input, not a document.
const MaxInputSize = 1 << 20

var (
	ErrEmptyInput     = errors.New("yamlutil: empty input")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
)

// Unmarshal decodes YAML into v, keeping unknown fields. Front matter goes
// through here: lecture authors carry arbitrary extra keys.
func Unmarshal(data []byte, v any) error {
	return decode(data, v)
}

// UnmarshalStrict rejects unknown fields. Config files go through here so
// typos surface as errors instead of silently defaulting.
func UnmarshalStrict(data []byte, v any) error {
	return decode(data, v, yaml.Strict())
}

func decode(data []byte, v any, opts ...yaml.DecodeOption) error {
	switch {
	case len(data) == 0:
		return ErrEmptyInput
	case len(data) > MaxInputSize:
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Marshal encodes v as YAML for the derived document headers.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}
