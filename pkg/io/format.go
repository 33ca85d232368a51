package io

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/treesearch/pkg/errors"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

var formatByExt = map[string]Format{
	".json": FormatJSON,
	".toml": FormatTOML,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
}

// FormatFromPath returns the format implied by path's extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formatByExt[ext]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported file extension %q (want .json, .toml, .yaml or .yml)", ext)
}

// ParseFormat accepts "json", "toml", "yaml" and "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", s)
}

// decode reads one document from r into v, rejecting unknown keys.
func decode(r io.Reader, f Format, v any) error {
	var err error
	switch f {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(v)
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.NewDecoder(r).Decode(v)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				keys := make([]string, len(undecoded))
				for i, k := range undecoded {
					keys[i] = k.String()
				}
				sort.Strings(keys)
				err = fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
			}
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(v)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", f)
	}
	return nil
}

// encode writes v to w as a single document.
func encode(w io.Writer, f Format, v any) error {
	var err error
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(v)
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(v); err == nil {
			err = enc.Close()
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	return nil
}
