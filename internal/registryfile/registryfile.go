// Package registryfile decodes the YAML/JSON registry files (sources,
// publishers) the services are configured with.
package registryfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned when no decoder accepts the document.
var ErrUnknownFormat = errors.New("format not recognized (expected YAML or JSON)")

type decoder struct {
	ext string
	fn  func([]byte, any) error
}

var decoders = []decoder{
	{ext: ".yaml", fn: yaml.Unmarshal},
	{ext: ".yml", fn: yaml.Unmarshal},
	{ext: ".json", fn: json.Unmarshal},
}

// Load reads path and decodes it into v, choosing the decoder by extension.
func Load(path string, v any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("file path is empty")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return Unmarshal(raw, filepath.Ext(path), v)
}

// Unmarshal decodes data into v. An empty ext tries every decoder in turn;
// an unknown ext is an error.
func Unmarshal(data []byte, ext string, v any) error {
	ext = strings.ToLower(strings.TrimSpace(ext))

	var errs []error
	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		err := d.fn(data, v)
		if err == nil {
			return nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", strings.TrimPrefix(d.ext, "."), err))
	}
	if len(errs) == 0 {
		return fmt.Errorf("%w: extension %q", ErrUnknownFormat, ext)
	}
	return errors.Join(append([]error{ErrUnknownFormat}, errs...)...)
}
