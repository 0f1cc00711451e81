package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type encoder func(v any) error

func newEncoder(format string, out io.Writer) (encoder, error) {
	switch format {
	case "json":
		return func(v any) error {
			e := json.NewEncoder(out)
			e.SetIndent("", "  ")
			return e.Encode(v)
		}, nil
	case "yaml", "":
		return func(v any) error { return writeYAML(out, v) }, nil
	default:
		return nil, fmt.Errorf("%w: unknown output format %q", errUsage, format)
	}
}

// writeYAML renders v through its JSON form so field names match the API and
// key order is kept.
func writeYAML(out io.Writer, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	blockStyle(&node)

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return enc.Close()
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
