package tree

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrUnknownComponent is returned when a fixture names a component that was
// not registered with WithComponents.
var ErrUnknownComponent = errors.New("tree: unknown component")

// validate is the shared validator instance.
var validate = validator.New()

type parseConfig struct {
	codec      Codec
	components map[string]any
}

// ParseOption configures Parse.
type ParseOption func(*parseConfig)

// WithCodec forces a codec instead of detecting one from the content.
func WithCodec(c Codec) ParseOption {
	return func(cfg *parseConfig) {
		cfg.codec = c
	}
}

// WithComponents maps fixture component names to component values. A node
// with `component: Dialog` gets components["Dialog"] as its Component, so
// ByType matches it by that value's type.
func WithComponents(components map[string]any) ParseOption {
	return func(cfg *parseConfig) {
		cfg.components = components
	}
}

// Parse decodes a fixture tree.
//
// Example fixture:
//
//	tag: div
//	children:
//	  - component: Dialog
//	    children:
//	      - tag: button
//	        props: {label: OK}
func Parse(data []byte, opts ...ParseOption) (*Node, error) {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	codec := cfg.codec
	if codec == nil {
		codec = Detect(data)
	}

	var root Node
	if err := codec.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decode %s fixture: %w", codec.ContentType(), err)
	}

	if err := validate.Struct(&root); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}

	var resolveErr error
	Walk(&root, func(n *Node) bool {
		if n.Name == "" {
			return true
		}
		component, ok := cfg.components[n.Name]
		if !ok {
			resolveErr = fmt.Errorf("%w %q", ErrUnknownComponent, n.Name)
			return false
		}
		n.Component = component
		return true
	})
	if resolveErr != nil {
		return nil, resolveErr
	}

	return &root, nil
}
