package options

import (
	"errors"
	"fmt"

	opts "github.com/goliatone/go-options"
)

// ErrInvalidSetting is matched by every *SettingError.
var ErrInvalidSetting = errors.New("options: invalid setting")

// SettingError reports a render setting whose effective value has the wrong
// type. Scope names the layer that supplied the value.
type SettingError struct {
	Path  string
	Scope string
	Want  string
	Value any
}

func (e *SettingError) Error() string {
	return fmt.Sprintf("options: %s from %s scope must be %s, got %T", e.Path, e.Scope, e.Want, e.Value)
}

// Is reports whether target is ErrInvalidSetting.
func (e *SettingError) Is(target error) bool {
	return target == ErrInvalidSetting
}

// layers is the merged view of the system and request render settings.
type layers struct {
	options *opts.Options[map[string]any]
}

func stack(base RenderSettings, overrides map[string]any) (*layers, error) {
	scoped := []opts.Layer[map[string]any]{opts.NewLayer(SystemScope, base.Data())}
	if len(overrides) > 0 {
		scoped = append(scoped, opts.NewLayer(RequestScope, overrides))
	}
	s, err := opts.NewStack(scoped...)
	if err != nil {
		return nil, fmt.Errorf("options: stack render settings: %w", err)
	}
	merged, err := s.Merge()
	if err != nil {
		return nil, fmt.Errorf("options: merge render settings: %w", err)
	}
	return &layers{options: merged}, nil
}

// lookup returns the effective value at path and the scope that won it.
func (l *layers) lookup(path string) (any, string, error) {
	value, trace, err := l.options.ResolveWithTrace(path)
	if err != nil {
		return nil, "", fmt.Errorf("options: resolve %s: %w", path, err)
	}
	for _, p := range trace.Layers {
		if p.Found {
			return value, p.Scope.Name, nil
		}
	}
	return value, SystemScope.Name, nil
}

func (l *layers) str(path string) (string, error) {
	value, scope, err := l.lookup(path)
	if err != nil {
		return "", err
	}
	s, ok := value.(string)
	if !ok {
		return "", &SettingError{Path: path, Scope: scope, Want: "a string", Value: value}
	}
	return s, nil
}

func (l *layers) boolean(path string) (bool, error) {
	value, scope, err := l.lookup(path)
	if err != nil {
		return false, err
	}
	b, ok := value.(bool)
	if !ok {
		return false, &SettingError{Path: path, Scope: scope, Want: "a boolean", Value: value}
	}
	return b, nil
}

func (l *layers) strs(path string) ([]string, error) {
	value, scope, err := l.lookup(path)
	if err != nil {
		return nil, err
	}
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, &SettingError{Path: path, Scope: scope, Want: "a list of strings", Value: item}
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, &SettingError{Path: path, Scope: scope, Want: "a list of strings", Value: value}
}
