package core

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/go-loom/loom/pkg/graphics"
)

// Env is an immutable bag of configuration values (theme colors, platform
// metrics) threaded alongside data through every widget operation. Deriving
// a new Env never mutates an existing one, so handles can be shared freely
// and compared by identity.
type Env struct {
	store *envStore
}

type envStore struct {
	values map[string]any
}

// Key is a typed handle into an Env. The type parameter fixes the value
// type at the use site; reading a key whose stored value has a different
// type panics, since that is a programming error, not a runtime condition.
type Key[V any] string

// EmptyEnv returns an Env with no values.
func EmptyEnv() Env {
	return Env{store: &envStore{values: map[string]any{}}}
}

// Adding returns a derived Env containing everything in e plus the given
// raw key/value pair. Prefer the typed Add.
func (e Env) Adding(key string, value any) Env {
	values := make(map[string]any, len(e.store.values)+1)
	for k, v := range e.store.values {
		values[k] = v
	}
	values[key] = value
	return Env{store: &envStore{values: values}}
}

// Add returns a derived Env with the typed key set.
func Add[V any](e Env, key Key[V], value V) Env {
	return e.Adding(string(key), value)
}

// KeyOf reads a typed key. It panics if the key is missing or holds a value
// of a different type.
func KeyOf[V any](e Env, key Key[V]) V {
	raw, ok := e.store.values[string(key)]
	if !ok {
		panic(fmt.Sprintf("core: env key %q not found", string(key)))
	}
	value, ok := raw.(V)
	if !ok {
		panic(fmt.Sprintf("core: env key %q holds %T, not the requested type", string(key), raw))
	}
	return value
}

// TryKeyOf reads a typed key, reporting whether it was present with the
// requested type.
func TryKeyOf[V any](e Env, key Key[V]) (V, bool) {
	raw, ok := e.store.values[string(key)]
	if !ok {
		var zero V
		return zero, false
	}
	value, ok := raw.(V)
	if !ok {
		var zero V
		return zero, false
	}
	return value, true
}

// Same reports whether two Envs share the same backing store. Because Envs
// are immutable, identity implies equivalence; distinct stores are treated
// as changed even when their contents coincide.
func (e Env) Same(other Env) bool {
	return e.store == other.store
}

// Clone returns a handle to the same immutable store.
func (e Env) Clone() Env {
	return e
}

// EnvFromYAML builds an Env from a YAML document of theme values. Nested
// mappings flatten into dotted keys; scalars become float64, bool, or
// string, and strings of the form "#RRGGBB" or "#AARRGGBB" become
// graphics.Color.
func EnvFromYAML(doc []byte) (Env, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(doc, &raw); err != nil {
		return Env{}, fmt.Errorf("core: failed to parse env document: %w", err)
	}
	values := map[string]any{}
	flattenEnv("", raw, values)
	return Env{store: &envStore{values: values}}, nil
}

// LoadEnvFile reads a YAML theme file. A missing file yields an empty Env,
// matching optional configuration semantics.
func LoadEnvFile(path string) (Env, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return EmptyEnv(), nil
		}
		return Env{}, fmt.Errorf("core: failed to read env file: %w", err)
	}
	return EnvFromYAML(doc)
}

func flattenEnv(prefix string, raw map[string]any, out map[string]any) {
	for k, v := range raw {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch value := v.(type) {
		case map[string]any:
			flattenEnv(key, value, out)
		case int:
			out[key] = float64(value)
		case float64:
			out[key] = value
		case bool:
			out[key] = value
		case string:
			if color, ok := parseColor(value); ok {
				out[key] = color
			} else {
				out[key] = value
			}
		}
	}
}

func parseColor(s string) (graphics.Color, bool) {
	if len(s) == 0 || s[0] != '#' {
		return 0, false
	}
	hex := s[1:]
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, false
	}
	switch len(hex) {
	case 6:
		return graphics.Color(0xFF000000 | uint32(n)), true
	case 8:
		return graphics.Color(uint32(n)), true
	default:
		return 0, false
	}
}
