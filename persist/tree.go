package persist

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tree is an opaque key-value document: the unit save/load exchange
// with components. Values are whatever yaml.v3 produces when decoding
// into interface{} — scalars, []any, or nested map[string]any (trees
// built in memory may also nest Tree values directly).
type Tree map[string]any

// ErrMissingKey is returned by the typed accessors when a required key
// is absent, letting callers distinguish "not present" from "present
// but wrong type."
var ErrMissingKey = errors.New("persist: missing key")

// ErrMissingClass is returned when a channel element in a persisted
// tree has no "class" key. The engine's Load treats this as fatal only
// for that one element — the rest of the tree still loads.
var ErrMissingClass = errors.New("persist: channel element missing class")

// Fixed load order, per the original engine's load(): channels before
// master, master before palette/tempo/audio, modulation always runs
// (even against an empty tree) because later wiring assumes it exists.
const (
	KeyChannels   = "channels"
	KeyMaster     = "master"
	KeyPalette    = "palette"
	KeyTempo      = "tempo"
	KeyAudio      = "audio"
	KeyComponents = "components"
	KeyOutput     = "output"
	KeyModulation = "modulation"
	KeyOSC        = "osc"
	KeyMIDI       = "midi"
	KeyClass      = "class"
)

// Load reads a Tree from a YAML file.
func Load(path string) (Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("persist: read %s: %w", path, err)
	}
	var t Tree
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("persist: parse %s: %w", path, err)
	}
	return t, nil
}

// Save writes t to a YAML file.
func Save(path string, t Tree) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("persist: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("persist: write %s: %w", path, err)
	}
	return nil
}

// Has reports whether key is present in t, mirroring JsonObject.has in
// the original engine's load-order guards ("if obj.has(KEY_X)").
func (t Tree) Has(key string) bool {
	_, ok := t[key]
	return ok
}

// SubTree fetches a nested Tree by key.
func (t Tree) SubTree(key string) (Tree, error) {
	v, ok := t[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingKey, key)
	}
	switch sub := v.(type) {
	case Tree:
		return sub, nil
	case map[string]any:
		return Tree(sub), nil
	default:
		return nil, fmt.Errorf("persist: %s is not a tree", key)
	}
}

// SubTreeOrEmpty is SubTree but returns an empty Tree instead of an
// error when key is absent — used for the modulation key, which the
// original engine always loads, defaulting to an empty object.
func (t Tree) SubTreeOrEmpty(key string) Tree {
	sub, err := t.SubTree(key)
	if err != nil {
		return Tree{}
	}
	return sub
}

// List fetches a slice of values by key (e.g. the channels array).
func (t Tree) List(key string) ([]any, error) {
	v, ok := t[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingKey, key)
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("persist: %s is not a list", key)
	}
	return list, nil
}

// String fetches a string value by key.
func (t Tree) String(key string) (string, error) {
	v, ok := t[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingKey, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("persist: %s is not a string", key)
	}
	return s, nil
}

// Float fetches a numeric value by key as float64.
func (t Tree) Float(key string) (float64, error) {
	v, ok := t[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingKey, key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("persist: %s is not numeric", key)
	}
}

// Bool fetches a boolean value by key.
func (t Tree) Bool(key string) (bool, error) {
	v, ok := t[key]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrMissingKey, key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("persist: %s is not a bool", key)
	}
	return b, nil
}
