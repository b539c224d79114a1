package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"
)

// Rune aliases for keys that can't be bare single-char YAML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
	"colon":     ':',
	"hash":      '#',
}

// keyByName resolves tcell key names ("up", "ctrl-s", "f1") case-insensitively
var keyByName = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	return m
}()

// keymapFile is the YAML layout: section → key → action name
type keymapFile struct {
	Keys  map[string]string `yaml:"keys"`
	Runes map[string]string `yaml:"runes"`
}

// LoadKeyConfig parses YAML keymap data into a sparse override KeyTable
// Only sections/keys present in the document are populated
// Returns error on unknown action names, invalid key names, or parse failure
func LoadKeyConfig(data []byte) (*KeyTable, error) {
	var raw keymapFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}

	kt := &KeyTable{}
	if raw.Keys != nil {
		keys, err := parseSpecialKeySection(raw.Keys)
		if err != nil {
			return nil, err
		}
		kt.SpecialKeys = keys
	}
	if raw.Runes != nil {
		runes, err := parseRuneSection(raw.Runes)
		if err != nil {
			return nil, err
		}
		kt.Runes = runes
	}
	return kt, nil
}

// parseRuneSection parses rune key → action name bindings
func parseRuneSection(data map[string]string) (map[rune]KeyEntry, error) {
	result := make(map[rune]KeyEntry, len(data))

	for keyStr, actionName := range data {
		r, err := resolveRune(keyStr)
		if err != nil {
			return nil, fmt.Errorf("[runes] key %q: %w", keyStr, err)
		}

		entry, err := resolveAction(actionName)
		if err != nil {
			return nil, fmt.Errorf("[runes] key %q: %w", keyStr, err)
		}

		result[r] = entry
	}

	return result, nil
}

// parseSpecialKeySection parses tcell key name → action name bindings
func parseSpecialKeySection(data map[string]string) (map[tcell.Key]KeyEntry, error) {
	result := make(map[tcell.Key]KeyEntry, len(data))

	for keyStr, actionName := range data {
		k, ok := keyByName[strings.ToLower(keyStr)]
		if !ok {
			return nil, fmt.Errorf("[keys] unknown key name: %q", keyStr)
		}

		entry, err := resolveAction(actionName)
		if err != nil {
			return nil, fmt.Errorf("[keys] key %q: %w", keyStr, err)
		}

		result[k] = entry
	}

	return result, nil
}

// resolveRune converts a YAML key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}

	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}

	return 0, fmt.Errorf("invalid rune key: %q (expected single character or alias)", s)
}

// resolveAction converts an action name string to a KeyEntry
func resolveAction(name string) (KeyEntry, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	entry, ok := ActionEntry(name)
	if !ok {
		return KeyEntry{}, fmt.Errorf("unknown action: %q", name)
	}
	return entry, nil
}

// MergeKeyTable returns a new KeyTable with base values overridden by non-nil override maps
// Override entries with BehaviorNone ("none" action) delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	mergeMap(result.SpecialKeys, override.SpecialKeys)
	mergeMap(result.Runes, override.Runes)
	return result
}

func mergeMap[K comparable](base, override map[K]KeyEntry) {
	for k, v := range override {
		if v.Behavior == BehaviorNone {
			delete(base, k)
		} else {
			base[k] = v
		}
	}
}
