// Package prefs keeps the last-used trackbar values of each demo program in
// a small JSON file.
package prefs

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
)

const appDir = "visionlab"

// Prefs stores preferences as a key-value map.
type Prefs struct {
	mu     sync.RWMutex
	values map[string]interface{}
	path   string
}

// Path returns the preferences file of program:
// <UserConfigDir>/visionlab/<program>.json.
func Path(program string) string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, appDir, program+".json")
}

// Load reads the preferences of program. A missing or unreadable file gives
// empty preferences.
func Load(program string) *Prefs {
	return LoadFile(Path(program))
}

// LoadFile reads preferences from path.
func LoadFile(path string) *Prefs {
	p := &Prefs{values: make(map[string]interface{}), path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return p
	}
	var values map[string]interface{}
	if err := json.Unmarshal(data, &values); err != nil || values == nil {
		// Unreadable files give defaults and are replaced on Save.
		return p
	}
	p.values = values
	return p
}

// Memory returns preferences that are never read from or written to disk.
func Memory() *Prefs {
	return &Prefs{values: make(map[string]interface{})}
}

// Save writes preferences to disk. It is a no-op for Memory preferences.
func (p *Prefs) Save() error {
	if p.path == "" {
		return nil
	}
	p.mu.RLock()
	data, err := json.MarshalIndent(p.values, "", "  ")
	p.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("could not encode preferences: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("could not create preferences dir: %w", err)
	}
	return os.WriteFile(p.path, data, 0o644)
}

// Int returns an integer preference, or fallback if not set. JSON numbers
// decode as float64 and are rounded.
func (p *Prefs) Int(key string, fallback int) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	switch n := p.values[key].(type) {
	case float64:
		return int(math.Round(n))
	case int:
		return n
	}
	return fallback
}

// SetInt stores an integer preference.
func (p *Prefs) SetInt(key string, val int) {
	p.mu.Lock()
	p.values[key] = val
	p.mu.Unlock()
}
