// Package patch stores parameter snapshots as JSON files.
package patch

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cbegin/sprockit-go/internal/debug"
	"github.com/cbegin/sprockit-go/internal/params"
)

// Version is the patch file format written by Save.
const Version = 1

var (
	ErrVersion      = errors.New("unsupported patch version")
	ErrUnknownParam = errors.New("unknown parameter")
	ErrRange        = errors.New("value out of range")
)

// Error reports a patch file that could not be read or applied.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("patch %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Patch is a named set of slot values keyed by parameter name.
type Patch struct {
	Version int            `json:"version"`
	Name    string         `json:"name,omitempty"`
	Values  map[string]int `json:"values"`
	Drone   bool           `json:"drone,omitempty"`
}

// Default returns the boot panel as a patch.
func Default() *Patch {
	p := Capture(params.New())
	p.Name = "default"
	return p
}

// Capture snapshots every slot value of s.
func Capture(s *params.State) *Patch {
	p := &Patch{
		Version: Version,
		Values:  make(map[string]int, params.Count),
		Drone:   s.Drone,
	}
	for i := 0; i < params.Count; i++ {
		p.Values[params.Param(i).String()] = int(s.Value[i])
	}
	return p
}

// Validate checks the version, names and value ranges.
func (p *Patch) Validate() error {
	if p.Version != Version {
		return fmt.Errorf("%w: %d", ErrVersion, p.Version)
	}
	for name, v := range p.Values {
		if _, ok := params.Lookup(name); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownParam, name)
		}
		if v < 0 || v > 255 {
			return fmt.Errorf("%w: %s=%d", ErrRange, name, v)
		}
	}
	return nil
}

// Apply recalls the patch as external overrides, the same path a control
// change takes. The slot under LFO modulation keeps its modulated value.
func (p *Patch) Apply(s *params.State) error {
	if err := p.Validate(); err != nil {
		return err
	}
	// LFODest first so the target check below sees the recalled destination.
	if v, ok := p.Values[params.LFODest.String()]; ok {
		set(s, params.LFODest, uint8(v), s.LFOTarget())
	}
	target := s.LFOTarget()
	for name, v := range p.Values {
		slot, _ := params.Lookup(name)
		if slot == params.LFODest {
			continue
		}
		set(s, slot, uint8(v), target)
	}
	s.Drone = p.Drone
	return nil
}

func set(s *params.State, slot params.Param, v uint8, target params.Param) {
	s.Override[slot] = v
	s.Source[slot] = params.External
	if slot != target {
		s.Value[slot] = v
	}
}

// Dir is where named patches live.
func Dir() (string, error) {
	dir, err := debug.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "patches"), nil
}

// Path returns the file for a named patch.
func Path(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+".json"), nil
}

// Load reads a named patch. A missing "default" patch yields Default.
func Load(name string) (*Patch, error) {
	path, err := Path(name)
	if err != nil {
		return nil, err
	}
	p, err := LoadFile(path)
	if err != nil && name == "default" && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return p, err
}

// LoadFile reads and validates a patch file.
func LoadFile(path string) (*Patch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	var p Patch
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	if err := p.Validate(); err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	debug.Log("patch", "loaded %s (%d values)", path, len(p.Values))
	return &p, nil
}

// Save writes the patch under its name in Dir.
func (p *Patch) Save() error {
	if p.Name == "" {
		return &Error{Path: "", Err: errors.New("patch has no name")}
	}
	path, err := Path(p.Name)
	if err != nil {
		return err
	}
	return p.SaveFile(path)
}

// SaveFile writes the patch to path, creating parent directories.
func (p *Patch) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &Error{Path: path, Err: err}
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return &Error{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &Error{Path: path, Err: err}
	}
	debug.Log("patch", "saved %s", path)
	return nil
}

// List returns the names of saved patches, sorted.
func List() ([]string, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}
