// Package manifest parses package.json dependency manifests and locates
// them inside a repository tree.
package manifest

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// FileName is the manifest file repolens looks for.
const FileName = "package.json"

// Manifest is the normalized view of a package.json file.
type Manifest struct {
	// Name is the package name, if declared.
	Name string `json:"name,omitempty"`

	// Dependencies merges "dependencies" and "devDependencies". Dev entries
	// are merged second and overwrite runtime entries with the same key.
	Dependencies map[string]string `json:"dependencies"`

	// Scripts maps script names to their shell command text.
	Scripts map[string]string `json:"scripts"`
}

// rawManifest mirrors the parts of package.json that repolens reads.
// Values are kept raw so that non-string versions do not fail the parse.
type rawManifest struct {
	Name            json.RawMessage            `json:"name"`
	Dependencies    map[string]json.RawMessage `json:"dependencies"`
	DevDependencies map[string]json.RawMessage `json:"devDependencies"`
	Scripts         map[string]json.RawMessage `json:"scripts"`
}

// Parse decodes raw manifest text. It returns nil when the text is empty,
// is not valid JSON, or is not a JSON object. A nil Manifest means
// "no manifest" and every accessor treats it like an empty one.
func Parse(raw []byte) *Manifest {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var rm rawManifest
	if err := json.Unmarshal(trimmed, &rm); err != nil {
		return nil
	}

	m := &Manifest{
		Name:         rawString(rm.Name),
		Dependencies: make(map[string]string, len(rm.Dependencies)+len(rm.DevDependencies)),
		Scripts:      make(map[string]string, len(rm.Scripts)),
	}
	for k, v := range rm.Dependencies {
		m.Dependencies[k] = rawString(v)
	}
	for k, v := range rm.DevDependencies {
		m.Dependencies[k] = rawString(v)
	}
	for k, v := range rm.Scripts {
		m.Scripts[k] = rawString(v)
	}
	return m
}

// ParseString is a convenience wrapper around Parse for optional text.
func ParseString(raw *string) *Manifest {
	if raw == nil {
		return nil
	}
	return Parse([]byte(*raw))
}

// rawString returns the decoded string for a JSON string value, or the raw
// JSON text for anything else. null yields "".
func rawString(v json.RawMessage) string {
	if len(v) == 0 || string(v) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return string(v)
}

// Has reports whether alias is a dependency key.
func (m *Manifest) Has(alias string) bool {
	if m == nil {
		return false
	}
	_, ok := m.Dependencies[alias]
	return ok
}

// Script returns the command for a script name and whether it exists.
func (m *Manifest) Script(name string) (string, bool) {
	if m == nil {
		return "", false
	}
	cmd, ok := m.Scripts[name]
	return cmd, ok
}

// Len returns the number of merged dependency entries.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Dependencies)
}

// ScriptText concatenates every script command, ordered by script name,
// separated by spaces and lower-cased. It is used for substring markers.
func (m *Manifest) ScriptText() string {
	if m == nil || len(m.Scripts) == 0 {
		return ""
	}
	names := make([]string, 0, len(m.Scripts))
	for name := range m.Scripts {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, m.Scripts[name])
	}
	return strings.ToLower(strings.Join(parts, " "))
}
