// Package config externalizes the legality policy that section 4.5 (C7)
// of the spec consults, the way funvibe-funxy's internal/ext/config.go
// externalizes funxy.yaml instead of hardcoding Go-binding rules.
//
// Nothing about *what* C7 checks is configurable (that's fixed by the
// language: abstract roots and uninstantiated generics are always
// forbidden as variable types) — only *which concrete names* count as an
// abstract root is data, loaded once at startup and otherwise constant
// for the lifetime of a compilation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LegalityPolicy names the types that may never appear as a variable's
// resolved type, independent of whether they are instantiated.
type LegalityPolicy struct {
	// AbstractRoots lists type names that are abstract class/module roots
	// disallowed as a variable type outright (e.g. "Object", "Value",
	// "Reference", "Number", "Int", "Float" in a Crystal-like language).
	AbstractRoots []string `yaml:"abstract_roots"`
}

// DefaultLegalityPolicy mirrors the abstract roots of a typical
// class-based, generic, type-inferred language's class hierarchy.
func DefaultLegalityPolicy() *LegalityPolicy {
	return &LegalityPolicy{
		AbstractRoots: []string{
			"Object",
			"Value",
			"Reference",
			"Number",
			"Int",
			"Float",
		},
	}
}

// IsAbstractRoot reports whether name is configured as a forbidden
// abstract root.
func (p *LegalityPolicy) IsAbstractRoot(name string) bool {
	if p == nil {
		return false
	}
	for _, n := range p.AbstractRoots {
		if n == name {
			return true
		}
	}
	return false
}

// LoadLegalityPolicy reads a YAML policy file, falling back to the
// defaults for any field left unset. A missing file is not an error: the
// defaults apply, matching ext.Config's "funxy.yaml is optional" stance.
func LoadLegalityPolicy(path string) (*LegalityPolicy, error) {
	policy := DefaultLegalityPolicy()
	if path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return policy, nil
		}
		return nil, fmt.Errorf("reading legality policy %s: %w", path, err)
	}

	overlay := &LegalityPolicy{}
	if err := yaml.Unmarshal(data, overlay); err != nil {
		return nil, fmt.Errorf("parsing legality policy %s: %w", path, err)
	}
	if len(overlay.AbstractRoots) > 0 {
		policy.AbstractRoots = overlay.AbstractRoots
	}
	return policy, nil
}
