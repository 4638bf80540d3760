// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/blockpatch/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for patchfile parsers
type Parser interface {
	// 📝 Parse parses the patchfile from bytes
	Parse(ctx context.Context, data []byte) (*Patchfile, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 RuleSpec represents a single literal substitution in the patchfile
type RuleSpec struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`       // Optional label used in reports
	Search  string `json:"search" yaml:"search"`                       // Exact text to find (required)
	Replace string `json:"replace,omitempty" yaml:"replace,omitempty"` // Replacement text
}

// 📚 Patchfile represents the complete configuration for one run
type Patchfile struct {
	Target     string     `json:"target" yaml:"target"`                               // Path or glob that must resolve to exactly one file
	OnMultiple string     `json:"on_multiple,omitempty" yaml:"on_multiple,omitempty"` // "fail" (default) or "all"
	Backup     bool       `json:"backup,omitempty" yaml:"backup,omitempty"`           // Write <target>.orig before overwriting
	Rules      []RuleSpec `json:"rules" yaml:"rules"`                                 // Ordered substitutions

	location string // Path the patchfile was loaded from
}

// 🎯 Load loads a patchfile from the given path. The format is determined
// by the file extension: .json, .yaml/.yml, or .hcl. A .blockpatch file is
// tried as YAML first, then HCL.
func Load(ctx context.Context, path string) (*Patchfile, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading patchfile")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading patchfile: %w", err)
	}

	ext := filepath.Ext(path)
	if ext == ".blockpatch" || filepath.Base(path) == ".blockpatch" {
		pf, yamlErr := (&YAMLParser{}).Parse(ctx, data)
		if yamlErr == nil {
			return finish(pf, path)
		}
		pf, hclErr := (&HCLParser{}).Parse(ctx, data)
		if hclErr == nil {
			return finish(pf, path)
		}
		return nil, errors.Errorf("parsing .blockpatch as YAML or HCL: %w", yamlErr)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	pf, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing patchfile: %w", err)
	}

	return finish(pf, path)
}

func finish(pf *Patchfile, path string) (*Patchfile, error) {
	pf.location = path
	if err := pf.Validate(); err != nil {
		return nil, errors.Errorf("validating patchfile: %w", err)
	}
	return pf, nil
}

// 🔍 Validate checks if the patchfile is valid
func (pf *Patchfile) Validate() error {
	if pf.Target == "" {
		return errors.Errorf("target is required")
	}
	if len(pf.Rules) == 0 {
		return errors.Errorf("at least one rule is required")
	}
	for i, rule := range pf.Rules {
		if rule.Search == "" {
			return errors.Errorf("rule %d: search is required", i)
		}
	}
	switch pf.OnMultiple {
	case "", "fail", "all":
	default:
		return errors.Errorf("on_multiple must be %q or %q, got %q", "fail", "all", pf.OnMultiple)
	}

	pf.Target = filepath.Clean(pf.Target)
	return nil
}

// 📍 Location returns the path the patchfile was loaded from
func (pf *Patchfile) Location() string {
	return pf.location
}

// 🎯 RuleSet converts the patchfile rules into an engine RuleSet
func (pf *Patchfile) RuleSet() (*patch.RuleSet, error) {
	rules := make([]patch.Rule, 0, len(pf.Rules))
	for _, spec := range pf.Rules {
		rules = append(rules, patch.Rule{
			Name:    spec.Name,
			Search:  spec.Search,
			Replace: spec.Replace,
		})
	}
	return patch.NewRuleSet(rules...)
}

// 🎯 Policy returns the engine policy for multiple matches
func (pf *Patchfile) Policy() patch.MultiplePolicy {
	if pf.OnMultiple == "all" {
		return patch.MultipleReplaceAll
	}
	return patch.MultipleFail
}

// 📝 String returns a string representation of the patchfile
func (pf *Patchfile) String() string {
	return fmt.Sprintf("%s (%d rules)", pf.Target, len(pf.Rules))
}
