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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the patchfile from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Patchfile, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "patchfile.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclRule struct {
		Name    string `hcl:"name,label"`
		Search  string `hcl:"search"`
		Replace string `hcl:"replace,optional"`
	}
	type hclPatchfile struct {
		Target     string    `hcl:"target"`
		OnMultiple string    `hcl:"on_multiple,optional"`
		Backup     bool      `hcl:"backup,optional"`
		Rules      []hclRule `hcl:"rule,block"`
	}

	// Decode HCL
	var hclPf hclPatchfile
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclPf)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	pf := &Patchfile{
		Target:     hclPf.Target,
		OnMultiple: hclPf.OnMultiple,
		Backup:     hclPf.Backup,
	}
	for _, r := range hclPf.Rules {
		pf.Rules = append(pf.Rules, RuleSpec{
			Name:    r.Name,
			Search:  r.Search,
			Replace: r.Replace,
		})
	}

	return pf, nil
}
