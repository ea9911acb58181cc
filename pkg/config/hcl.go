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

type hclPatch struct {
	File   string `hcl:"file"`
	Search string `hcl:"search,optional"`
	Insert string `hcl:"insert,optional"`
}

type hclConfig struct {
	Patches []hclPatch `hcl:"patch,block"`
	Backup  bool       `hcl:"backup,optional"`
	DryRun  bool       `hcl:"dry_run,optional"`
	Async   bool       `hcl:"async,optional"`
}

func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "config.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"default_file":   cty.StringVal(DefaultFile),
			"default_search": cty.StringVal(DefaultSearch),
			"default_insert": cty.StringVal(DefaultInsert),
		},
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		Backup: hclCfg.Backup,
		DryRun: hclCfg.DryRun,
		Async:  hclCfg.Async,
	}
	for _, hp := range hclCfg.Patches {
		cfg.Patches = append(cfg.Patches, Patch{
			File:   hp.File,
			Search: hp.Search,
			Insert: hp.Insert,
		})
	}

	return cfg, nil
}
