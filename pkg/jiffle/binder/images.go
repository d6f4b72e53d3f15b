// Copyright 2016-2020, Pulumi Corporation.
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

package binder

import (
	"sort"

	"github.com/geosolutions/jiffle/pkg/jiffle/lookup"
	"github.com/geosolutions/jiffle/pkg/jiffle/syntax"
	"github.com/golang/glog"
	"github.com/hashicorp/hcl/v2"
)

// ImageRole says whether an image is read or written by a script.
type ImageRole int

const (
	SourceRole ImageRole = iota
	DestRole
)

func (r ImageRole) String() string {
	if r == DestRole {
		return "destination"
	}
	return "source"
}

// ImageRoles maps image variable names to their roles.
type ImageRoles map[string]ImageRole

// SourceNames returns the sorted names of the source images.
func (r ImageRoles) SourceNames() []string {
	return r.names(SourceRole)
}

// DestNames returns the sorted names of the destination images.
func (r ImageRoles) DestNames() []string {
	return r.names(DestRole)
}

func (r ImageRoles) names(role ImageRole) []string {
	var names []string
	for name, rr := range r {
		if rr == role {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

var roleKeywords = map[string]ImageRole{
	"read":  SourceRole,
	"write": DestRole,
}

// CollectImages reads the image roles declared by the script's images block. The result is nil when the script
// has no images block.
func CollectImages(script *syntax.Script, consts *lookup.ConstantTable) (ImageRoles, hcl.Diagnostics) {
	var roles ImageRoles
	var diagnostics hcl.Diagnostics

	for _, b := range script.Blocks {
		block, ok := b.(*syntax.ImagesBlock)
		if !ok {
			continue
		}
		if roles != nil {
			diagnostics = append(diagnostics, duplicateBlock("images", block.Range()))
			continue
		}

		roles = ImageRoles{}
		for _, decl := range block.Images {
			role, ok := roleKeywords[decl.Role]
			switch {
			case !ok:
				diagnostics = append(diagnostics, errorf(decl.RoleRange,
					"invalid role %q for image %s: expected read or write", decl.Role, decl.Name))
			case consts.IsDefined(decl.Name):
				diagnostics = append(diagnostics, errorf(decl.Range(), "image %s has the name of a constant", decl.Name))
			default:
				if _, exists := roles[decl.Name]; exists {
					diagnostics = append(diagnostics, alreadyDeclared(decl.Name, decl.Range()))
					continue
				}
				roles[decl.Name] = role
			}
		}
		glog.V(7).Infof("images block declares %d image(s)", len(roles))
	}

	return roles, diagnostics
}
