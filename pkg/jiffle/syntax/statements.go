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

package syntax

import "github.com/hashicorp/hcl/v2"

// BlockStmt is a braced statement list. It opens a new lexical scope.
type BlockStmt struct {
	SrcRange hcl.Range

	Stmts []Statement
}

func (s *BlockStmt) Range() hcl.Range { return s.SrcRange }
func (*BlockStmt) isNode()            {}
func (*BlockStmt) isStatement()       {}

// ExpressionStmt evaluates an expression for its effect.
type ExpressionStmt struct {
	SrcRange hcl.Range

	Expr Expression
}

func (s *ExpressionStmt) Range() hcl.Range { return s.SrcRange }
func (*ExpressionStmt) isNode()            {}
func (*ExpressionStmt) isStatement()       {}

// AssignStmt is `target op value` for one of the assignment operators.
type AssignStmt struct {
	SrcRange hcl.Range

	Target *Identifier
	Op     Operator
	Value  Expression
}

func (s *AssignStmt) Range() hcl.Range { return s.SrcRange }
func (*AssignStmt) isNode()            {}
func (*AssignStmt) isStatement()       {}

// AppendStmt is `target << value`.
type AppendStmt struct {
	SrcRange hcl.Range

	Target *Identifier
	Value  Expression
}

func (s *AppendStmt) Range() hcl.Range { return s.SrcRange }
func (*AppendStmt) isNode()            {}
func (*AppendStmt) isStatement()       {}

// IfStmt is a conditional. Else is nil when there is no else branch.
type IfStmt struct {
	SrcRange hcl.Range

	Cond Expression
	Then Statement
	Else Statement
}

func (s *IfStmt) Range() hcl.Range { return s.SrcRange }
func (*IfStmt) isNode()            {}
func (*IfStmt) isStatement()       {}

// WhileStmt repeats Body while Cond is true.
type WhileStmt struct {
	SrcRange hcl.Range

	Cond Expression
	Body Statement
}

func (s *WhileStmt) Range() hcl.Range { return s.SrcRange }
func (*WhileStmt) isNode()            {}
func (*WhileStmt) isStatement()       {}

// UntilStmt repeats Body until Cond becomes true.
type UntilStmt struct {
	SrcRange hcl.Range

	Cond Expression
	Body Statement
}

func (s *UntilStmt) Range() hcl.Range { return s.SrcRange }
func (*UntilStmt) isNode()            {}
func (*UntilStmt) isStatement()       {}

// ForeachStmt iterates Var over Source, which is a *ListLiteral, a *RangeExpr or an *Identifier naming a list.
type ForeachStmt struct {
	SrcRange hcl.Range

	Var    *Identifier
	Source Expression
	Body   Statement
}

func (s *ForeachStmt) Range() hcl.Range { return s.SrcRange }
func (*ForeachStmt) isNode()            {}
func (*ForeachStmt) isStatement()       {}

// BreakStmt leaves the innermost loop.
type BreakStmt struct {
	SrcRange hcl.Range
}

func (s *BreakStmt) Range() hcl.Range { return s.SrcRange }
func (*BreakStmt) isNode()            {}
func (*BreakStmt) isStatement()       {}

// BreakIfStmt leaves the innermost loop when Cond is true.
type BreakIfStmt struct {
	SrcRange hcl.Range

	Cond Expression
}

func (s *BreakIfStmt) Range() hcl.Range { return s.SrcRange }
func (*BreakIfStmt) isNode()            {}
func (*BreakIfStmt) isStatement()       {}
