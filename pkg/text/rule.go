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

package text

import (
	"fmt"
	"strings"
)

// 🔄 Rule is a literal substitution: every occurrence of Old becomes New.
type Rule struct {
	Old string // Exact text to find, never empty
	New string // Replacement text, may be empty
}

// String returns the rule in a form suitable for diagnostics
func (r Rule) String() string {
	return fmt.Sprintf("%q -> %q", r.Old, r.New)
}

// 📚 Rules is an ordered list of substitutions.
//
// Rules are applied in list order and each rule sees the output of the rules
// before it. Authors must place longer, more specific patterns first and must
// not let a replacement reintroduce a pattern of a later rule; neither is
// checked here beyond the warnings reported by Shadowed.
type Rules []Rule

// ⚠️ ConfigError reports a rule that can never be applied safely.
type ConfigError struct {
	Index  int
	Rule   Rule
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("rule %d (%s): %s", e.Index, e.Rule, e.Reason)
}

// 🔍 Validate returns a *ConfigError for the first invalid rule
func (rs Rules) Validate() error {
	for i, r := range rs {
		if r.Old == "" {
			return &ConfigError{Index: i, Rule: r, Reason: "pattern is empty"}
		}
	}
	return nil
}

// Shadow describes a later rule whose pattern contains (or equals) the
// pattern of an earlier rule, so the earlier rule consumes every match first.
type Shadow struct {
	Earlier int
	Later   int
}

// Shadowed lists every pair of rules where the later one can never match in full.
func (rs Rules) Shadowed() []Shadow {
	var out []Shadow
	for j := range rs {
		for i := 0; i < j; i++ {
			if rs[i].Old == "" {
				continue
			}
			if strings.Contains(rs[j].Old, rs[i].Old) {
				out = append(out, Shadow{Earlier: i, Later: j})
			}
		}
	}
	return out
}
