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

import "strings"

// 📝 Result describes the outcome of applying Rules to one piece of text
type Result struct {
	// Content is the text after every rule was applied
	Content string

	// Replacements counts the occurrences replaced across all rules
	Replacements int

	// Modified is true when Content differs from the input
	Modified bool
}

// Replace applies every rule in order using exact substring replacement.
// Rules with an empty pattern are skipped; Validate rejects them up front.
func (rs Rules) Replace(content string) Result {
	current := content
	count := 0

	for _, r := range rs {
		if r.Old == "" {
			continue
		}

		n := strings.Count(current, r.Old)
		if n == 0 {
			continue
		}

		count += n
		current = strings.ReplaceAll(current, r.Old, r.New)
	}

	return Result{
		Content:      current,
		Replacements: count,
		Modified:     current != content,
	}
}
