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

package status

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// 🎯 Reporter prints per-file progress lines and the final total
type Reporter struct {
	out    io.Writer
	dryRun bool
	mu     sync.Mutex
}

// 🏭 NewReporter creates a reporter writing to out. In dry-run mode fixed
// files are reported as files that would be fixed.
func NewReporter(out io.Writer, dryRun bool) *Reporter {
	return &Reporter{out: out, dryRun: dryRun}
}

// FormatResult returns the line for r, or "" for files that need no line
func (r *Reporter) FormatResult(res FileResult) string {
	switch res.Outcome {
	case OutcomeFixed:
		label := "Fixed:"
		if r.dryRun {
			label = "Would fix:"
		}
		return fmt.Sprintf("%s %s", color.GreenString(label), res.Path)
	case OutcomeFailed:
		reason := "unknown error"
		if res.Err != nil {
			reason = res.Err.Error()
		}
		return fmt.Sprintf("%s %s: %s", color.RedString("Error processing"), res.Path, reason)
	default:
		return ""
	}
}

// FormatTotal returns the closing line for a run
func (r *Reporter) FormatTotal(s *Summary) string {
	label := "Total files fixed:"
	if r.dryRun {
		label = "Total files that would be fixed:"
	}
	return fmt.Sprintf("%s %d", color.New(color.Bold).Sprint(label), s.Fixed())
}

// 📝 Report prints the line for one result
func (r *Reporter) Report(res FileResult) {
	line := r.FormatResult(res)
	if line == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, line)
}

// 📝 Finish prints the total after a blank line
func (r *Reporter) Finish(s *Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "\n%s\n", r.FormatTotal(s))
}
