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
	"sync"
)

// 📊 Outcome is what a run did to one file
type Outcome int

const (
	OutcomeUnchanged Outcome = iota // No rule matched, file not written
	OutcomeFixed                    // Content changed and was written back
	OutcomeFailed                   // File skipped because of an error
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeFixed:
		return "fixed"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 🏷️ Kind classifies a per-file failure
type Kind int

const (
	KindIO     Kind = iota + 1 // read, write, rename or stat failed
	KindDecode                 // content is not valid in the declared encoding
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io failure"
	case KindDecode:
		return "decode failure"
	default:
		return "unknown failure"
	}
}

// ❌ FileError is a failure confined to a single file
type FileError struct {
	Path string
	Kind Kind
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// 📄 FileResult is the outcome for one file
type FileResult struct {
	Path         string
	Outcome      Outcome
	Replacements int
	Err          *FileError
}

// Failed builds a failed result for path
func Failed(path string, kind Kind, err error) FileResult {
	return FileResult{
		Path:    path,
		Outcome: OutcomeFailed,
		Err:     &FileError{Path: path, Kind: kind, Err: err},
	}
}

// 📈 Summary accumulates results for a run. It is safe for concurrent use.
type Summary struct {
	mu      sync.Mutex
	results []FileResult
	fixed   int
	errors  []FileResult
}

// NewSummary creates an empty summary
func NewSummary() *Summary {
	return &Summary{}
}

// Add records one file result
func (s *Summary) Add(r FileResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = append(s.results, r)
	switch r.Outcome {
	case OutcomeFixed:
		s.fixed++
	case OutcomeFailed:
		s.errors = append(s.errors, r)
	}
}

// Scanned returns how many files were examined
func (s *Summary) Scanned() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

// Fixed returns how many files were rewritten
func (s *Summary) Fixed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fixed
}

// Errors returns the failed results in the order they were added
func (s *Summary) Errors() []FileResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]FileResult(nil), s.errors...)
}

// Results returns every result in the order they were added
func (s *Summary) Results() []FileResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]FileResult(nil), s.results...)
}
