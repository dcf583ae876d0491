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

package repair

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/textrepair/pkg/codec"
	"github.com/walteh/textrepair/pkg/status"
	"github.com/walteh/textrepair/pkg/text"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// DefaultInclude selects HTML files at any depth
const DefaultInclude = "**/*.html"

// 📣 Reporter receives results in traversal order
type Reporter interface {
	Report(res status.FileResult)
	Finish(s *status.Summary)
}

// 🔧 Options configures an Engine
type Options struct {
	// Root is the directory to scan
	Root string
	// Include globs select files; a pattern without a slash matches the base name
	Include []string
	// Exclude globs reject files that Include selected
	Exclude []string
	// Rules are applied in order to every selected file
	Rules text.Rules
	// Codec is the declared encoding, UTF-8 when nil
	Codec *codec.Codec
	// Files reads and replaces files, the local disk when nil
	Files status.FileManager
	// Reporter prints results, nothing is printed when nil
	Reporter Reporter
	// DryRun counts files that would change without writing them
	DryRun bool
	// Jobs is the number of files processed at once, 1 when zero
	Jobs int
}

// 🎮 Engine runs a repair over one tree
type Engine struct {
	opts Options
}

// 🏭 New validates opts and creates an engine. An invalid rule is reported as
// a *text.ConfigError before any file is touched.
func New(opts Options) (*Engine, error) {
	if opts.Root == "" {
		return nil, errors.Errorf("root is required")
	}
	if len(opts.Rules) == 0 {
		return nil, errors.Errorf("at least one rule is required")
	}
	if err := opts.Rules.Validate(); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}

	if len(opts.Include) == 0 {
		opts.Include = []string{DefaultInclude}
	}
	for _, pattern := range append(append([]string{}, opts.Include...), opts.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid glob pattern %q", pattern)
		}
	}

	if opts.Codec == nil {
		opts.Codec = codec.UTF8()
	}
	if opts.Files == nil {
		opts.Files = status.NewFileManager()
	}
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}

	return &Engine{opts: opts}, nil
}

// 🏃 Run scans the tree and repairs every selected file. Per-file failures are
// collected in the summary. The returned error is only set when the root is
// missing or not a directory (nil summary), or when the walk fails or is
// cancelled (the partial summary, possibly empty, is still returned).
func (e *Engine) Run(ctx context.Context) (*status.Summary, error) {
	logger := zerolog.Ctx(ctx)

	for _, s := range e.opts.Rules.Shadowed() {
		logger.Warn().
			Int("earlier", s.Earlier).
			Int("later", s.Later).
			Str("earlier_rule", e.opts.Rules[s.Earlier].String()).
			Str("later_rule", e.opts.Rules[s.Later].String()).
			Msg("rule pattern contains an earlier pattern and will never match in full")
	}

	walkRoot, err := e.resolveRoot()
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("root", e.opts.Root).
		Strs("include", e.opts.Include).
		Strs("exclude", e.opts.Exclude).
		Int("rules", len(e.opts.Rules)).
		Str("encoding", e.opts.Codec.Name()).
		Bool("dry_run", e.opts.DryRun).
		Int("jobs", e.opts.Jobs).
		Msg("starting repair")

	summary := status.NewSummary()

	targets, err := e.collect(ctx, walkRoot)
	if err != nil {
		return summary, err
	}

	if e.opts.Jobs == 1 {
		err = e.runSequential(ctx, targets, summary)
	} else {
		err = e.runParallel(ctx, targets, summary)
	}
	if err != nil {
		return summary, err
	}

	if e.opts.Reporter != nil {
		e.opts.Reporter.Finish(summary)
	}

	logger.Debug().
		Int("scanned", summary.Scanned()).
		Int("fixed", summary.Fixed()).
		Int("errors", len(summary.Errors())).
		Msg("repair complete")

	return summary, nil
}

func (e *Engine) resolveRoot() (string, error) {
	info, err := os.Stat(e.opts.Root)
	if err != nil {
		return "", errors.Errorf("checking root: %w", err)
	}
	if !info.IsDir() {
		return "", errors.Errorf("root %s is not a directory", e.opts.Root)
	}

	// an explicit root may itself be a link; nothing below it is followed
	resolved, err := filepath.EvalSymlinks(e.opts.Root)
	if err != nil {
		return "", errors.Errorf("resolving root: %w", err)
	}
	return resolved, nil
}

func (e *Engine) runSequential(ctx context.Context, targets []target, summary *status.Summary) error {
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("repair cancelled: %w", err)
		}
		e.record(ctx, summary, e.repairFile(ctx, t))
	}
	return nil
}

// runParallel gives each path to exactly one worker and records results in
// traversal order once all workers are done.
func (e *Engine) runParallel(ctx context.Context, targets []target, summary *status.Summary) error {
	results := make([]status.FileResult, len(targets))
	done := make([]bool, len(targets))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(e.opts.Jobs)

	for i, t := range targets {
		i, t := i, t
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			results[i] = e.repairFile(egctx, t)
			done[i] = true
			return nil
		})
	}

	waitErr := eg.Wait()

	for i := range results {
		if done[i] {
			e.record(ctx, summary, results[i])
		}
	}

	if waitErr != nil {
		return errors.Errorf("repair cancelled: %w", waitErr)
	}
	return nil
}

func (e *Engine) record(ctx context.Context, summary *status.Summary, res status.FileResult) {
	summary.Add(res)

	// failures reach the user through the reporter; the log keeps the detail
	ev := zerolog.Ctx(ctx).Debug()
	if res.Err != nil {
		ev = ev.Err(res.Err)
	}
	ev.Str("file", res.Path).
		Str("outcome", res.Outcome.String()).
		Int("replacements", res.Replacements).
		Msg("file processed")

	if e.opts.Reporter != nil {
		e.opts.Reporter.Report(res)
	}
}

// 📄 repairFile never returns an error; every failure becomes a result
func (e *Engine) repairFile(ctx context.Context, t target) status.FileResult {
	if t.err != nil {
		return status.Failed(t.display, status.KindIO, t.err)
	}

	raw, err := e.opts.Files.ReadFile(ctx, t.path)
	if err != nil {
		return status.Failed(t.display, status.KindIO, err)
	}

	content, err := e.opts.Codec.Decode(raw)
	if err != nil {
		return status.Failed(t.display, status.KindDecode, err)
	}

	out := e.opts.Rules.Replace(content)
	if !out.Modified {
		return status.FileResult{Path: t.display, Outcome: status.OutcomeUnchanged, Replacements: out.Replacements}
	}

	encoded, err := e.opts.Codec.Encode(out.Content)
	if err != nil {
		return status.Failed(t.display, status.KindDecode, err)
	}

	if !e.opts.DryRun {
		if err := e.opts.Files.WriteFileAtomic(ctx, t.path, encoded); err != nil {
			return status.Failed(t.display, status.KindIO, err)
		}
	}

	return status.FileResult{Path: t.display, Outcome: status.OutcomeFixed, Replacements: out.Replacements}
}
