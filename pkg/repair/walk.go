package repair

import (
	"context"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// target is one selected file, or a walk error in its place
type target struct {
	path    string // path used for I/O
	display string // path shown to users, under the root as given
	err     error
}

// collect walks root in lexical order without following symlinks
func (e *Engine) collect(ctx context.Context, root string) ([]target, error) {
	logger := zerolog.Ctx(ctx)
	var targets []target

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return errors.Errorf("relative path for %s: %w", p, relErr)
		}
		display := filepath.Join(e.opts.Root, rel)
		slashRel := filepath.ToSlash(rel)

		if walkErr != nil {
			if p == root {
				return walkErr
			}
			// an excluded path is never reported, readable or not
			if matchAny(ctx, e.opts.Exclude, slashRel) {
				return skipEntry(d)
			}
			targets = append(targets, target{path: p, display: display, err: errors.Errorf("walking: %w", walkErr)})
			return nil
		}

		if d.IsDir() {
			if p != root && matchAny(ctx, e.opts.Exclude, slashRel) {
				logger.Debug().Str("dir", display).Msg("skipping excluded directory")
				return fs.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			logger.Debug().Str("file", display).Msg("skipping symlink")
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if !e.selected(ctx, slashRel) {
			return nil
		}

		targets = append(targets, target{path: p, display: display})
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", e.opts.Root, err)
	}

	return targets, nil
}

func skipEntry(d fs.DirEntry) error {
	if d != nil && d.IsDir() {
		return fs.SkipDir
	}
	return nil
}

// selected reports whether rel (slash separated) matches an include glob and
// no exclude glob
func (e *Engine) selected(ctx context.Context, rel string) bool {
	if !matchAny(ctx, e.opts.Include, rel) {
		return false
	}
	return !matchAny(ctx, e.opts.Exclude, rel)
}

func matchAny(ctx context.Context, patterns []string, rel string) bool {
	for _, pattern := range patterns {
		subject := rel
		if !strings.Contains(pattern, "/") {
			subject = path.Base(rel)
		}

		matched, err := doublestar.Match(pattern, subject)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Str("pattern", pattern).Str("path", rel).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
