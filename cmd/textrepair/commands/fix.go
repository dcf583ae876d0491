package commands

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/textrepair/cmd/textrepair/opts"
	"github.com/walteh/textrepair/pkg/config"
	"github.com/walteh/textrepair/pkg/repair"
	"github.com/walteh/textrepair/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ErrFilesFailed is returned when a run completed but some files could not be repaired
var ErrFilesFailed = errors.Base("some files could not be repaired")

// replaceSeparator splits OLD from NEW in a --replace value
const replaceSeparator = "=>"

type fixFlags struct {
	root     string
	include  []string
	exclude  []string
	presets  []string
	replace  []string
	encoding string
	dryRun   bool
	jobs     int
}

// NewFixCmd creates a new fix command
func NewFixCmd(rootOpts *opts.RootOpts) *cobra.Command {
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Repair every selected file under a directory",
		Long: `Fix walks the root directory and for every selected file:
1. Decodes it with the declared encoding
2. Applies the rules in order (presets first, then literal rules)
3. Rewrites it atomically if the content changed

Files that fail to read, decode or write are reported and skipped.`,
		Example: `  textrepair fix --root ./site --preset css
  textrepair fix --root ./site --preset mojibake --dry-run
  textrepair fix --root ./site --include '*.htm' --replace 'color:}=>}'
  textrepair fix --config repair.yaml --jobs 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := resolveConfig(cmd, rootOpts, flags)
			if err != nil {
				return err
			}

			rules, err := cfg.RuleSet()
			if err != nil {
				return errors.Errorf("resolving rules: %w", err)
			}
			c, err := cfg.Codec()
			if err != nil {
				return errors.Errorf("resolving encoding: %w", err)
			}

			engine, err := repair.New(repair.Options{
				Root:     cfg.Root,
				Include:  cfg.Include,
				Exclude:  cfg.Exclude,
				Rules:    rules,
				Codec:    c,
				Reporter: status.NewReporter(cmd.OutOrStdout(), flags.dryRun),
				DryRun:   flags.dryRun,
				Jobs:     flags.jobs,
			})
			if err != nil {
				return errors.Errorf("creating engine: %w", err)
			}

			summary, err := engine.Run(ctx)
			if err != nil {
				return errors.Errorf("running repair: %w", err)
			}

			if failed := len(summary.Errors()); failed > 0 {
				return errors.Errorf("%w: %d of %d", ErrFilesFailed, failed, summary.Scanned())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.root, "root", "r", "", "directory to scan (required unless set in the config file)")
	cmd.Flags().StringArrayVarP(&flags.include, "include", "i", nil, "glob selecting files, repeatable (default \"**/*.html\")")
	cmd.Flags().StringArrayVarP(&flags.exclude, "exclude", "x", nil, "glob rejecting selected files, repeatable")
	cmd.Flags().StringArrayVarP(&flags.presets, "preset", "p", nil, "built-in rule list to apply, repeatable (see 'textrepair rules')")
	cmd.Flags().StringArrayVar(&flags.replace, "replace", nil, "literal rule OLD=>NEW, repeatable, applied after presets")
	cmd.Flags().StringVarP(&flags.encoding, "encoding", "e", "", "declared file encoding (default \"utf-8\")")
	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "report files that would change without writing them")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 1, "files to process at once")

	return cmd
}

// resolveConfig layers command line values over the optional config file
func resolveConfig(cmd *cobra.Command, rootOpts *opts.RootOpts, flags *fixFlags) (*config.Config, error) {
	ctx := cmd.Context()

	base := &config.Config{}
	if rootOpts.ConfigFile != "" {
		loaded, err := config.Load(ctx, rootOpts.ConfigFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		base = loaded
	}

	override := &config.Config{
		Root:     flags.root,
		Include:  flags.include,
		Exclude:  flags.exclude,
		Encoding: flags.encoding,
		Presets:  flags.presets,
	}
	for _, raw := range flags.replace {
		r, err := parseReplace(raw)
		if err != nil {
			return nil, err
		}
		override.Rules = append(override.Rules, r)
	}

	cfg := base.Merge(override)
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("invalid configuration: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("config", cfg.Location()).
		Str("root", cfg.Root).
		Strs("presets", cfg.Presets).
		Int("rules", len(cfg.Rules)).
		Msg("configuration resolved")

	return cfg, nil
}

// parseReplace splits OLD=>NEW at the first separator
func parseReplace(raw string) (config.Replacement, error) {
	old, replacement, ok := strings.Cut(raw, replaceSeparator)
	if !ok {
		return config.Replacement{}, errors.Errorf("invalid --replace %q: expected OLD%sNEW", raw, replaceSeparator)
	}
	return config.Replacement{Old: old, New: replacement}, nil
}
