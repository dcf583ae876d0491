package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules_Replace(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		rules        Rules
		want         string
		wantCount    int
		wantModified bool
	}{
		{
			name:         "css_empty_background",
			content:      "<style>.a{background:;color:red}</style>",
			rules:        Rules{{Old: "background:;", New: ""}},
			want:         "<style>.a{color:red}</style>",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:         "css_empty_color_at_block_end",
			content:      "div{color:}",
			rules:        Rules{{Old: "color:}", New: "}"}},
			want:         "div{}",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "longer_pattern_first",
			content: "Ã‚Â© 2024",
			rules: Rules{
				{Old: "Ã‚Â©", New: "©"},
				{Old: "Â©", New: "©"},
			},
			want:         "© 2024",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "shorter_pattern_first_leaves_residue",
			content: "Ã‚Â© 2024",
			rules: Rules{
				{Old: "Â©", New: "©"},
				{Old: "Ã‚Â©", New: "©"},
			},
			want:         "Ã‚© 2024",
			wantCount:    1,
			wantModified: true,
		},
		{
			name:    "later_rule_sees_earlier_output",
			content: "aaa",
			rules: Rules{
				{Old: "a", New: "b"},
				{Old: "bb", New: "c"},
			},
			want:         "cb",
			wantCount:    4,
			wantModified: true,
		},
		{
			name:         "multiple_occurrences",
			content:      "x{color:} y{color:}",
			rules:        Rules{{Old: "color:}", New: "}"}},
			want:         "x{} y{}",
			wantCount:    2,
			wantModified: true,
		},
		{
			name:         "no_match",
			content:      "<p>hello</p>",
			rules:        Rules{{Old: "background:;", New: ""}},
			want:         "<p>hello</p>",
			wantCount:    0,
			wantModified: false,
		},
		{
			name:         "identity_rule_is_not_a_modification",
			content:      "same",
			rules:        Rules{{Old: "same", New: "same"}},
			want:         "same",
			wantCount:    1,
			wantModified: false,
		},
		{
			name:         "empty_content",
			content:      "",
			rules:        Rules{{Old: "x", New: "y"}},
			want:         "",
			wantModified: false,
		},
		{
			name:         "empty_pattern_skipped",
			content:      "abc",
			rules:        Rules{{Old: "", New: "z"}},
			want:         "abc",
			wantModified: false,
		},
		{
			name:         "no_rules",
			content:      "abc",
			want:         "abc",
			wantModified: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rules.Replace(tt.content)
			assert.Equal(t, tt.want, got.Content)
			assert.Equal(t, tt.wantCount, got.Replacements)
			assert.Equal(t, tt.wantModified, got.Modified)
		})
	}
}

func TestRules_Validate(t *testing.T) {
	tests := []struct {
		name      string
		rules     Rules
		wantIndex int
		wantError string
	}{
		{
			name:  "valid_rules",
			rules: Rules{{Old: "foo", New: "bar"}, {Old: "baz", New: ""}},
		},
		{
			name:  "no_rules",
			rules: Rules{},
		},
		{
			name:      "empty_pattern",
			rules:     Rules{{Old: "foo", New: "bar"}, {Old: "", New: "x"}},
			wantIndex: 1,
			wantError: `rule 1 ("" -> "x"): pattern is empty`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rules.Validate()
			if tt.wantError == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantIndex, cfgErr.Index)
			assert.Equal(t, tt.wantError, err.Error())
		})
	}
}

func TestRules_Shadowed(t *testing.T) {
	rules := Rules{
		{Old: "Â©", New: "©"},
		{Old: "Ã‚Â©", New: "©"},
		{Old: "x", New: "y"},
		{Old: "x", New: "z"},
	}

	got := rules.Shadowed()
	assert.Equal(t, []Shadow{{Earlier: 0, Later: 1}, {Earlier: 2, Later: 3}}, got)
}
