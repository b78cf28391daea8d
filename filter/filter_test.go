package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantErr    bool
	}{
		{name: "simple comparison", expression: `country == "BE"`, wantErr: false},
		{name: "helper call", expression: `icontains(email, "@acme")`, wantErr: false},
		{name: "native operator", expression: `email contains "@acme"`, wantErr: false},
		{name: "boolean combination", expression: `country == "BE" and hasTag("vip")`, wantErr: false},
		{name: "empty expression", expression: "", wantErr: true},
		{name: "whitespace only", expression: "   ", wantErr: true},
		{name: "syntax error", expression: `country ==`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.ErrorAs(t, err, &compErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expression, f.Expression())
		})
	}
}

func TestMatch(t *testing.T) {
	record := map[string]any{
		"email":   "jane@Acme.be",
		"country": "BE",
		"tags":    []string{"VIP", "press"},
	}

	tests := []struct {
		name       string
		expression string
		want       bool
	}{
		{name: "field equality", expression: `country == "BE"`, want: true},
		{name: "field mismatch", expression: `country == "NL"`, want: false},
		{name: "native contains is case-sensitive", expression: `email contains "@acme"`, want: false},
		{name: "native contains exact case", expression: `email contains "@Acme"`, want: true},
		{name: "icontains folds case", expression: `icontains(email, "@acme")`, want: true},
		{name: "istartsWith folds case", expression: `istartsWith(email, "JANE@")`, want: true},
		{name: "iendsWith folds case", expression: `iendsWith(email, ".BE")`, want: true},
		{name: "hasTag is case-insensitive", expression: `hasTag("vip")`, want: true},
		{name: "hasTag miss", expression: `hasTag("customer")`, want: false},
		{name: "undefined variable is nil", expression: `website == nil`, want: true},
		{name: "combination", expression: `country == "BE" and hasTag("press")`, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			require.NoError(t, err)

			got, err := f.Match(record)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchWithoutTags(t *testing.T) {
	f, err := Compile(`hasTag("vip")`)
	require.NoError(t, err)

	got, err := f.Match(map[string]any{"email": "x@y.be"})
	require.NoError(t, err)
	assert.False(t, got)
}
