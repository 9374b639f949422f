package csrf

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken()
	require.NoError(t, err)
	b, err := GenerateToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	raw, err := base64.URLEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, TokenLength)
}

func TestValidateToken(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		form   string
		want   bool
	}{
		{name: "match", cookie: "abc", form: "abc", want: true},
		{name: "mismatch", cookie: "abc", form: "abd"},
		{name: "empty cookie", form: "abc"},
		{name: "empty form", cookie: "abc"},
		{name: "both empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateToken(tt.cookie, tt.form))
		})
	}
}
