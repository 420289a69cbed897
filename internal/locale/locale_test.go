package locale

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", "en"},
		{"C", "en"},
		{"POSIX", "en"},
		{"en_US.UTF-8", "en-US"},
		{"en-GB", "en-GB"},
		{"de_DE@euro", "de-DE"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw).String())
		})
	}
}

func TestLookup(t *testing.T) {
	for _, raw := range []string{"", "en", "en_US.UTF-8", "en-AU"} {
		cfg, tag, err := Lookup(raw)
		require.NoError(t, err, raw)
		assert.NotNil(t, cfg, raw)
		assert.Equal(t, "en", tag.String(), raw)
	}
}

func TestLookupSharesConfiguration(t *testing.T) {
	a, _, err := Lookup("en-US")
	require.NoError(t, err)
	b, _, err := Lookup("en-GB")
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestLookupUnsupported(t *testing.T) {
	_, _, err := Lookup("ja_JP")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestDetect(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_TIME", "en_GB.UTF-8")
	t.Setenv("LANG", "fr_FR.UTF-8")
	assert.Equal(t, "en-GB", Detect().String())
}

func TestSupported(t *testing.T) {
	got := Supported()
	require.Len(t, got, 1)
	assert.Equal(t, "en", got[0].Tag)
	assert.Equal(t, "English", got[0].Name)
}
