package lead

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeWebsite(t *testing.T) {
	t.Parallel()

	key, ok := NormalizeWebsite("HTTPS://Example.com/")
	require.True(t, ok)
	require.Equal(t, "https://example.com", key)

	key, ok = NormalizeWebsite("https://example.com///")
	require.True(t, ok)
	require.Equal(t, "https://example.com", key)

	_, ok = NormalizeWebsite("")
	require.False(t, ok)
	_, ok = NormalizeWebsite("N/A")
	require.False(t, ok)
}

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	key, ok := NormalizePhone("(020) 7946-0958")
	require.True(t, ok)
	require.Equal(t, "02079460958", key)

	_, ok = NormalizePhone("N/A")
	require.False(t, ok)
}

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	key, ok := NormalizeName("Smith & Partners LLP")
	require.True(t, ok)
	require.Equal(t, "smith & partners llp", key)

	_, ok = NormalizeName("")
	require.False(t, ok)
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"HTTPS://Example.com/", "(020) 7946-0958", "Smith & Partners LLP"}
	fns := []func(string) (string, bool){NormalizeWebsite, NormalizePhone, NormalizeName}
	for i, fn := range fns {
		once, ok := fn(inputs[i])
		require.True(t, ok)
		twice, ok := fn(once)
		require.True(t, ok)
		require.Equal(t, once, twice)
	}
}
