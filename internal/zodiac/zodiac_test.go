package zodiac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Sign
		wantErr bool
	}{
		{name: "exact", input: "Leo", want: Leo},
		{name: "lowercase", input: "sagittarius", want: Sagittarius},
		{name: "padded", input: "  PISCES ", want: Pisces},
		{name: "unknown", input: "Ophiuchus", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAll(t *testing.T) {
	t.Parallel()

	signs := All()
	require.Len(t, signs, 12)
	assert.Equal(t, Aries, signs[0])
	assert.Equal(t, Pisces, signs[11])

	for _, s := range signs {
		assert.True(t, s.Valid(), s)
		assert.NotEmpty(t, s.Emoji(), s)
	}

	signs[0] = "mutated"
	assert.Equal(t, Aries, All()[0], "All must return a copy")
	assert.False(t, Sign("mutated").Valid())
}
