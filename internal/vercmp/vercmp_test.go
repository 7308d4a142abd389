package vercmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"12.9", "12.9", 0},
		{"13.0", "12.9", 1},
		{"12.8", "12.9", -1},
		{"12.10", "12.9", 1}, // lexicographic comparison would say -1
		{"12.9", "12.9.0", -1},
		{"2.10.0", "2.9.1", 1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			got, err := Compare(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompare_NumericNotLexicographic(t *testing.T) {
	gt, err := Greater("12.10", "12.9")
	require.NoError(t, err)
	assert.True(t, gt)
	assert.True(t, "12.10" < "12.9", "string comparison orders these the other way")
}

func TestParse_Invalid(t *testing.T) {
	for _, v := range []string{"", "12.x", "12..1", "-1.0", "3.0.0b1"} {
		_, err := Parse(v)
		assert.Error(t, err, v)
	}
}

func TestMajorMinor(t *testing.T) {
	assert.Equal(t, "2.8", MajorMinor("2.8.0"))
	assert.Equal(t, "2.10", MajorMinor(" 2.10.1 "))
	assert.Equal(t, "12", MajorMinor("12"))
}

func TestTupleString(t *testing.T) {
	assert.Equal(t, "12.4.1", MustParse("12.4.1").String())
}
