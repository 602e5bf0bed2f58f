package wardrobe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"lowercases and trims", []string{" Casual ", "FORMAL"}, []string{"casual", "formal"}},
		{"dedupes", []string{"casual", "Casual", "casual "}, []string{"casual"}},
		{"drops empty", []string{"", "  ", "work"}, []string{"work"}},
		{"nil in empty out", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeTags(tt.in))
		})
	}
}

func TestNormalizeTagsCapsLength(t *testing.T) {
	in := make([]string, 0, maxTagsPerField+10)
	for i := 0; i < maxTagsPerField+10; i++ {
		in = append(in, string(rune('a'+i)))
	}
	assert.Len(t, normalizeTags(in), maxTagsPerField)
}

func TestValidCategory(t *testing.T) {
	for _, c := range []Category{
		CategoryTop, CategoryBottom, CategoryOnepiece, CategoryOuterwear,
		CategoryFootwear, CategoryAccessory, CategoryUnderlayer,
	} {
		assert.True(t, ValidCategory(c), string(c))
	}
	assert.False(t, ValidCategory("hat"))
	assert.False(t, ValidCategory(""))
}
