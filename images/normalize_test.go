package images

import (
	"testing"

	"soko/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBareURLWithFolder(t *testing.T) {
	ref := models.ImageRef{URL: "https://res.cloudinary.com/demo/image/upload/v1700000000/uploads/abc123.jpg"}

	got, ok := Normalize(ref)
	require.True(t, ok)
	assert.Equal(t, "uploads/abc123", got.PublicID)
	assert.Equal(t, ref.URL, got.URL)
}

func TestNormalizeBareURLWithoutFolder(t *testing.T) {
	ref := models.ImageRef{URL: "https://res.cloudinary.com/debpabo0a/image/upload/v1765569870/oi1d5qbopcgob0mpvtex.jpg"}

	got, ok := Normalize(ref)
	require.True(t, ok)
	assert.Equal(t, "oi1d5qbopcgob0mpvtex", got.PublicID)
}

func TestNormalizeStructuredPassThrough(t *testing.T) {
	ref := models.ImageRef{URL: "https://example.com/x.jpg", PublicID: "custom/id"}

	got, ok := Normalize(ref)
	require.True(t, ok)
	assert.Equal(t, ref, got)
}

func TestNormalizeIdempotent(t *testing.T) {
	refs := []models.ImageRef{
		{URL: "https://res.cloudinary.com/demo/image/upload/v1700000000/uploads/abc123.jpg"},
		{URL: "https://res.cloudinary.com/demo/image/upload/v17/pic.png"},
		{URL: "https://example.com/x.jpg", PublicID: "folder/pic"},
	}
	for _, ref := range refs {
		once, ok := Normalize(ref)
		require.True(t, ok)
		twice, ok := Normalize(once)
		require.True(t, ok)
		assert.Equal(t, once, twice)
	}
}

func TestNormalizeUnrecognizableURL(t *testing.T) {
	ref := models.ImageRef{URL: "https://example.com/images/pic.jpg"}

	_, ok := Normalize(ref)
	assert.False(t, ok)
	assert.Empty(t, DeletionCandidates(ref))
}

func TestNormalizeAllDropsFailures(t *testing.T) {
	refs := []models.ImageRef{
		{URL: "https://res.cloudinary.com/demo/image/upload/v1/uploads/a.jpg"},
		{URL: "https://example.com/no-upload-marker.jpg"},
		{URL: "https://res.cloudinary.com/demo/image/upload/v1/b.png"},
	}

	out := NormalizeAll(refs)
	require.Len(t, out, 2)
	assert.Equal(t, "uploads/a", out[0].PublicID)
	assert.Equal(t, "b", out[1].PublicID)
}

func TestDeletionCandidates(t *testing.T) {
	tests := []struct {
		name string
		ref  models.ImageRef
		want []string
	}{
		{
			name: "identifier with folder used as-is",
			ref:  models.ImageRef{URL: "https://x", PublicID: "uploads/abc"},
			want: []string{"uploads/abc"},
		},
		{
			name: "folderless identifier tries uploads prefix first",
			ref:  models.ImageRef{URL: "https://x", PublicID: "abc"},
			want: []string{"uploads/abc", "abc"},
		},
		{
			name: "bare url derives then prefixes",
			ref:  models.ImageRef{URL: "https://res.cloudinary.com/demo/image/upload/v1/xyz.jpg"},
			want: []string{"uploads/xyz", "xyz"},
		},
		{
			name: "unparseable url yields nothing",
			ref:  models.ImageRef{URL: "https://example.com/a.jpg"},
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeletionCandidates(tt.ref))
		})
	}
}

func TestExtractPublicIDSkipsVersionOnly(t *testing.T) {
	// "video" is not a version marker even though it starts with v.
	got := extractPublicID("https://res.cloudinary.com/demo/image/upload/video/clip.mp4")
	assert.Equal(t, "video/clip", got)
}

func TestIsURLShaped(t *testing.T) {
	assert.True(t, IsURLShaped("https://example.com/a.jpg"))
	assert.True(t, IsURLShaped("http://example.com"))
	assert.False(t, IsURLShaped("notaurl"))
	assert.False(t, IsURLShaped("ftp://example.com/a"))
	assert.False(t, IsURLShaped(""))
}
