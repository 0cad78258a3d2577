// Package images canonicalizes listing image references. Old records store
// bare URL strings, newer ones store {url, public_id} documents; everything
// is normalized to the structured form before it reaches storage.
package images

import (
	"net/url"
	"path"
	"strings"

	"soko/models"
)

const uploadFolder = "uploads"

// Normalize converts an image reference to its canonical structured form.
// References that already carry both url and public_id pass through
// unchanged. Bare URLs get their public_id derived from the URL path; when
// no identifier can be derived the second return is false and the image is
// unrecoverable for deletion purposes (but still displayable).
func Normalize(ref models.ImageRef) (models.ImageRef, bool) {
	if ref.URL != "" && ref.PublicID != "" {
		return ref, true
	}
	if ref.URL == "" {
		return models.ImageRef{}, false
	}
	pid := extractPublicID(ref.URL)
	if pid == "" {
		return models.ImageRef{}, false
	}
	return models.ImageRef{URL: ref.URL, PublicID: pid}, true
}

// NormalizeAll maps Normalize over refs, dropping entries that fail.
func NormalizeAll(refs []models.ImageRef) []models.ImageRef {
	out := make([]models.ImageRef, 0, len(refs))
	for _, ref := range refs {
		if n, ok := Normalize(ref); ok {
			out = append(out, n)
		}
	}
	return out
}

// PublicID returns the stable storage identifier for an image reference,
// or "" when none can be derived.
func PublicID(ref models.ImageRef) string {
	if ref.PublicID != "" {
		return ref.PublicID
	}
	return extractPublicID(ref.URL)
}

// DeletionCandidates returns the ordered list of storage identifiers to try
// when deleting an image. Identifiers that already carry a folder are used
// as-is; folderless ones are tried with the uploads/ prefix first (newer
// uploads) and bare second (older ones). Empty when the reference is
// unparseable.
func DeletionCandidates(ref models.ImageRef) []string {
	pid := PublicID(ref)
	if pid == "" {
		return nil
	}
	if strings.Contains(pid, "/") {
		return []string{pid}
	}
	return []string{uploadFolder + "/" + pid, pid}
}

// IsURLShaped reports whether s looks like an http(s) URL. Listing
// validation accepts an image when it is URL-shaped or already carries an
// identifier.
func IsURLShaped(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// extractPublicID parses a Cloudinary-style delivery URL:
//
//	https://res.cloudinary.com/{cloud}/image/upload/v{ts}/{folder}/{name}.{ext}
//
// The identifier is the final segment minus its extension, prefixed with the
// preceding folder segment when that segment is not a version marker and
// differs from the base name.
func extractPublicID(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parts := strings.Split(rawURL, "/")
	uploadIdx := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx == -1 {
		return ""
	}

	idx := uploadIdx + 1
	if idx < len(parts) && isVersionSegment(parts[idx]) {
		idx++
	}

	filename := parts[len(parts)-1]
	if filename == "" {
		return ""
	}
	base := strings.TrimSuffix(filename, path.Ext(filename))
	if base == "" {
		return ""
	}

	if idx < len(parts)-1 {
		folder := parts[len(parts)-2]
		if folder != "" && !isVersionSegment(folder) && folder != base {
			return folder + "/" + base
		}
	}
	return base
}

// isVersionSegment matches Cloudinary version markers: "v" followed by digits.
func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
