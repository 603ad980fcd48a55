// Package pathscheme maps image ids to their sharded locations on disk.
//
// An id has the shape "uid.ext". The original lives at root/d1/d2/uid.ext, a
// thumbnail at root/d1/d2/uid.name.ext and the metadata sidecar at
// root/d1/d2/uid.ext.json, where d1 is the third-from-last character of uid and
// d2 its last two characters.
package pathscheme

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/marcos-nsantos/imgstore/internal/domain"
)

const (
	MetadataSuffix = ".json"
	minUIDLength   = 3
)

var canonicalName = regexp.MustCompile(`^\w{8}-\w{4}-\w{4}-\w{4}-\w{12}\.\w+$`)

// ValidateUID checks that uid can be used as a stem and shard source.
func ValidateUID(uid string) error {
	if len([]rune(uid)) < minUIDLength {
		return fmt.Errorf("%w: uid %q is shorter than %d characters", domain.ErrInvalidImageID, uid, minUIDLength)
	}
	if strings.ContainsAny(uid, "./\\") || strings.ContainsRune(uid, os.PathSeparator) {
		return fmt.Errorf("%w: uid %q contains a separator", domain.ErrInvalidImageID, uid)
	}
	return nil
}

// ValidateThumbnailName checks that name can sit between the uid and the
// extension of a file name without leaving the shard directory.
func ValidateThumbnailName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty thumbnail name", domain.ErrInvalidImageID)
	}
	if strings.ContainsAny(name, "./\\") || strings.ContainsRune(name, os.PathSeparator) {
		return fmt.Errorf("%w: thumbnail name %q contains a separator", domain.ErrInvalidImageID, name)
	}
	return nil
}

// ParseID splits id on its first dot. Thumbnail-qualified names are rejected.
func ParseID(id string) (uid, ext string, err error) {
	uid, ext, found := strings.Cut(id, ".")
	if !found || ext == "" || strings.Contains(ext, ".") {
		return "", "", fmt.Errorf("%w: %q", domain.ErrInvalidImageID, id)
	}
	if err := ValidateUID(uid); err != nil {
		return "", "", err
	}
	return uid, ext, nil
}

func NewID(uid, ext string) string {
	return uid + "." + ext
}

func Shard(uid string) (string, string, error) {
	runes := []rune(uid)
	if len(runes) < minUIDLength {
		return "", "", fmt.Errorf("%w: uid %q is too short to shard", domain.ErrInvalidImageID, uid)
	}
	n := len(runes)
	return string(runes[n-3 : n-2]), string(runes[n-2:]), nil
}

// Dir returns the shard directory holding every file of id.
func Dir(root, id string) (string, error) {
	uid, _, err := ParseID(id)
	if err != nil {
		return "", err
	}
	d1, d2, err := Shard(uid)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, d1, d2), nil
}

func OriginalPath(root, id string) (string, error) {
	return ThumbnailPath(root, id, "")
}

// ThumbnailPath returns the path of the named variant of id. An empty name
// yields the original path.
func ThumbnailPath(root, id, name string) (string, error) {
	uid, ext, err := ParseID(id)
	if err != nil {
		return "", err
	}
	if name != "" {
		if err := ValidateThumbnailName(name); err != nil {
			return "", err
		}
	}
	dir, err := Dir(root, id)
	if err != nil {
		return "", err
	}

	segments := make([]string, 0, 3)
	for _, s := range []string{uid, name, ext} {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return filepath.Join(dir, strings.Join(segments, ".")), nil
}

func MetadataPath(root, id string) (string, error) {
	dir, err := Dir(root, id)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, id+MetadataSuffix), nil
}

// IsCanonicalFileName reports whether name is an original stored under a
// generated uid. Thumbnails and sidecars never match.
func IsCanonicalFileName(name string) bool {
	return canonicalName.MatchString(name) && !strings.HasSuffix(name, MetadataSuffix)
}

// MatchesArtifact reports whether name is the original, a thumbnail or the
// sidecar of uid.ext.
func MatchesArtifact(name, uid, ext string) bool {
	if !strings.HasPrefix(name, uid+".") {
		return false
	}
	return strings.HasSuffix(name, "."+ext) || strings.HasSuffix(name, "."+ext+MetadataSuffix)
}

// MatchesThumbnail reports whether name is a thumbnail of uid.ext. The original
// and the sidecar never match.
func MatchesThumbnail(name, uid, ext string) bool {
	return strings.HasPrefix(name, uid+".") &&
		name != NewID(uid, ext) &&
		strings.HasSuffix(name, "."+ext)
}
