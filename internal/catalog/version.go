package catalog

import (
	"strings"

	"golang.org/x/mod/semver"
)

// normalize maps a tag name to the "v"-prefixed form x/mod/semver expects,
// so both "1.2.0" and "v1.2.0" style tags compare correctly.
func normalize(tag string) string {
	if strings.HasPrefix(tag, "v") {
		return tag
	}
	return "v" + tag
}

// IsReleaseTag reports whether a tag names a final release: a full
// major.minor.patch semantic version with no pre-release or build suffix.
// Shorthand forms like "1.2" are rejected. Anything else in the tag
// namespace (nightlies, release candidates, feature tags) is silently
// excluded from the release sequence.
func IsReleaseTag(tag string) bool {
	v := normalize(tag)
	if !semver.IsValid(v) {
		return false
	}
	if semver.Prerelease(v) != "" || semver.Build(v) != "" {
		return false
	}
	return semver.Canonical(v) == v
}

// compareTags orders two release tags by semantic version, not lexically.
func compareTags(a, b string) int {
	return semver.Compare(normalize(a), normalize(b))
}
