// Package labels defines the release-label vocabulary attached to tracking
// issues. The exact strings are a compatibility surface consumed by the
// remote tracker and must not change.
package labels

import "strings"

// Label prefixes. The trailing space is part of the format.
const (
	shippedPrefix = "🚢 "
	cherryPrefix  = "🍒 "
)

// Next marks a change merged to mainline but not yet part of any release.
const Next = shippedPrefix + "next"

// Shipped returns the label for the first release containing a change.
func Shipped(tag string) string {
	return shippedPrefix + tag
}

// CherryPicked returns the label for a release that received a change
// through a separate backport commit.
func CherryPicked(tag string) string {
	return cherryPrefix + tag
}

// IsShip reports whether a label is a ship label (including Next).
func IsShip(label string) bool {
	return strings.HasPrefix(label, shippedPrefix)
}

// IsCherry reports whether a label is a cherry-pick label.
func IsCherry(label string) bool {
	return strings.HasPrefix(label, cherryPrefix)
}

// IsManaged reports whether a label is owned by this tool. Sync operations
// only touch managed labels and leave human-applied ones alone.
func IsManaged(label string) bool {
	return IsShip(label) || IsCherry(label)
}
