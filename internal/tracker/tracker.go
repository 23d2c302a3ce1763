// Package tracker syncs computed release labels onto tracking issues in a
// remote issue tracker. It is deliberately thin: the catalog decides what
// the labels are, this package only makes the remote match.
package tracker

import "context"

// Labeler reconciles a change's tracking issue with a computed label set.
type Labeler interface {
	// SyncLabels makes the issue's managed labels exactly match want.
	// Labels not owned by this tool are never touched.
	SyncLabels(ctx context.Context, changeID int, want []string) error
}
