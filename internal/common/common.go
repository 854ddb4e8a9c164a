package common

import "time"

const DateTimeLayout = time.RFC3339

// DrawLockKey is the grouplock key serializing draw mutations of a group.
func DrawLockKey(groupID string) string {
	return "draw:" + groupID
}
