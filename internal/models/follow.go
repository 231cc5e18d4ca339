package models

// Follow is a directed edge in the social graph: FollowerID follows
// FollowingID. One edge set is authoritative; "who follows X" and "who X
// follows" are both derived from it by querying the matching side.
type Follow struct {
	FollowerID  string `json:"followerId"`
	FollowingID string `json:"followingId"`
}

// CloneFollows copies a follow edge slice, preserving order.
func CloneFollows(edges []Follow) []Follow {
	return append([]Follow(nil), edges...)
}
