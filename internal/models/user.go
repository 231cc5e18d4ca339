package models

// User represents a registered account. Follower and following counts are
// display-only aggregates carried on the profile; they are not derived from
// the follow edge set.
type User struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Bio            string `json:"bio"`
	Avatar         string `json:"avatar"`
	FollowersCount int    `json:"followersCount"`
	FollowingCount int    `json:"followingCount"`
}

// Clone returns an independent copy of the user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}
