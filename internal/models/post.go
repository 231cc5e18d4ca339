// Package models contains data structures for the application's domain models.
package models

import "time"

// Post represents a feed post. Username and UserAvatar are snapshots of the
// author taken at creation time; later profile edits do not update them.
type Post struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Username   string    `json:"username"`
	UserAvatar string    `json:"userAvatar"`
	Content    string    `json:"content"`
	Image      string    `json:"image,omitempty"`
	Likes      []string  `json:"likes"`
	Comments   []Comment `json:"comments"`
	Saved      []string  `json:"saved"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Comment represents a single comment on a post. Comments are append-only:
// they are never edited or deleted.
type Comment struct {
	ID         string    `json:"id"`
	PostID     string    `json:"postId"`
	UserID     string    `json:"userId"`
	Username   string    `json:"username"`
	UserAvatar string    `json:"userAvatar"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// LikedBy reports whether userID is in the post's like set.
func (p *Post) LikedBy(userID string) bool {
	return containsID(p.Likes, userID)
}

// SavedBy reports whether userID is in the post's saved set.
func (p *Post) SavedBy(userID string) bool {
	return containsID(p.Saved, userID)
}

// Clone returns a deep copy of the post, including its comment sequence and
// like/saved sets.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Likes = append([]string(nil), p.Likes...)
	cp.Saved = append([]string(nil), p.Saved...)
	cp.Comments = append([]Comment(nil), p.Comments...)
	return &cp
}

// ClonePosts deep-copies a post slice, preserving order.
func ClonePosts(posts []*Post) []*Post {
	out := make([]*Post, len(posts))
	for i, p := range posts {
		out[i] = p.Clone()
	}
	return out
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
