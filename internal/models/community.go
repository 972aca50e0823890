package models

import "time"

// Post is a community feed entry.
type Post struct {
	ID           int64     `json:"id,omitempty"`
	UserID       int64     `json:"userId,omitempty"`
	UserName     string    `json:"userName,omitempty"`
	Content      string    `json:"content"`
	Likes        int       `json:"likes"`
	CommentCount int       `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	Comments     []Comment `json:"comments,omitempty"`
}

// Comment is a reply on a community post.
type Comment struct {
	ID        int64     `json:"id,omitempty"`
	PostID    int64     `json:"postId,omitempty"`
	UserID    int64     `json:"userId,omitempty"`
	UserName  string    `json:"userName,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
