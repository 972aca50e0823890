package models

// User is the authenticated account.
type User struct {
	ID              int64  `json:"id,omitempty"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}
