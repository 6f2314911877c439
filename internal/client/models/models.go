// Package models holds the typed payloads exchanged with the ResumeRoast
// backend. Fields mirror the JSON the API produces; numeric rating fields are
// pointers so "never rated" stays distinguishable from a literal zero.
package models

import "time"

// UserPublic is the owner block embedded in posts and comments.
type UserPublic struct {
	Username     string `json:"username"`
	ProfileType  string `json:"profile_type,omitempty"`
	Organization string `json:"organization,omitempty"`
	Headline     string `json:"headline,omitempty"`
}

// UserProfile is the authenticated caller's profile from GET /users/me.
type UserProfile struct {
	ID           string `json:"id,omitempty"`
	Email        string `json:"email,omitempty"`
	Username     string `json:"username"`
	ProfileType  string `json:"profile_type,omitempty"`
	Organization string `json:"organization,omitempty"`
	Program      string `json:"program,omitempty"`
	YearOfStudy  *int   `json:"year_of_study,omitempty"`
	JobTitle     string `json:"job_title,omitempty"`
}

// DisplayName is the identity comments and ownership checks compare against:
// the username when present, otherwise the email.
func (u *UserProfile) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

// Post is one resume submission.
type Post struct {
	PostID        string     `json:"post_id"`
	Owner         UserPublic `json:"owner"`
	FileName      string     `json:"file_name"`
	URL           string     `json:"url"`
	FileType      string     `json:"file_type"`
	Caption       string     `json:"caption,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	AverageRating *float64   `json:"average_rating,omitempty"`
	VoteCount     *int       `json:"vote_count,omitempty"`
}

// Rating returns the display rating, defaulting to 0.0 when unrated.
func (p *Post) Rating() float64 {
	if p.AverageRating == nil {
		return 0
	}
	return *p.AverageRating
}

// Votes returns the display vote count, defaulting to 0.
func (p *Post) Votes() int {
	if p.VoteCount == nil {
		return 0
	}
	return *p.VoteCount
}

// Comment is one entry of a post's flat comment list. Optimistic is client-only:
// it marks a locally inserted comment that the server has not confirmed yet.
type Comment struct {
	ID              string     `json:"id"`
	PostID          string     `json:"post_id,omitempty"`
	Body            string     `json:"body"`
	ParentCommentID string     `json:"parent_comment_id,omitempty"`
	Owner           UserPublic `json:"owner"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	Optimistic      bool       `json:"-"`
}

// OwnerName returns the comment author's username, falling back to a flat
// username field some endpoints used historically.
func (c *Comment) OwnerName() string {
	return c.Owner.Username
}

// NewComment is the request body of POST /comments/{postId}.
type NewComment struct {
	PostID          string  `json:"post_id"`
	Body            string  `json:"body"`
	ParentCommentID *string `json:"parent_comment_id"`
}

// RegisterRequest is the JSON payload of POST /auth/register. Role-specific
// fields follow the original signup form: students submit organization,
// program and year of study, professionals submit organization and job title.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Username     string `json:"username"`
	ProfileType  string `json:"profile_type"`
	Organization string `json:"organization,omitempty"`
	Program      string `json:"program,omitempty"`
	YearOfStudy  string `json:"year_of_study,omitempty"`
	JobTitle     string `json:"job_title,omitempty"`
}

// Profile types accepted by the backend.
const (
	ProfileStudent      = "student"
	ProfileProfessional = "professional"
)
