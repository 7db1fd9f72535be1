// Package validation holds the typed input structs for authoring
// operations and the pure functions that validate them.
package validation

import (
	"net/mail"
	"strings"
)

// FieldErrors maps a field name to a human-readable validation message.
type FieldErrors map[string]string

// Empty reports whether validation passed.
func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

// CreatePostInput carries the client-supplied fields for a new post. The
// author is never part of the input; it is assigned from the session.
type CreatePostInput struct {
	Text    string `json:"text" form:"text"`
	GroupID *uint  `json:"group_id" form:"group_id"`
}

// Validate checks the input and returns a field error map.
func (in CreatePostInput) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(in.Text) == "" {
		errs["text"] = "Text is required"
	}
	return errs
}

// EditPostInput carries the editable fields of an existing post.
type EditPostInput struct {
	Text    string `json:"text" form:"text"`
	GroupID *uint  `json:"group_id" form:"group_id"`
}

// Validate checks the input and returns a field error map.
func (in EditPostInput) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(in.Text) == "" {
		errs["text"] = "Text is required"
	}
	return errs
}

// AddCommentInput carries the client-supplied fields for a new comment.
// The author and the parent post come from the session and the URL path.
type AddCommentInput struct {
	Text string `json:"text" form:"text"`
}

// Validate checks the input and returns a field error map.
func (in AddCommentInput) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(in.Text) == "" {
		errs["text"] = "Text is required"
	}
	return errs
}

// ValidateUsername enforces the account name rules shared by signup and
// the seeder.
func ValidateUsername(username string) FieldErrors {
	errs := FieldErrors{}
	switch {
	case strings.TrimSpace(username) == "":
		errs["username"] = "Username is required"
	case len(username) < 3:
		errs["username"] = "Username must be at least 3 characters"
	case len(username) > 30:
		errs["username"] = "Username must be at most 30 characters"
	case strings.ContainsAny(username, " /?#%"):
		errs["username"] = "Username must be URL-safe"
	}
	return errs
}

// ValidateEmail checks the address syntactically.
func ValidateEmail(email string) FieldErrors {
	errs := FieldErrors{}
	if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "Invalid email address"
	}
	return errs
}

// ValidatePassword enforces a minimum password length.
func ValidatePassword(password string) FieldErrors {
	errs := FieldErrors{}
	if len(password) < 8 {
		errs["password"] = "Password must be at least 8 characters"
	}
	return errs
}

// Merge combines several field error maps; later maps win on conflict.
func Merge(maps ...FieldErrors) FieldErrors {
	out := FieldErrors{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
