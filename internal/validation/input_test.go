package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreatePostInputValidate(t *testing.T) {
	assert.True(t, CreatePostInput{Text: "hello"}.Validate().Empty())

	errs := CreatePostInput{Text: ""}.Validate()
	assert.False(t, errs.Empty())
	assert.Contains(t, errs, "text")

	// whitespace-only text is still empty
	errs = CreatePostInput{Text: "   \n\t"}.Validate()
	assert.Contains(t, errs, "text")
}

func TestEditPostInputValidate(t *testing.T) {
	groupID := uint(3)
	assert.True(t, EditPostInput{Text: "updated", GroupID: &groupID}.Validate().Empty())
	assert.Contains(t, EditPostInput{}.Validate(), "text")
}

func TestAddCommentInputValidate(t *testing.T) {
	assert.True(t, AddCommentInput{Text: "nice post"}.Validate().Empty())
	assert.Contains(t, AddCommentInput{Text: " "}.Validate(), "text")
}

func TestValidateUsername(t *testing.T) {
	assert.True(t, ValidateUsername("leo_tolstoy").Empty())
	assert.Contains(t, ValidateUsername(""), "username")
	assert.Contains(t, ValidateUsername("ab"), "username")
	assert.Contains(t, ValidateUsername("has space"), "username")
	assert.Contains(t, ValidateUsername("slash/name"), "username")
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("reader@example.com").Empty())
	assert.Contains(t, ValidateEmail("not-an-email"), "email")
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("longenough").Empty())
	assert.Contains(t, ValidatePassword("short"), "password")
}

func TestMerge(t *testing.T) {
	merged := Merge(FieldErrors{"a": "1"}, FieldErrors{"b": "2"}, FieldErrors{"a": "3"})
	assert.Equal(t, FieldErrors{"a": "3", "b": "2"}, merged)
}
