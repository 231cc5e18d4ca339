// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Field limits mirrored by the signup/settings/create forms.
const (
	MinUsernameLen = 3
	MaxUsernameLen = 30
	MinNameLen     = 2
	MinPasswordLen = 6
	MaxPasswordLen = 128
	MaxBioLen      = 160
	MaxContentLen  = 500
	MaxEmailLen    = 254
)

var (
	usernameRegex = regexp.MustCompile(`^[a-z0-9_.]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if len(username) < MinUsernameLen {
		return fmt.Errorf("username must be at least %d characters long", MinUsernameLen)
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	// Only allow lowercase letters, digits, underscores, and dots
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username can only contain lowercase letters, numbers, underscores, and dots")
	}

	return nil
}

// ValidateName checks if a display name meets requirements
func ValidateName(name string) error {
	if len(strings.TrimSpace(name)) < MinNameLen {
		return fmt.Errorf("name must be at least %d characters long", MinNameLen)
	}
	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	if len(email) > MaxEmailLen {
		return fmt.Errorf("email must not exceed %d characters", MaxEmailLen)
	}

	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLen)
	}

	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", MaxPasswordLen)
	}

	return nil
}

// ValidateBio checks the profile bio length
func ValidateBio(bio string) error {
	if len(bio) > MaxBioLen {
		return fmt.Errorf("bio must be %d characters or less", MaxBioLen)
	}
	return nil
}

// ValidatePostContent checks a new post's content and image. A post with
// neither content nor image should never reach the store.
func ValidatePostContent(content, image string) error {
	if len(content) > MaxContentLen {
		return fmt.Errorf("content must be %d characters or less", MaxContentLen)
	}
	if strings.TrimSpace(content) == "" && image == "" {
		return fmt.Errorf("a post needs content or an image")
	}
	return nil
}

// ValidateStoryImage checks that a story has an image.
func ValidateStoryImage(image string) error {
	if strings.TrimSpace(image) == "" {
		return fmt.Errorf("a story needs an image")
	}
	return nil
}
