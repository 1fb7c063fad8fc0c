package validation

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/badoux/checkmail"
)

// Length bounds for user input
const (
	MinPasswordLength = 6
	MaxPasswordBytes  = 72 // bcrypt input limit
	MinNameLength     = 3
	MaxTopicTitle     = 200
	MaxTopicBody      = 2000
	MinCommentLength  = 5
	MaxCommentLength  = 500
	DefaultCategory   = "General"
)

// Genres a user can pick as favourite at registration or profile edit
var Genres = []string{
	"Action", "Comedy", "Drama", "Horror", "Science Fiction",
	"Romance", "Thriller", "Animation", "Documentary",
}

// Categories a forum topic can be filed under
var Categories = []string{"General", "Recommendations", "Debate", "News", "Other"}

// ValidationError is a failure caught before any backend call is made.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"error"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidEmail requires "@" and "." and a well-formed address.
// checkmail only knows ASCII, so internationalised addresses get a structural check instead.
func IsValidEmail(email string) bool {
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return false
	}
	if isASCII(email) {
		return checkmail.ValidateFormat(email) == nil
	}
	local, domain, ok := strings.Cut(email, "@")
	return ok && local != "" &&
		!strings.ContainsAny(email, " \t\r\n") &&
		!strings.Contains(domain, "@") &&
		strings.Contains(domain, ".") &&
		!strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func IsValidPassword(password string) bool {
	return utf8.RuneCountInString(password) >= MinPasswordLength && len(password) <= MaxPasswordBytes
}

func passwordError(field, password string) error {
	if len(password) > MaxPasswordBytes {
		return newError(field, fmt.Sprintf("password must be at most %d bytes", MaxPasswordBytes))
	}
	return newError(field, fmt.Sprintf("password must have at least %d characters", MinPasswordLength))
}

func PasswordsMatch(password, confirmation string) bool {
	return password == confirmation
}

func IsValidName(name string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(name)) >= MinNameLength
}

func IsValidGenre(genre string) bool {
	return slices.Contains(Genres, genre)
}

func IsValidCategory(category string) bool {
	return slices.Contains(Categories, category)
}

// IsValidTopic: title and description non-empty and under their caps
func IsValidTopic(title, description string) bool {
	return ValidateTopic(title, description, DefaultCategory) == nil
}

func IsValidComment(content string) bool {
	return ValidateComment(content) == nil
}

// ValidateRegistration checks every registration field, first failure wins
func ValidateRegistration(name, email, password, confirmation, genre string) error {
	if !IsValidName(name) {
		return newError("name", fmt.Sprintf("name must have at least %d characters", MinNameLength))
	}
	if !IsValidEmail(email) {
		return newError("email", "email is not valid")
	}
	if !IsValidPassword(password) {
		return passwordError("password", password)
	}
	if !PasswordsMatch(password, confirmation) {
		return newError("password_confirmation", "passwords do not match")
	}
	if !IsValidGenre(genre) {
		return newError("favorite_genre", "favorite genre is not valid")
	}
	return nil
}

// ValidateLogin only checks presence and shape; credentials are checked by the backend
func ValidateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return newError("email", "email and password are required")
	}
	if !IsValidEmail(email) {
		return newError("email", "email is not valid")
	}
	return nil
}

func ValidateProfile(name, genre string) error {
	if !IsValidName(name) {
		return newError("name", fmt.Sprintf("name must have at least %d characters", MinNameLength))
	}
	if !IsValidGenre(genre) {
		return newError("favorite_genre", "favorite genre is not valid")
	}
	return nil
}

func ValidatePasswordChange(current, next, confirmation string) error {
	if current == "" {
		return newError("current_password", "current password is required")
	}
	if !IsValidPassword(next) {
		return passwordError("new_password", next)
	}
	if !PasswordsMatch(next, confirmation) {
		return newError("password_confirmation", "passwords do not match")
	}
	return nil
}

func ValidateTopic(title, description, category string) error {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	switch {
	case title == "":
		return newError("title", "title is required")
	case description == "":
		return newError("description", "description is required")
	case utf8.RuneCountInString(title) > MaxTopicTitle:
		return newError("title", fmt.Sprintf("title must be at most %d characters", MaxTopicTitle))
	case utf8.RuneCountInString(description) > MaxTopicBody:
		return newError("description", fmt.Sprintf("description must be at most %d characters", MaxTopicBody))
	case !IsValidCategory(category):
		return newError("category", "category is not valid")
	}
	return nil
}

func ValidateComment(content string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(content))
	if n < MinCommentLength || n > MaxCommentLength {
		return newError("content", fmt.Sprintf("comment must be between %d and %d characters", MinCommentLength, MaxCommentLength))
	}
	return nil
}
