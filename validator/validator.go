// Package validator provides signup form validation predicates.
// All patterns are compiled once at init and are read-only afterwards, so the
// package is safe for concurrent use from request handlers.
package validator

import "regexp"

var (
	userIDRegexp   = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,20}$`)
	passwordRegexp = regexp.MustCompile(`^.{3,20}$`)
	// emailRegexp is deliberately loose: the dot between domain runs is an
	// unescaped any-char, matching the historical behavior of this form.
	// Do not tighten it
	emailRegexp = regexp.MustCompile(`^[\S]+@[\S]+.[\S]+$`)
)

// IsValidUserID - checks user id: 3-20 chars of letters, digits, '_' or '-'
func IsValidUserID(userID string) bool {
	return userID != "" && userIDRegexp.MatchString(userID)
}

// IsValidPassword - checks password: any 3-20 chars
func IsValidPassword(password string) bool {
	return password != "" && passwordRegexp.MatchString(password)
}

// IsValidEmail - checks email. Email is optional, so an empty string is valid
func IsValidEmail(email string) bool {
	return email == "" || emailRegexp.MatchString(email)
}
