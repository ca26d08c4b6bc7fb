package auth

import "strings"

// Kind is the small fixed set of user-facing auth error categories. Raw
// provider messages are never shown to the user; they are mapped here by
// substring matching, brittle but deliberate — the provider offers no stable
// error codes.
type Kind int

const (
	KindNetwork Kind = iota
	KindInvalidCredentials
	KindEmailNotConfirmed
	KindRateLimited
)

// Message returns the string the UI shows for this category.
func (k Kind) Message() string {
	switch k {
	case KindInvalidCredentials:
		return "Invalid email or password."
	case KindEmailNotConfirmed:
		return "Please verify your email address to login."
	case KindRateLimited:
		return "Too many attempts. Please wait a moment and try again."
	default:
		return "Something went wrong. Check your connection and try again."
	}
}

// Categorize maps a provider error onto a Kind.
func Categorize(err error) Kind {
	if err == nil {
		return KindNetwork
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "invalid login credentials"):
		return KindInvalidCredentials
	case strings.Contains(msg, "email not confirmed"):
		return KindEmailNotConfirmed
	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "too many requests"):
		return KindRateLimited
	default:
		return KindNetwork
	}
}
