// Package common contains shared constants and sentinel errors used across
// ProfileKeeper components.
package common

// Well-known storage keys.
const (
	// AccountsKey holds the JSON-encoded account collection in durable storage.
	AccountsKey = "accounts"

	// CurrentUserKey holds the signed-in email in session storage.
	CurrentUserKey = "currentUser"

	// RememberTokenKey holds the remember-me token in durable storage.
	RememberTokenKey = "rememberToken"
)
