package common

// AdminPasswordHeaderName is the HTTP header that carries the raw admin
// password. Admin requests are verified against the stored hash on every
// call; there is no admin session.
const AdminPasswordHeaderName = "X-Admin-Password"

// Boundary formats, validated before any request reaches the services.
const (
	// UserIDLength is the number of ASCII digits in a user id.
	UserIDLength = 7

	// ClassCodeLength is the number of ASCII digits in a class join code.
	ClassCodeLength = 5
)
