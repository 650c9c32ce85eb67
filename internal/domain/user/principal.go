package user

// Principal is the caller identity resolved from an access token.
type Principal struct {
	UserID string
	Email  string
}
