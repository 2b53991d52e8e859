package auth

import "notesapi/internal/users"

// access + refresh pair returned by login and refresh
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// created user plus instruction message
type SignupResponse struct {
	User   *users.User `json:"user"`
	Detail string      `json:"detail"`
}
