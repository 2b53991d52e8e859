package auth

// signup request payload
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// login request payload; form-encoded for OAuth2 password-flow
// compatibility, username carries the email address
type LoginRequest struct {
	Username string `form:"username" json:"username" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

// confirmation resend request payload
type RequestEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}
