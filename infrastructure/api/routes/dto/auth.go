// Package dto holds HTTP request bodies.
package dto

// SignUpRequest is the sign-up form.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// SignInRequest is the password sign-in form.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyRequest confirms an emailed one-time token. Type defaults to
// "email".
type VerifyRequest struct {
	Email string `json:"email"`
	Token string `json:"token"`
	Type  string `json:"type"`
}
