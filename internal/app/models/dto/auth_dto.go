package dto

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"jean.dupont"`
	Password string `json:"password" binding:"required" example:"S3cret!pass"`
}

// LoginResponse carries the issued bearer token and the caller's identity
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn" example:"3600"`
	Username  string `json:"username" example:"jean.dupont"`
	Role      string `json:"role" example:"STUDENT"`
}

// ChangePasswordRequest rotates the caller's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// CredentialsResponse carries auto-provisioned credentials. The plaintext
// password appears here exactly once and is never retrievable afterwards.
type CredentialsResponse struct {
	Username string `json:"username" example:"jean.dupont"`
	Password string `json:"password" example:"aB3!xY9?zQ_w"`
}

// TokenCheckResponse reports the state of a presented token
type TokenCheckResponse struct {
	Message string            `json:"message"`
	Claims  map[string]string `json:"claims,omitempty"`
}
