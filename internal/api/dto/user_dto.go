package dto

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest payload for partial profile updates. Password
// change requires both password fields.
type UpdateProfileRequest struct {
	Name        string `json:"name"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// UserResponse is the public view of an account. The password hash is
// never serialized.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ProfileResponse is returned by profile updates.
type ProfileResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
