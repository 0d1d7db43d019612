package auth

// User is a traveler row without the password hash.
type User struct {
	UserID          int64   `json:"user_id"`
	Name            *string `json:"name"`
	Email           string  `json:"email"`
	Bio             *string `json:"bio"`
	Verified        bool    `json:"verified"`
	College         *string `json:"college"`
	ProfileImageURL *string `json:"profile_image_url"`

	PasswordHash string `json:"-"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}
