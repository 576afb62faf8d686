package dto

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshDTO is read from the body when the refresh cookie is absent.
type RefreshDTO struct {
	RefreshToken string `json:"refreshToken"`
}

type AuthResponseDTO struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"-"`
	ExpiresIn    int64   `json:"expiresIn"`
	User         UserDTO `json:"user"`
}
