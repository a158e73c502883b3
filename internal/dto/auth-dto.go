package dto

type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserPublicDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type AuthResponseDTO struct {
	AccessToken string        `json:"access_token"`
	TokenType   string        `json:"token_type"`
	User        UserPublicDTO `json:"user"`
}
