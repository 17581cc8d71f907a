package user

import "time"

type UpdateUserDTO struct {
	Nombre          *string `json:"nombre"          binding:"omitempty,min=1"`
	Email           *string `json:"email"           binding:"omitempty,email"`
	Password        *string `json:"password"        binding:"omitempty,min=8,max=72"`
	ProfileImageURL *string `json:"profileImageUrl"`
	CoverImageURL   *string `json:"coverImageUrl"`
}

type profileResponse struct {
	Nombre          string    `json:"nombre"`
	Email           string    `json:"email"`
	CreatedAt       time.Time `json:"createdAt"`
	Role            string    `json:"role"`
	ProfileImageURL *string   `json:"profileImageUrl"`
	CoverImageURL   *string   `json:"coverImageUrl"`
}

type uploadResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}
