package dto

type RegisterRequest struct {
	Username string `json:"username" binding:"required" validate:"required,min=3,max=64"`
	Password string `json:"password" binding:"required" validate:"required,min=6,max=128"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required" validate:"required"`
	Password string `json:"password" binding:"required" validate:"required"`
	Remember bool   `json:"remember"`
}

type WhoAmIResponse struct {
	LoggedIn bool   `json:"logged_in"`
	UserID   uint   `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}
