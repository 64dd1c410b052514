package dto

type PageQuery struct {
	Page  int `form:"page" validate:"omitempty,min=1"`
	Limit int `form:"limit" validate:"omitempty,min=1,max=200"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required" validate:"required,is-user-role"`
}

type UpdateUsernameRequest struct {
	Username string `json:"username" binding:"required" validate:"required,min=3,max=64"`
}

type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required" validate:"required,min=6,max=128"`
}

type UpdateProfilePictureRequest struct {
	// base64-блоб, пустое значение откатывает на картинку по умолчанию
	Picture string `json:"picture"`
}

type SetAPIAccessRequest struct {
	Allowed *bool `json:"allowed" binding:"required" validate:"required"`
}

type ResetPasswordResponse struct {
	// Новый пароль показывается один раз и нигде больше не хранится
	Password string `json:"password"`
}
