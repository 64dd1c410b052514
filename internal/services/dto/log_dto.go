package dto

type LogQuery struct {
	PageQuery
	Level  int    `form:"level" validate:"omitempty,is-log-level"`
	Status string `form:"status" validate:"omitempty,oneof=UNREADED READED"`
	Name   string `form:"name" validate:"omitempty,max=100"`
}

type SubscribeRequest struct {
	Endpoint  string `json:"endpoint" binding:"required" validate:"required,url"`
	PublicKey string `json:"public_key" binding:"required" validate:"required"`
	AuthToken string `json:"auth_token" binding:"required" validate:"required"`
}

type CloseEndpointRequest struct {
	Endpoint string `json:"endpoint" binding:"required" validate:"required,url"`
}

type RecordSentRequest struct {
	Title   string `json:"title" binding:"required" validate:"required,max=255"`
	Message string `json:"message" binding:"required" validate:"required"`
}
