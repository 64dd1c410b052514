package dto

type BanRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=1000"`
}

type BanReasonResponse struct {
	Banned bool   `json:"banned"`
	Reason string `json:"reason,omitempty"`
}
