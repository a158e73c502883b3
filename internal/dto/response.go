package dto

type MessageDTO struct {
	Message string `json:"message"`
}
