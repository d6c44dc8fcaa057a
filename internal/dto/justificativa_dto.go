package dto

type AvaliacaoJustificativaRequest struct {
	Status     string  `json:"status" validate:"required,oneof=aprovada rejeitada"`
	Comentario *string `json:"comentario"`
}

type JustificativaSubmitResponse struct {
	Mensagem string `json:"mensagem"`
	IDs      []uint `json:"ids"`
}
