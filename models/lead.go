package models

import "time"

type Lead struct {
	ID           string    `json:"id"`
	Nome         string    `json:"nome" validate:"required"`
	Whatsapp     string    `json:"whatsapp" validate:"required,min=8,max=20"`
	Email        string    `json:"email,omitempty" validate:"omitempty,email"`
	TipoImovel   string    `json:"tipo_imovel"`
	RegiaoID     string    `json:"regiao_id"`
	ImovelID     string    `json:"imovelId,omitempty"`
	ImovelTitulo string    `json:"imovelTitulo,omitempty"`
	DataEnvio    time.Time `json:"dataEnvio"`
}
