package models

import "time"

// Service é um atendimento oferecido pelo NAF (ex.: declaração de IR).
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"nome"`
	Description string `gorm:"type:text" json:"descricao"`
	DurationMin int    `gorm:"not null" json:"duracao_minutos"`
	Active      bool   `gorm:"not null" json:"ativo"`
	ImageURL    string `gorm:"size:255" json:"imagem_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
