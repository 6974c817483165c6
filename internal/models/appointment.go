package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Date guarda apenas o dia (coluna DATE); TimeSlot o horário "HH:MM".
	Date     time.Time `gorm:"type:date;not null" json:"data"`
	TimeSlot string    `gorm:"size:5;not null" json:"horario"`

	Status string `gorm:"size:20;not null" json:"status"`
	Notes  string `gorm:"type:text" json:"observacoes"`

	UserID uint  `gorm:"not null" json:"usuarioId"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"usuario,omitempty"`

	ServiceID uint     `gorm:"not null" json:"servicoId"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"servico,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
