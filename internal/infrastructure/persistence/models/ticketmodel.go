package models

import "time"

// TicketModel represents the database persistence model for tickets.
// Timestamps are stored in UTC. Messages and files reference tickets by
// TicketID only; the SQL migrations add the foreign keys.
type TicketModel struct {
	ID          uint      `gorm:"primarykey"`
	CreatedAt   time.Time `gorm:"not null;index"`
	ReceivedAt  *time.Time
	ClosedAt    *time.Time
	Title       string `gorm:"size:150;not null"`
	Description string `gorm:"type:text;not null"`
	Status      string `gorm:"size:50;not null;index"`
	PCName      string `gorm:"column:pc_name;size:100;not null;index:idx_ticket_owner"`
	IPAddress   string `gorm:"column:ip_address;size:45;not null;index:idx_ticket_owner"`
	IsNew       bool   `gorm:"not null;default:true;index"`
	Version     int    `gorm:"not null;default:1"`
}

func (TicketModel) TableName() string {
	return TableTickets
}

type TicketMessageModel struct {
	ID        uint      `gorm:"primarykey"`
	TicketID  uint      `gorm:"not null;index"`
	IPAddress string    `gorm:"column:ip_address;size:45;not null"`
	PCName    string    `gorm:"column:pc_name;size:100;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (TicketMessageModel) TableName() string {
	return TableTicketMessages
}

type TicketFileModel struct {
	ID       uint   `gorm:"primarykey"`
	Filename string `gorm:"size:255;not null"`
	TicketID uint   `gorm:"not null;index"`
}

func (TicketFileModel) TableName() string {
	return TableTicketFiles
}
