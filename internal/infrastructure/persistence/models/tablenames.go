package models

const (
	TableRoles          = "roles"
	TableUsers          = "users"
	TableTickets        = "tickets"
	TableTicketMessages = "ticket_messages"
	TableTicketFiles    = "ticket_files"
)

// All returns every model in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&RoleModel{},
		&UserModel{},
		&TicketModel{},
		&TicketMessageModel{},
		&TicketFileModel{},
	}
}
