package models

// All lista as tabelas na ordem de migração.
func All() []any {
	return []any{
		&Service{},
		&Barber{},
		&BusinessHours{},
		&BlockedInterval{},
		&Customer{},
		&Booking{},
		&User{},
		&AuditLog{},
	}
}
