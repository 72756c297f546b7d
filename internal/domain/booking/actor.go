package booking

import "github.com/BruksfildServices01/barbershop-booking/internal/httperr"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleBarber   Role = "barber"
	RoleCustomer Role = "customer"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleBarber, RoleCustomer:
		return Role(s), true
	}
	return "", false
}

// Actor é quem executa a operação. Para admin/barbeiro vem sempre do token
// verificado no servidor.
type Actor struct {
	Role     Role
	UserID   *uint
	BarberID *uint
}

func CustomerActor() Actor {
	return Actor{Role: RoleCustomer}
}

func (a Actor) Privileged() bool {
	return a.Role == RoleAdmin || a.Role == RoleBarber
}

// CanManage diz se o ator pode mexer na agenda do barbeiro.
func (a Actor) CanManage(barberID uint) error {
	switch a.Role {
	case RoleAdmin:
		return nil
	case RoleBarber:
		if a.BarberID != nil && *a.BarberID == barberID {
			return nil
		}
	}
	return httperr.ErrPolicy(CodeForbidden)
}
