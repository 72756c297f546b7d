package booking

import (
	"errors"
	"time"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// Settings são os parâmetros de agenda que vêm da configuração.
type Settings struct {
	Location        *time.Location
	SlotStep        time.Duration
	MinCancelNotice time.Duration

	// Now substitui o relógio nos testes.
	Now func() time.Time
}

func (s Settings) loc() *time.Location {
	if s.Location == nil {
		return timezone.Location(timezone.DefaultTimezone)
	}
	return s.Location
}

func (s Settings) now() time.Time {
	if s.Now != nil {
		return s.Now().In(s.loc())
	}
	return timezone.NowIn(s.loc())
}

// notFoundAs troca o ErrNotFound do repositório pelo código de negócio.
func notFoundAs(err error, code string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrNotFound(code)
	}
	return err
}

func actorAudit(a domain.Actor) (*uint, string) {
	return a.UserID, string(a.Role)
}
