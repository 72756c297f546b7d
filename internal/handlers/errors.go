package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
)

var messages = map[string]string{
	domain.CodeInvalidPhone:       "Telefone inválido. Informe DDD + número (11 dígitos).",
	domain.CodeInvalidEmail:       "E-mail inválido.",
	domain.CodeMissingField:       "Preencha todos os campos obrigatórios.",
	domain.CodeInvalidDuration:    "Duração inválida.",
	domain.CodeInvalidStep:        "Intervalo de agenda inválido.",
	domain.CodeInvalidPrice:       "Preço inválido.",
	domain.CodeInvalidPayment:     "Forma de pagamento inválida.",
	domain.CodeInvalidStatus:      "Status inválido.",
	domain.CodeInvalidDateTime:    "Data ou hora inválida.",
	domain.CodeSlotInPast:         "Esse horário já passou.",
	domain.CodeSlotOffGrid:        "Escolha um dos horários disponíveis.",
	domain.CodeOutsideHours:       "Fora do horário de atendimento.",
	domain.CodeSlotBlocked:        "Horário bloqueado pelo barbeiro.",
	domain.CodeSlotUnavailable:    "Esse horário acabou de ser reservado. Escolha outro.",
	domain.CodeInvalidState:       "O agendamento não pode mudar para esse status.",
	domain.CodeNotOwner:           "Telefone não confere com o do agendamento.",
	domain.CodeCancelWindowClosed: "Cancelamento permitido só com antecedência mínima.",
	domain.CodeForbidden:          "Sem permissão para essa operação.",
	domain.CodeServiceNotFound:    "Serviço não encontrado.",
	domain.CodeBarberNotFound:     "Barbeiro não encontrado.",
	domain.CodeBookingNotFound:    "Agendamento não encontrado.",
	domain.CodeHoursNotConfigured: "Horário de funcionamento não configurado.",
	domain.CodeInvalidHours:       "Horário de funcionamento inválido.",
	domain.CodeInvalidBlock:       "Bloqueio de agenda inválido.",
}

func messageFor(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return "Operação não permitida."
}

// respondError traduz erros de negócio no status certo; o resto vira 500
// genérico e só aparece no log.
func respondError(c *gin.Context, err error) {
	if be, ok := httperr.AsBusiness(err); ok {
		httperr.Write(c, httperr.StatusFor(be), be.Code, messageFor(be.Code))
		return
	}

	slog.ErrorContext(c.Request.Context(), "request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"err", err,
	)
	httperr.Internal(c, "internal_error", "Erro interno. Tente novamente.")
}

func invalidRequest(c *gin.Context) {
	httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
}
