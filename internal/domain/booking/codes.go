package booking

import "errors"

// Códigos estáveis devolvidos ao cliente.
const (
	CodeInvalidPhone       = "invalid_phone"
	CodeInvalidEmail       = "invalid_email"
	CodeMissingField       = "missing_field"
	CodeInvalidDuration    = "invalid_duration"
	CodeInvalidStep        = "invalid_step"
	CodeInvalidPrice       = "invalid_price"
	CodeInvalidPayment     = "invalid_payment_method"
	CodeInvalidStatus      = "invalid_status"
	CodeInvalidDateTime    = "invalid_date_or_time"
	CodeSlotInPast         = "slot_in_past"
	CodeSlotOffGrid        = "slot_off_grid"
	CodeOutsideHours       = "outside_business_hours"
	CodeSlotBlocked        = "slot_blocked"
	CodeSlotUnavailable    = "slot_unavailable"
	CodeInvalidState       = "invalid_state"
	CodeNotOwner           = "not_owner"
	CodeCancelWindowClosed = "cancel_window_closed"
	CodeForbidden          = "forbidden"
	CodeServiceNotFound    = "service_not_found"
	CodeBarberNotFound     = "barber_not_found"
	CodeBookingNotFound    = "booking_not_found"
	CodeHoursNotConfigured = "business_hours_not_configured"
	CodeInvalidHours       = "invalid_business_hours"
	CodeInvalidBlock       = "invalid_blocked_interval"
)

// ErrNotFound é devolvido pelo repositório quando o registro não existe.
var ErrNotFound = errors.New("record not found")
