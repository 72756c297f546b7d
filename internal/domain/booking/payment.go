package booking

import "github.com/BruksfildServices01/barbershop-booking/internal/httperr"

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentPix        PaymentMethod = "pix"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentVoucher    PaymentMethod = "voucher"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentPix, PaymentCreditCard, PaymentDebitCard, PaymentVoucher:
		return PaymentMethod(s), nil
	}
	return "", httperr.ErrValidation(CodeInvalidPayment)
}
