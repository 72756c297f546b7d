package validators

import (
	"context"
	"net"
	"net/mail"
	"strings"
)

// Resolver é o pedaço de *net.Resolver usado na checagem de domínio.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// NormalizeEmail apara e põe em minúsculas. Só aceita o endereço puro,
// sem nome de exibição.
func NormalizeEmail(raw string) (string, bool) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", false
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", false
	}

	at := strings.LastIndex(email, "@")
	if !strings.Contains(email[at+1:], ".") {
		return "", false
	}
	return email, true
}

func IsEmailDomainValid(email string) bool {
	return EmailDomainResolves(context.Background(), net.DefaultResolver, email)
}

// EmailDomainResolves aceita o domínio se tiver MX ou, na falta, algum IP.
func EmailDomainResolves(ctx context.Context, r Resolver, email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := r.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
