package validators

import (
	"context"
	"errors"
	"net"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"  Joao@Example.COM ", "joao@example.com", true},
		{"ana.souza+corte@barbearia.com.br", "ana.souza+corte@barbearia.com.br", true},
		{"", "", false},
		{"sem-arroba", "", false},
		{"joao@localhost", "", false},
		{"João <joao@example.com>", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizeEmail(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("NormalizeEmail(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

type fakeResolver struct {
	mx  map[string][]*net.MX
	ips map[string][]net.IPAddr
}

func (f fakeResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if v, ok := f.mx[name]; ok {
		return v, nil
	}
	return nil, errors.New("no such host")
}

func (f fakeResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	if v, ok := f.ips[host]; ok {
		return v, nil
	}
	return nil, errors.New("no such host")
}

func TestEmailDomainResolves(t *testing.T) {
	r := fakeResolver{
		mx:  map[string][]*net.MX{"mx.com": {{Host: "mail.mx.com.", Pref: 10}}},
		ips: map[string][]net.IPAddr{"ip.com": {{IP: net.ParseIP("10.0.0.1")}}},
	}

	tests := []struct {
		email string
		want  bool
	}{
		{"a@mx.com", true},
		{"a@ip.com", true},
		{"a@nada.com", false},
		{"a@", false},
		{"sem-arroba", false},
	}

	for _, tt := range tests {
		if got := EmailDomainResolves(context.Background(), r, tt.email); got != tt.want {
			t.Errorf("EmailDomainResolves(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}
