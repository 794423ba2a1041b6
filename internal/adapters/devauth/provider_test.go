package devauth

import (
	"context"
	"strings"
	"testing"

	"github.com/roktoseba/ui-gateway/internal/ports"
)

func TestProvider_BeginAndExchange(t *testing.T) {
	prov, err := NewProvider(Config{Email: "dev@example.com", Name: "Dev User"})
	if err != nil {
		t.Fatalf("NewProvider error: %v", err)
	}
	url, state, nonce, err := prov.Begin(context.Background(), ports.BeginInput{RedirectURL: "/"})
	if err != nil {
		t.Fatalf("Begin error: %v", err)
	}
	if !strings.HasPrefix(url, "/auth/callback?") {
		t.Fatalf("unexpected authURL: %s", url)
	}
	if state == "" || nonce == "" {
		t.Fatal("state and nonce should be generated")
	}
	id, err := prov.Exchange(context.Background(), ports.ExchangeInput{Code: "dev", State: state, Nonce: nonce})
	if err != nil {
		t.Fatalf("Exchange error: %v", err)
	}
	if id.Email != "dev@example.com" || id.Name != "Dev User" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestNewProvider_RequiresEmail(t *testing.T) {
	if _, err := NewProvider(Config{}); err == nil {
		t.Fatal("expected error for missing email")
	}
}

func TestProvider_NameDefaultsToEmail(t *testing.T) {
	prov, err := NewProvider(Config{Email: "dev@example.com"})
	if err != nil {
		t.Fatalf("NewProvider error: %v", err)
	}
	id, err := prov.Exchange(context.Background(), ports.ExchangeInput{Code: "dev", State: "s", Nonce: "n"})
	if err != nil {
		t.Fatalf("Exchange error: %v", err)
	}
	if id.Name != "dev@example.com" {
		t.Fatalf("unexpected name: %q", id.Name)
	}
}
