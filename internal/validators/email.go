package validators

import (
	"context"
	"net"
	"net/mail"
	"strings"
	"sync"
	"time"
)

// Resolver is the subset of *net.Resolver used to probe mail domains.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// EmailDomains accepts addresses whose domain can receive mail: it has an
// MX record or, failing that, resolves to an address. Verdicts are cached
// per domain.
type EmailDomains struct {
	resolver Resolver
	timeout  time.Duration

	mu    sync.Mutex
	known map[string]bool
}

func NewEmailDomains(resolver Resolver, timeout time.Duration) *EmailDomains {
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	return &EmailDomains{
		resolver: resolver,
		timeout:  timeout,
		known:    make(map[string]bool),
	}
}

// Valid reports whether email is well formed and its domain resolves.
// Lookup failures count as invalid and are not cached.
func (v *EmailDomains) Valid(email string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return false
	}
	at := strings.LastIndex(addr.Address, "@")
	if at < 0 || at == len(addr.Address)-1 {
		return false
	}
	domain := strings.ToLower(addr.Address[at+1:])

	v.mu.Lock()
	ok, seen := v.known[domain]
	v.mu.Unlock()
	if seen {
		return ok
	}

	ok, definite := v.probe(domain)
	if definite {
		v.mu.Lock()
		v.known[domain] = ok
		v.mu.Unlock()
	}
	return ok
}

// probe returns definite=false when the answer came from a timeout or a
// temporary resolver error.
func (v *EmailDomains) probe(domain string) (ok, definite bool) {
	ctx, cancel := context.WithTimeout(context.Background(), v.timeout)
	defer cancel()

	mx, err := v.resolver.LookupMX(ctx, domain)
	if err == nil && len(mx) > 0 {
		return true, true
	}
	definite = isNotFound(err)

	ips, err := v.resolver.LookupIPAddr(ctx, domain)
	if err == nil && len(ips) > 0 {
		return true, true
	}
	return false, definite && isNotFound(err)
}

func isNotFound(err error) bool {
	if err == nil {
		return true
	}
	dnsErr, ok := err.(*net.DNSError)
	return ok && dnsErr.IsNotFound
}
