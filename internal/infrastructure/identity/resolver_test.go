package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Override(t *testing.T) {
	r := NewResolver(" helpdesk-host ")
	id := r.Resolve("192.168.1.10:51234")

	assert.Equal(t, "192.168.1.10", id.IP())
	assert.Equal(t, "helpdesk-host", id.PCName())
}

func TestResolver_BareAndIPv6Addresses(t *testing.T) {
	r := NewResolver("pc")

	assert.Equal(t, "10.0.0.1", r.Resolve("10.0.0.1").IP())
	assert.Equal(t, "::1", r.Resolve("[::1]:8080").IP())
	assert.Equal(t, "::1", r.Resolve("::1").IP())
}

func TestResolver_SameCallerSameIdentity(t *testing.T) {
	r := NewResolver("pc")
	assert.True(t, r.Resolve("10.0.0.1:1000").Equals(r.Resolve("10.0.0.1:2000")))
	assert.False(t, r.Resolve("10.0.0.1:1000").Equals(r.Resolve("10.0.0.2:1000")))
}

func TestLookupProcessUser(t *testing.T) {
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}
	noOS := func() string { return "" }

	assert.Equal(t, "logname", lookupProcessUser(env(map[string]string{"LOGNAME": "logname", "USER": "user"}), noOS))
	assert.Equal(t, "user", lookupProcessUser(env(map[string]string{"USER": "user", "USERNAME": "win"}), noOS))
	assert.Equal(t, "win", lookupProcessUser(env(map[string]string{"USERNAME": "win"}), noOS))
	assert.Equal(t, "osuser", lookupProcessUser(env(nil), func() string { return "osuser" }))
	assert.Equal(t, "unknown", lookupProcessUser(env(nil), noOS))
}
