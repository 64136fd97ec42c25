// Package identity derives the owner identity of an inbound request.
package identity

import (
	"net"
	"os"
	"os/user"
	"strings"

	vo "github.com/helpdesk-inc/helpdesk/internal/domain/ticket/valueobjects"
)

// usernameEnvVars are consulted in order before asking the OS account database.
var usernameEnvVars = []string{"LOGNAME", "USER", "LNAME", "USERNAME"}

// Resolver pairs the caller's address with a machine name. The machine name
// is the OS account of the server process, resolved once; every caller of
// one deployment therefore shares it and IP is the effective discriminator.
type Resolver struct {
	pcName string
}

// NewResolver resolves the machine name now. A non-empty override wins.
func NewResolver(pcNameOverride string) *Resolver {
	name := strings.TrimSpace(pcNameOverride)
	if name == "" {
		name = lookupProcessUser(os.Getenv, currentOSUser)
	}
	return &Resolver{pcName: name}
}

// Resolve never fails. remoteAddr may be a bare IP or host:port.
func (r *Resolver) Resolve(remoteAddr string) vo.OwnerIdentity {
	return vo.NewOwnerIdentity(hostOnly(remoteAddr), r.pcName)
}

func hostOnly(addr string) string {
	addr = strings.TrimSpace(addr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

func currentOSUser() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}
	return u.Username
}

func lookupProcessUser(getenv func(string) string, osUser func() string) string {
	for _, key := range usernameEnvVars {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
	}
	if v := strings.TrimSpace(osUser()); v != "" {
		return v
	}
	return vo.UnknownPCName
}
