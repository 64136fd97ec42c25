package valueobjects

import "strings"

// UnknownPCName is used when the machine name cannot be determined.
const UnknownPCName = "unknown"

// OwnerIdentity is the (IP address, machine name) pair that stands in for a
// user account. Two identities are the same caller only when both parts match.
type OwnerIdentity struct {
	ip     string
	pcName string
}

func NewOwnerIdentity(ip, pcName string) OwnerIdentity {
	pcName = strings.TrimSpace(pcName)
	if pcName == "" {
		pcName = UnknownPCName
	}
	return OwnerIdentity{
		ip:     strings.TrimSpace(ip),
		pcName: pcName,
	}
}

func (o OwnerIdentity) IP() string {
	return o.ip
}

func (o OwnerIdentity) PCName() string {
	return o.pcName
}

func (o OwnerIdentity) Equals(other OwnerIdentity) bool {
	return o.ip == other.ip && o.pcName == other.pcName
}

func (o OwnerIdentity) String() string {
	return o.pcName + "@" + o.ip
}
