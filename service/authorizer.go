package service

// Capability identifies a privileged operation
type Capability string

const (
	CapabilityMintFunds       Capability = "mint_funds"
	CapabilityConfiscateFunds Capability = "confiscate_funds"
)

// Authorizer decides whether a user may exercise a capability
type Authorizer interface {
	Authorize(userID string, capability Capability) bool
}

// ownerAuthorizer grants every capability to the single configured owner.
// Kept behind the Authorizer interface so the authorization point stays
// separable from the business rules if roles ever grow beyond "owner".
type ownerAuthorizer struct {
	ownerID string
}

// NewOwnerAuthorizer creates an authorizer that grants all capabilities to
// the given owner ID and nothing to anyone else
func NewOwnerAuthorizer(ownerID string) Authorizer {
	return &ownerAuthorizer{ownerID: ownerID}
}

func (a *ownerAuthorizer) Authorize(userID string, _ Capability) bool {
	return userID != "" && userID == a.ownerID
}
