package approval

import "github.com/loomhr/workforce-backend-go/internal/domain/user"

// Policy declares, once per request kind, how that kind moves through the
// workflow. Handlers and the workflow consult this table instead of
// re-implementing role checks per endpoint.
type Policy struct {
	// RequiredRole is the minimum privilege needed to decide the request.
	RequiredRole user.Role

	// DecidableFrom is the only status a decision may transition away from.
	DecidableFrom Status

	// AllowReject is false for kinds with no rejection path.
	AllowReject bool
}

// Policies is the closed table of request kinds.
var Policies = map[Kind]Policy{
	KindLeave:    {RequiredRole: user.RoleManager, DecidableFrom: StatusPending, AllowReject: true},
	KindPurchase: {RequiredRole: user.RoleManager, DecidableFrom: StatusPending, AllowReject: true},
	KindPayroll:  {RequiredRole: user.RoleOwner, DecidableFrom: StatusDraft, AllowReject: false},
}

// PolicyFor returns the policy for kind, or ErrUnknownKind.
func PolicyFor(kind Kind) (Policy, error) {
	policy, ok := Policies[kind]
	if !ok {
		return Policy{}, ErrUnknownKind
	}
	return policy, nil
}
