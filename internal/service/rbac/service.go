package rbac

import (
	"github.com/hms-backend/hms-api/internal/model"
	"github.com/hms-backend/hms-api/pkg/auth"
)

// Service answers authorization questions against the capability set a
// principal carries. It never consults the policy table at request
// time: the set frozen into the token at issuance is authoritative.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Authorize is a pure set-containment check: every required capability
// must be present in the principal's set. There is no implicit
// super-capability; "all" is just one more explicit entry where a role
// was granted it.
func (s *Service) Authorize(principal *auth.Principal, required ...model.Capability) bool {
	if principal == nil {
		return false
	}
	for _, req := range required {
		if !principal.HasCapability(req) {
			return false
		}
	}
	return true
}
