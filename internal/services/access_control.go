package services

import (
	"github.com/babylonlabs-io/payment-service/internal/ledger"
	"github.com/babylonlabs-io/payment-service/internal/types"
	"github.com/babylonlabs-io/payment-service/pkg"
)

func validateIdentity(identity string) error {
	return pkg.ValidateAddress(identity)
}

// IsAdministrator reports whether caller is the administrator of the loaded ledger.
func (s *Service) IsAdministrator(caller string) bool {
	state := s.state.Load()
	return state != nil && state.IsAdministrator(caller)
}

func requireAdministrator(state *ledger.State, caller, operation string) *types.Error {
	if !state.IsAdministrator(caller) {
		return types.NewUnauthorizedError(caller, operation)
	}
	return nil
}
