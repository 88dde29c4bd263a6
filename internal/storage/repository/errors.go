package repository

import "errors"

// Domain errors surfaced by the storage operations. Handlers match these
// with errors.Is; anything else is treated as a store failure.
var (
	// ErrPlanNotFound - the requested plan id does not exist.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrMemberNotFound - no user exists for the given email.
	ErrMemberNotFound = errors.New("member not found")
	// ErrDuplicateActiveMembership - the user already holds a membership
	// whose end date is null or in the future.
	ErrDuplicateActiveMembership = errors.New("member already has an active membership")
	// ErrMembershipNotActive - the user's latest membership is missing or
	// expired, so attendance cannot be marked.
	ErrMembershipNotActive = errors.New("member does not have an active membership")
)
