package entitlement

import "errors"

var (
	ErrInvalidCatalog    = errors.New("invalid plan catalog configuration")
	ErrPlanNotInCatalog  = errors.New("plan key not present in catalog")
	ErrFailedToLoadPlans = errors.New("failed to load plan catalog")
	ErrUserNotFound      = errors.New("user not found")
	ErrNoUserDirectory   = errors.New("no user directory configured to resolve identity")
	ErrMissingUserID     = errors.New("user ID is required")
	ErrContractBelowBase = errors.New("contract limits fall below its base plan defaults")
	ErrRepositoryFailure = errors.New("membership repository operation failed")
)
