package taxonomy

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNoSkills         = errors.New("taxonomy has no skills")
	ErrDuplicateSkill   = errors.New("duplicate skill id")
	ErrInvalidSkill     = errors.New("invalid skill")
	ErrInvalidThreshold = errors.New("invalid fuzzy threshold")
	ErrLoadTaxonomy     = errors.New("load taxonomy failed")
)
