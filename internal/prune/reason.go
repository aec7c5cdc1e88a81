package prune

import "github.com/carlhashmi/translations-manager/internal/diagnostic"

// Reason says why a key was removed.
type Reason int

const (
	ReasonAlive Reason = iota
	ReasonEmptyGroup
	ReasonEmptyValue
	ReasonDanglingAlias
)

// Code returns the diagnostic code recorded for the reason.
func (r Reason) Code() string {
	switch r {
	case ReasonEmptyGroup:
		return diagnostic.CodeEmptyGroup
	case ReasonEmptyValue:
		return diagnostic.CodeEmptyValue
	case ReasonDanglingAlias:
		return diagnostic.CodeDanglingAlias
	default:
		return ""
	}
}

// String returns a human-readable description.
func (r Reason) String() string {
	switch r {
	case ReasonAlive:
		return "alive"
	case ReasonEmptyGroup:
		return "group has no translations left"
	case ReasonEmptyValue:
		return "empty translation"
	case ReasonDanglingAlias:
		return "reference to a removed anchor"
	default:
		return "unknown"
	}
}
