package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrNetworkMismatch is returned when the node reports a different chain than configured
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrNetworkNotConfigured is returned when no network has been selected or it is unknown
	ErrNetworkNotConfigured = errors.New("network not configured")

	// ErrContractNotFound is returned when a compiled artifact can't be found
	ErrContractNotFound = errors.New("contract not found")

	// ErrArgumentMismatch is returned when args don't match the target ABI signature
	ErrArgumentMismatch = errors.New("argument mismatch")

	// ErrAccountNotFound is returned when a named account isn't configured
	ErrAccountNotFound = errors.New("named account not found")

	// ErrTransactionReverted is returned when a mined transaction has a failed status
	ErrTransactionReverted = errors.New("transaction reverted")

	// ErrVerificationFailed is returned when contract verification fails
	ErrVerificationFailed = errors.New("verification failed")

	// ErrUnknownTag is returned when no deploy script carries a requested tag
	ErrUnknownTag = errors.New("unknown tag")
)

// UnknownTagErr reports a tag no script carries, with close matches if any.
type UnknownTagErr struct {
	Tag         string
	Suggestions []string
}

func (e UnknownTagErr) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("no deploy script is tagged %q", e.Tag)
	}
	return fmt.Sprintf("no deploy script is tagged %q (did you mean: %s?)", e.Tag, strings.Join(e.Suggestions, ", "))
}

func (e UnknownTagErr) Unwrap() error {
	return ErrUnknownTag
}

// ScriptErr wraps the failure of a single deploy script.
type ScriptErr struct {
	ScriptID string
	Err      error
}

func (e ScriptErr) Error() string {
	return fmt.Sprintf("deploy script %s failed: %v", e.ScriptID, e.Err)
}

func (e ScriptErr) Unwrap() error {
	return e.Err
}
