package ir

import "fmt"

// DomainOperation prefixes every operation key.
// The version suffix lets the key format change without colliding with
// keys produced by an older build.
const DomainOperation = "tally/op/v1"

// OperationKey returns the identity of one evaluation: the operation and
// its normalized operands, in order.
//
// Format: domain + 0x00 + canonical JSON {"args":[...],"op":"..."}.
// The null byte separates domain from data so no operand text can forge a
// different domain. Two calls return equal keys exactly when a correct
// engine must return equal results for them.
func OperationKey(op Op, args ...Int) ([]byte, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("OperationKey: unknown operation %q", op)
	}
	canonical, err := MarshalCanonical(map[string]any{
		"op":   op,
		"args": args,
	})
	if err != nil {
		return nil, fmt.Errorf("OperationKey: failed to marshal: %w", err)
	}
	key := make([]byte, 0, len(DomainOperation)+1+len(canonical))
	key = append(key, DomainOperation...)
	key = append(key, 0x00)
	key = append(key, canonical...)
	return key, nil
}

// MustOperationKey is like OperationKey but panics on error.
// Use only in tests or when op is known to be valid.
func MustOperationKey(op Op, args ...Int) []byte {
	key, err := OperationKey(op, args...)
	if err != nil {
		panic(err)
	}
	return key
}
