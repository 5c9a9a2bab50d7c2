// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted digest from a plaintext password. The salt is
	// fresh per call, so hashing the same password twice yields different
	// digests. The cost factor and salt are embedded in the digest itself.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a digest. A mismatch is not
	// an error: it returns (false, nil). A non-nil error means the digest
	// itself is malformed, which callers should treat as an internal fault.
	Check(password, digest string) (bool, error)
}
