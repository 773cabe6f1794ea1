package integrity

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyNotFound indicates no key in the keyring matches the signing key id.
	ErrKeyNotFound = errors.New("signing key not found")

	// ErrNoSecretKey indicates the key was found but has no private part.
	ErrNoSecretKey = errors.New("no secret key material")

	// ErrPassphraseRejected indicates the passphrase did not decrypt the key.
	ErrPassphraseRejected = errors.New("passphrase rejected")

	// ErrArtifactExists indicates an artifact from an earlier run is in the way.
	ErrArtifactExists = errors.New("artifact already exists")
)

// SigningError is fatal for the run and blocks publishing.
type SigningError struct {
	KeyID  string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *SigningError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("signing with key %s: %s", e.KeyID, e.Reason)
	}
	return fmt.Sprintf("signing with key %s: %s: %v", e.KeyID, e.Reason, e.Err)
}

// Unwrap returns the underlying error.
func (e *SigningError) Unwrap() error { return e.Err }

// VerificationError reports a signature or digest that does not check out.
type VerificationError struct {
	Path   string
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *VerificationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("verifying %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("verifying %s: %s: %v", e.Path, e.Reason, e.Err)
}

// Unwrap returns the underlying error.
func (e *VerificationError) Unwrap() error { return e.Err }
