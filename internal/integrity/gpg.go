package integrity

import (
	"bytes"
	"context"
	"os"
	"os/exec"
)

// ExportSecretKey asks the local gpg installation for the armored secret key
// keyID and parses it into a Keyring. gpg's own prompts go to the terminal.
func ExportSecretKey(ctx context.Context, gpgBin, keyID string) (*Keyring, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, gpgBin, "--armor", "--export-secret-keys", keyID)
	cmd.Env = os.Environ()
	cmd.Stdin = os.Stdin
	cmd.Stderr = os.Stderr
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, &SigningError{KeyID: keyID, Reason: "exporting secret key with " + gpgBin, Err: err}
	}
	if out.Len() == 0 {
		return nil, &SigningError{KeyID: keyID, Reason: "gpg exported nothing", Err: ErrKeyNotFound}
	}
	k, err := ParseKeyring(&out)
	if err != nil {
		return nil, &SigningError{KeyID: keyID, Reason: "parsing exported key", Err: err}
	}
	return k, nil
}
