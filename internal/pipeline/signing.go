package pipeline

import (
	"context"

	"github.com/simplybusiness/kiln-release/internal/config"
	"github.com/simplybusiness/kiln-release/internal/integrity"
)

// KeyringSigner resolves identities from the configured keyring file, or
// from the local gpg installation when none is configured.
func KeyringSigner(cfg config.SigningConfig) SignerFunc {
	return func(ctx context.Context, keyID string, passphrase integrity.PassphraseFunc) (*integrity.Identity, error) {
		var (
			keyring *integrity.Keyring
			err     error
		)
		if cfg.Keyring != "" {
			keyring, err = integrity.LoadKeyring(cfg.Keyring)
			if err != nil {
				return nil, &integrity.SigningError{KeyID: keyID, Reason: "loading keyring " + cfg.Keyring, Err: err}
			}
		} else {
			gpg := cfg.GPG
			if gpg == "" {
				gpg = "gpg"
			}
			if keyring, err = integrity.ExportSecretKey(ctx, gpg, keyID); err != nil {
				return nil, err
			}
		}
		return keyring.ResolveIdentity(keyID, passphrase)
	}
}
