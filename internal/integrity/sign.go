package integrity

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"

	"github.com/simplybusiness/kiln-release/internal/log"
)

// SignatureSuffix is appended to a hash file name to name its signature.
const SignatureSuffix = ".sig"

// PassphraseFunc supplies the passphrase for an encrypted key. It is called
// at most once per resolution.
type PassphraseFunc func(keyID string) ([]byte, error)

// Identity is a resolved signing key ready for use.
type Identity struct {
	KeyID  string
	Entity *openpgp.Entity
}

// Keyring holds OpenPGP keys read from an armored or binary keyring.
type Keyring struct {
	entities openpgp.EntityList
}

// LoadKeyring reads the keyring file at path.
func LoadKeyring(path string) (*Keyring, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keyring: %w", err)
	}
	return ParseKeyring(bytes.NewReader(data))
}

// ParseKeyring reads an armored keyring, falling back to the binary format.
func ParseKeyring(r io.Reader) (*Keyring, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	entities, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		entities, err = openpgp.ReadKeyRing(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parsing keyring: %w", err)
		}
	}
	return &Keyring{entities: entities}, nil
}

// Entities returns the keys in the keyring.
func (k *Keyring) Entities() openpgp.EntityList { return k.entities }

// ResolveIdentity finds the key whose fingerprint ends with keyID, as git's
// user.signingkey names it, and decrypts it with the passphrase if needed.
func (k *Keyring) ResolveIdentity(keyID string, passphrase PassphraseFunc) (*Identity, error) {
	want := normalizeKeyID(keyID)
	if want == "" {
		return nil, &SigningError{KeyID: keyID, Reason: "empty key id", Err: ErrKeyNotFound}
	}

	entity := k.find(want)
	if entity == nil {
		return nil, &SigningError{KeyID: keyID, Reason: "not in keyring", Err: ErrKeyNotFound}
	}
	if entity.PrivateKey == nil {
		return nil, &SigningError{KeyID: keyID, Reason: "public key only", Err: ErrNoSecretKey}
	}

	if encrypted(entity) {
		if passphrase == nil {
			return nil, &SigningError{KeyID: keyID, Reason: "key is encrypted and no passphrase source is available", Err: ErrPassphraseRejected}
		}
		pass, err := passphrase(keyID)
		if err != nil {
			return nil, &SigningError{KeyID: keyID, Reason: "reading passphrase", Err: err}
		}
		if err := decrypt(entity, pass); err != nil {
			return nil, &SigningError{KeyID: keyID, Reason: "decrypting key", Err: fmt.Errorf("%w: %w", ErrPassphraseRejected, err)}
		}
	}

	log.Debug(log.CatSign, "Resolved signing identity", "key_id", entity.PrimaryKey.KeyIdString())
	return &Identity{KeyID: keyID, Entity: entity}, nil
}

func (k *Keyring) find(want string) *openpgp.Entity {
	for _, e := range k.entities {
		if matchesKey(e.PrimaryKey, want) {
			return e
		}
		for _, sub := range e.Subkeys {
			if matchesKey(sub.PublicKey, want) {
				return e
			}
		}
	}
	return nil
}

func matchesKey(pk *packet.PublicKey, want string) bool {
	if pk == nil {
		return false
	}
	fp := strings.ToUpper(hex.EncodeToString(pk.Fingerprint))
	return strings.HasSuffix(fp, want)
}

// normalizeKeyID strips "0x", the "!" exact-subkey marker and spaces.
func normalizeKeyID(id string) string {
	id = strings.TrimSpace(id)
	id = strings.TrimPrefix(strings.TrimPrefix(id, "0x"), "0X")
	id = strings.TrimSuffix(id, "!")
	return strings.ToUpper(strings.ReplaceAll(id, " ", ""))
}

func encrypted(e *openpgp.Entity) bool {
	if e.PrivateKey != nil && e.PrivateKey.Encrypted {
		return true
	}
	for _, sub := range e.Subkeys {
		if sub.PrivateKey != nil && sub.PrivateKey.Encrypted {
			return true
		}
	}
	return false
}

func decrypt(e *openpgp.Entity, pass []byte) error {
	if e.PrivateKey != nil && e.PrivateKey.Encrypted {
		if err := e.PrivateKey.Decrypt(pass); err != nil {
			return err
		}
	}
	for _, sub := range e.Subkeys {
		if sub.PrivateKey != nil && sub.PrivateKey.Encrypted {
			if err := sub.PrivateKey.Decrypt(pass); err != nil {
				return err
			}
		}
	}
	return nil
}

// SignDetached returns an armored detached signature over data.
func SignDetached(data io.Reader, id *Identity) ([]byte, error) {
	var buf bytes.Buffer
	if err := openpgp.ArmoredDetachSign(&buf, id.Entity, data, nil); err != nil {
		return nil, &SigningError{KeyID: id.KeyID, Reason: "producing signature", Err: err}
	}
	return buf.Bytes(), nil
}

// SignFile writes an armored detached signature for the file at path to
// path+SignatureSuffix and returns the signature path. The signature file
// must not already exist.
func SignFile(path string, id *Identity) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &SigningError{KeyID: id.KeyID, Reason: "opening " + path, Err: err}
	}
	defer func() { _ = f.Close() }()

	sig, err := SignDetached(f, id)
	if err != nil {
		return "", err
	}

	sigPath := path + SignatureSuffix
	out, err := os.OpenFile(sigPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			err = fmt.Errorf("%s: %w", sigPath, ErrArtifactExists)
		}
		return "", &SigningError{KeyID: id.KeyID, Reason: "writing signature", Err: err}
	}
	if _, err := out.Write(sig); err != nil {
		_ = out.Close()
		return "", &SigningError{KeyID: id.KeyID, Reason: "writing signature", Err: err}
	}
	if err := out.Close(); err != nil {
		return "", &SigningError{KeyID: id.KeyID, Reason: "writing signature", Err: err}
	}
	log.Info(log.CatSign, "Signed", "file", path, "signature", sigPath)
	return sigPath, nil
}

// VerifySignature checks an armored detached signature over the file at
// signedPath and returns the signing key.
func (k *Keyring) VerifySignature(signedPath, sigPath string) (*openpgp.Entity, error) {
	signed, err := os.Open(signedPath)
	if err != nil {
		return nil, &VerificationError{Path: signedPath, Reason: "opening", Err: err}
	}
	defer func() { _ = signed.Close() }()
	sig, err := os.Open(sigPath)
	if err != nil {
		return nil, &VerificationError{Path: sigPath, Reason: "opening", Err: err}
	}
	defer func() { _ = sig.Close() }()

	signer, err := openpgp.CheckArmoredDetachedSignature(k.entities, signed, sig, nil)
	if err != nil {
		return nil, &VerificationError{Path: signedPath, Reason: "bad signature", Err: err}
	}
	return signer, nil
}

// VerifyArtifact performs the two-step check: the signature over the hash
// file, then the artifact's digest against the hash file entry.
func (k *Keyring) VerifyArtifact(artifactPath, hashfilePath, sigPath string) (*openpgp.Entity, error) {
	signer, err := k.VerifySignature(hashfilePath, sigPath)
	if err != nil {
		return nil, err
	}
	want, _, err := ReadHashfile(hashfilePath)
	if err != nil {
		return nil, err
	}
	got, err := Digest(artifactPath)
	if err != nil {
		return nil, &VerificationError{Path: artifactPath, Reason: "hashing", Err: err}
	}
	if got != want {
		return nil, &VerificationError{Path: artifactPath, Reason: fmt.Sprintf("digest %s does not match hash file entry %s", got, want)}
	}
	return signer, nil
}

// ArmorPublicKey renders the public half of an entity as an armored block.
func ArmorPublicKey(e *openpgp.Entity) ([]byte, error) {
	var buf bytes.Buffer
	w, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
	if err != nil {
		return nil, err
	}
	if err := e.Serialize(w); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
