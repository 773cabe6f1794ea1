// Package integrity computes artifact digests, writes hash files and produces
// and checks detached OpenPGP signatures over them.
package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// BufferSize is the fixed read size used when hashing, so memory stays
// bounded for arbitrarily large artifacts.
const BufferSize = 128 * 1024

// HashfileSuffix is appended to an artifact name to name its hash file.
const HashfileSuffix = ".sha256"

// Digest returns the hex SHA-256 of the file at path, read in BufferSize chunks.
func Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	return DigestReader(f)
}

// DigestReader hashes r in BufferSize chunks.
func DigestReader(r io.Reader) (string, error) {
	h := sha256.New()
	buf := make([]byte, BufferSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// WriteHashfile writes "<hash> <name>" with no trailing newline. The file
// must not already exist.
func WriteHashfile(path, hash, name string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s: %w", path, ErrArtifactExists)
		}
		return err
	}
	if _, err := fmt.Fprintf(f, "%s %s", hash, name); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadHashfile parses a hash file. A trailing newline is tolerated.
func ReadHashfile(path string) (hash, name string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	line := strings.TrimRight(string(data), "\r\n")
	hash, name, ok := strings.Cut(line, " ")
	if !ok || name == "" || strings.ContainsAny(line, "\n") {
		return "", "", &VerificationError{Path: path, Reason: "not a single \"<hash> <name>\" line"}
	}
	if b, err := hex.DecodeString(hash); err != nil || len(b) != sha256.Size {
		return "", "", &VerificationError{Path: path, Reason: "hash is not a hex sha256"}
	}
	return strings.ToLower(hash), name, nil
}
