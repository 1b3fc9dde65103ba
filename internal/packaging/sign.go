package packaging

import (
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"

	"github.com/lowip/swift-create-xcframework/internal/paths"
)

// Writes an armored detached GPG signature for the checksum file.
//
// The key file must hold an armored private key without a passphrase;
// unattended release pipelines are the only intended signer. The signature
// is written to "<path>.asc".
func Sign(path, keyPath string) (string, error) {
	keyFile, err := os.Open(keyPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPackaging, err)
	}
	defer keyFile.Close()

	entities, err := openpgp.ReadArmoredKeyRing(keyFile)
	if err != nil {
		return "", fmt.Errorf("%w: reading signing key: %w", ErrPackaging, err)
	}

	signer, err := signingEntity(entities)
	if err != nil {
		return "", err
	}

	message, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPackaging, err)
	}
	defer message.Close()

	sigPath := path + ".asc"
	out, err := os.OpenFile(sigPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, paths.DefaultFileMode)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPackaging, err)
	}
	defer out.Close()

	if err := openpgp.ArmoredDetachSign(out, signer, message, nil); err != nil {
		return "", fmt.Errorf("%w: signing %s: %w", ErrPackaging, path, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrPackaging, err)
	}

	return sigPath, nil
}

// Picks the first entity usable for signing.
func signingEntity(entities openpgp.EntityList) (*openpgp.Entity, error) {
	for _, entity := range entities {
		if entity.PrivateKey == nil {
			continue
		}
		if entity.PrivateKey.Encrypted {
			return nil, fmt.Errorf("%w: signing key is passphrase-protected", ErrPackaging)
		}
		return entity, nil
	}
	return nil, fmt.Errorf("%w: no private key in keyring", ErrPackaging)
}
