package transport

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/nacl/box"
)

// Seal encrypts payload for recipientPubkey using senderPrivkey, per
// spec.md §4.12's "per-recipient authenticated scheme; the engine does not
// parse keys beyond opaque byte arrays" — NaCl box gives exactly that: the
// engine never inspects the key material's structure, only treats it as a
// [32]byte handle.
func Seal(payload []byte, recipientPubkey, senderPrivkey *[32]byte) ([]byte, error) {
	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("transport: generate nonce: %w", err)
	}
	sealed := box.Seal(nonce[:], payload, &nonce, recipientPubkey, senderPrivkey)
	return sealed, nil
}

// Open decrypts a payload Sealed by the matching sender/recipient keypair.
func Open(sealed []byte, senderPubkey, recipientPrivkey *[32]byte) ([]byte, error) {
	if len(sealed) < 24 {
		return nil, fmt.Errorf("transport: sealed payload too short")
	}
	var nonce [24]byte
	copy(nonce[:], sealed[:24])
	out, ok := box.Open(nil, sealed[24:], &nonce, senderPubkey, recipientPrivkey)
	if !ok {
		return nil, fmt.Errorf("transport: decryption failed (forged or corrupt payload)")
	}
	return out, nil
}

// GenerateKeypair returns a fresh NaCl box keypair for a new slot's pubkey
// assignment (host-side seat provisioning, not used by the engine itself).
func GenerateKeypair() (pub, priv *[32]byte, err error) {
	return box.GenerateKey(rand.Reader)
}
