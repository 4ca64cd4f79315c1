package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"

	"golang.org/x/crypto/scrypt"
)

const (
	// EncryptedBlobVersion is the version written in every envelope produced
	// by Encrypt. Bump it whenever the envelope layout changes.
	EncryptedBlobVersion = 1

	defaultScryptN = 1 << 18
	defaultScryptR = 8
	defaultScryptP = 1
	keyLen         = 32
	saltLen        = 32
)

// KdfParams are the scrypt parameters used to stretch a passphrase into the
// symmetric key. They are persisted next to the cipher text so that they can
// evolve without breaking vaults encrypted with older defaults.
type KdfParams struct {
	N    int    `json:"n"`
	R    int    `json:"r"`
	P    int    `json:"p"`
	Salt []byte `json:"salt"`
}

func (p KdfParams) validate() error {
	if p.N <= 1 || p.R <= 0 || p.P <= 0 || len(p.Salt) <= 0 {
		return ErrInvalidKdfParams
	}
	return nil
}

// EncryptedBlob is the envelope persisted for any encrypted secret. The KDF
// parameters travel with the cipher text, the plain text never does.
type EncryptedBlob struct {
	Version    int       `json:"version"`
	Kdf        KdfParams `json:"kdf"`
	Nonce      []byte    `json:"nonce"`
	CipherText []byte    `json:"ciphertext"`
}

// DefaultKdfParams returns the current scrypt defaults with no salt set; a
// salt is generated on first key derivation.
func DefaultKdfParams() KdfParams {
	return KdfParams{N: defaultScryptN, R: defaultScryptR, P: defaultScryptP}
}

// EncryptOpts is the struct given to the Encrypt method
type EncryptOpts struct {
	PlainText  string
	Passphrase string
}

func (o EncryptOpts) validate() error {
	if len(o.PlainText) <= 0 {
		return ErrNullPlainText
	}
	if len(o.Passphrase) <= 0 {
		return ErrNullPassphrase
	}
	return nil
}

// Encrypt encrypts the plain text with AES-256-GCM under a key stretched from
// the passphrase with scrypt, and returns the serialized envelope.
func Encrypt(opts EncryptOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	params := KdfParams{N: defaultScryptN, R: defaultScryptR, P: defaultScryptP}
	key, err := DeriveKey([]byte(opts.Passphrase), &params)
	if err != nil {
		return "", err
	}
	return EncryptWithKey(key, params, opts.PlainText)
}

// DecryptOpts is the struct given to the Decrypt method
type DecryptOpts struct {
	CypherText string
	Passphrase string
}

func (o DecryptOpts) validate() error {
	if len(o.CypherText) <= 0 {
		return ErrNullCypherText
	}
	if len(o.Passphrase) <= 0 {
		return ErrNullPassphrase
	}
	return nil
}

// Decrypt decrypts an envelope produced by Encrypt with the provided
// passphrase. It fails closed with ErrInvalidPassphrase whenever the GCM tag
// check fails, nothing of the plain text is ever returned on failure.
func Decrypt(opts DecryptOpts) (string, error) {
	plainText, _, _, err := DecryptWithDetails(opts)
	return plainText, err
}

// EncryptWithKey seals the plain text under an already derived key. The KDF
// params the key was derived with must be provided so that the envelope stays
// decryptable from the passphrase alone. Used to re-encrypt the vault payload
// on account mutations without asking the passphrase again.
func EncryptWithKey(key []byte, kdf KdfParams, plainText string) (string, error) {
	if len(plainText) <= 0 {
		return "", ErrNullPlainText
	}
	if err := kdf.validate(); err != nil {
		return "", err
	}

	blockCipher, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(blockCipher)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	blob := EncryptedBlob{
		Version:    EncryptedBlobVersion,
		Kdf:        kdf,
		Nonce:      nonce,
		CipherText: gcm.Seal(nil, nonce, []byte(plainText), nil),
	}
	buf, err := json.Marshal(blob)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// DecryptWithDetails behaves like Decrypt and additionally returns the
// derived key and the KDF params of the envelope, letting the caller cache
// them for later EncryptWithKey calls.
func DecryptWithDetails(opts DecryptOpts) (string, []byte, KdfParams, error) {
	if err := opts.validate(); err != nil {
		return "", nil, KdfParams{}, err
	}

	var blob EncryptedBlob
	if err := json.Unmarshal([]byte(opts.CypherText), &blob); err != nil {
		return "", nil, KdfParams{}, ErrInvalidCypherText
	}
	if blob.Version != EncryptedBlobVersion {
		return "", nil, KdfParams{}, ErrUnsupportedBlobVersion
	}
	if err := blob.Kdf.validate(); err != nil {
		return "", nil, KdfParams{}, err
	}

	key, err := DeriveKey([]byte(opts.Passphrase), &blob.Kdf)
	if err != nil {
		return "", nil, KdfParams{}, err
	}

	blockCipher, err := aes.NewCipher(key)
	if err != nil {
		return "", nil, KdfParams{}, err
	}
	gcm, err := cipher.NewGCM(blockCipher)
	if err != nil {
		return "", nil, KdfParams{}, err
	}
	if len(blob.Nonce) != gcm.NonceSize() {
		return "", nil, KdfParams{}, ErrInvalidCypherText
	}
	plainText, err := gcm.Open(nil, blob.Nonce, blob.CipherText, nil)
	if err != nil {
		return "", nil, KdfParams{}, ErrInvalidPassphrase
	}
	return string(plainText), key, blob.Kdf, nil
}

// DeriveKey derives a 32 byte key from a passphrase with scrypt. A random
// salt is generated and stored back into params when it carries none.
func DeriveKey(passphrase []byte, params *KdfParams) ([]byte, error) {
	if len(passphrase) <= 0 {
		return nil, ErrNullPassphrase
	}
	if params.Salt == nil {
		salt := make([]byte, saltLen)
		if _, err := rand.Read(salt); err != nil {
			return nil, err
		}
		params.Salt = salt
	}
	if err := params.validate(); err != nil {
		return nil, err
	}
	return scrypt.Key(passphrase, params.Salt, params.N, params.R, params.P, keyLen)
}
