package wallet

import (
	"encoding/hex"
	"encoding/json"
	"errors"
)

var (
	// ErrEmptyInputs ...
	ErrEmptyInputs = errors.New("input list must not be empty")
	// ErrEmptyOutputs ...
	ErrEmptyOutputs = errors.New("output list must not be empty")
	// ErrNullSignature ...
	ErrNullSignature = errors.New("signature must not be null")
)

// TxInput references a note being spent.
type TxInput struct {
	TxID  string `json:"txid"`
	Index uint32 `json:"index"`
	Value uint64 `json:"value"`
	Owner string `json:"owner"`
}

// TxOutput pays an amount of nicks to a PKH address.
type TxOutput struct {
	Address string `json:"address"`
	Value   uint64 `json:"value"`
}

// TxSkeleton is the unsigned shape of a transaction: the notes it consumes
// and the outputs it creates. The fee is implicit, inputs - outputs.
type TxSkeleton struct {
	Inputs  []TxInput  `json:"inputs"`
	Outputs []TxOutput `json:"outputs"`
}

func (t *TxSkeleton) validate() error {
	if len(t.Inputs) <= 0 {
		return ErrEmptyInputs
	}
	if len(t.Outputs) <= 0 {
		return ErrEmptyOutputs
	}
	return nil
}

// Serialize returns the canonical byte encoding of the skeleton
func (t *TxSkeleton) Serialize() ([]byte, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}
	return json.Marshal(t)
}

// Digest returns the double SHA256 hash of the serialized skeleton, the
// message actually signed
func (t *TxSkeleton) Digest() ([]byte, error) {
	buf, err := t.Serialize()
	if err != nil {
		return nil, err
	}
	return HashForSigning(buf), nil
}

// SignedTx is a skeleton along with the DER signature and the compressed
// public key of the signing account.
type SignedTx struct {
	Skeleton  TxSkeleton `json:"skeleton"`
	PubKey    []byte     `json:"pubkey"`
	Signature []byte     `json:"signature"`
}

// Hex returns the serialized signed transaction in hex format, ready to be
// broadcast
func (s *SignedTx) Hex() (string, error) {
	if err := s.Skeleton.validate(); err != nil {
		return "", err
	}
	if len(s.Signature) <= 0 {
		return "", ErrNullSignature
	}
	buf, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
