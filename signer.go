package btcsign

import (
	"crypto/rand"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/txscript"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// AuxRandSource supplies the BIP-340 auxiliary randomness mixed into every
// Schnorr nonce.
type AuxRandSource interface {
	AuxRand() ([32]byte, error)
}

// CryptoAuxRand draws auxiliary randomness from the operating system CSPRNG.
type CryptoAuxRand struct{}

// AuxRand returns 32 fresh random bytes.
func (CryptoAuxRand) AuxRand() ([32]byte, error) {
	var aux [32]byte
	if _, err := rand.Read(aux[:]); err != nil {
		return aux, err
	}
	return aux, nil
}

// ZeroAuxRand always returns zero auxiliary randomness, which makes Schnorr
// signatures reproducible. It must only be used for tests.
type ZeroAuxRand struct{}

// AuxRand returns 32 zero bytes.
func (ZeroAuxRand) AuxRand() ([32]byte, error) {
	return [32]byte{}, nil
}

// parsePrivateKey validates key as a non-zero scalar below the group order.
func parsePrivateKey(key []byte) (*btcec.PrivateKey, error) {
	if len(key) == 0 {
		return nil, newError(ErrorCodeMissingField, "missing private key")
	}
	if len(key) != btcec.PrivKeyBytesLen {
		return nil, newError(ErrorCodeInvalidKey,
			"private key must be %d bytes, got %d",
			btcec.PrivKeyBytesLen, len(key))
	}

	var scalar secp256k1.ModNScalar
	defer scalar.Zero()

	overflow := scalar.SetByteSlice(key)
	if overflow || scalar.IsZero() {
		return nil, newError(ErrorCodeInvalidKey,
			"private key is not a valid scalar")
	}
	return secp256k1.NewPrivateKey(&scalar), nil
}

// keySigner signs sighashes with a single private key.
type keySigner struct {
	privKey *btcec.PrivateKey
	auxRand AuxRandSource
}

// sign produces one signature per sighash, with the sighash type appended
// where the input's script expects it.
func (s *keySigner) sign(hashes []Sighash) ([][]byte, error) {
	sigs := make([][]byte, 0, len(hashes))
	for i, hash := range hashes {
		sig, err := s.signOne(hash)
		if err != nil {
			return nil, fmt.Errorf("sighash %d: %w", i, err)
		}
		sigs = append(sigs, sig)
	}
	return sigs, nil
}

func (s *keySigner) signOne(hash Sighash) ([]byte, error) {
	switch hash.SigningMethod {
	case Legacy, Segwit:
		sig := ecdsa.Sign(s.privKey, hash.Sighash)
		return append(sig.Serialize(), byte(hash.SighashType)), nil

	case Taproot:
		// Script-path spends sign with the untweaked key, the control
		// block carries the commitment to the tree.
		if len(hash.LeafHash) != 0 {
			return s.signSchnorr(s.privKey, hash)
		}

		tweaked := txscript.TweakTaprootPrivKey(*s.privKey, []byte{})
		defer tweaked.Zero()

		return s.signSchnorr(tweaked, hash)

	default:
		return nil, newError(ErrorCodeUnsupportedVariant,
			"unknown sighash method %d", hash.SigningMethod)
	}
}

func (s *keySigner) signSchnorr(key *btcec.PrivateKey,
	hash Sighash) ([]byte, error) {

	aux, err := s.auxRand.AuxRand()
	if err != nil {
		return nil, &Error{Code: ErrorCodeSigningFailure, Err: err}
	}

	sig, err := schnorr.Sign(key, hash.Sighash, schnorr.CustomNonce(aux))
	if err != nil {
		return nil, &Error{Code: ErrorCodeSigningFailure, Err: err}
	}

	return appendSighashType(sig.Serialize(), hash.SighashType), nil
}

// appendSighashType appends the sighash type to a Schnorr signature unless
// it is SIGHASH_DEFAULT.
func appendSighashType(sig []byte, hashType txscript.SigHashType) []byte {
	if hashType == txscript.SigHashDefault {
		return sig
	}
	return append(sig, byte(hashType))
}

// zero wipes the private key.
func (s *keySigner) zero() {
	if s.privKey != nil {
		s.privKey.Zero()
	}
}
