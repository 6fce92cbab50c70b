package btcsign

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// claim is the unlocking data of one input.
type claim struct {
	scriptSig []byte
	witness   wire.TxWitness
}

// buildClaims pairs every selected input with its signature and builds the
// script_sig and witness that spend it.
func buildClaims(utxos []UtxoInput, sigs [][]byte) ([]claim, error) {
	if len(sigs) != len(utxos) {
		return nil, newError(ErrorCodeSignatureCountMismatch,
			"%d signatures for %d selected inputs", len(sigs),
			len(utxos))
	}

	claims := make([]claim, 0, len(utxos))
	for i, utxo := range utxos {
		c, err := buildClaim(utxo, sigs[i])
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", utxo.Index, err)
		}
		claims = append(claims, c)
	}
	return claims, nil
}

func buildClaim(utxo UtxoInput, sig []byte) (claim, error) {
	switch v := utxo.variant.(type) {
	case P2PKH:
		if err := checkECDSASignature(sig); err != nil {
			return claim{}, err
		}
		key, err := claimKey(v.Key, false)
		if err != nil {
			return claim{}, err
		}
		scriptSig, err := txscript.NewScriptBuilder().
			AddData(sig).
			AddData(key).
			Script()
		if err != nil {
			return claim{}, &Error{Code: ErrorCodeInvalidScript, Err: err}
		}
		return claim{scriptSig: scriptSig}, nil

	case P2WPKH:
		if err := checkECDSASignature(sig); err != nil {
			return claim{}, err
		}
		key, err := claimKey(v.Key, true)
		if err != nil {
			return claim{}, err
		}
		return claim{witness: wire.TxWitness{sig, key}}, nil

	case P2TRKeyPath:
		if err := checkSchnorrSignature(sig); err != nil {
			return claim{}, err
		}
		return claim{witness: wire.TxWitness{sig}}, nil

	case P2TRScriptPath:
		if err := checkSchnorrSignature(sig); err != nil {
			return claim{}, err
		}
		return claim{witness: wire.TxWitness{
			sig, v.Payload, v.ControlBlock,
		}}, nil

	case CustomInput:
		return claim{
			scriptSig: v.ScriptSig,
			witness:   wire.TxWitness(v.WitnessItems),
		}, nil

	default:
		// Classification rejects every other variant.
		return claim{}, newError(ErrorCodeUnsupportedVariant,
			"input %T is not supported", v)
	}
}

// checkECDSASignature accepts a DER signature followed by a sighash type.
func checkECDSASignature(sig []byte) error {
	if len(sig) < 2 {
		return newError(ErrorCodeSigningFailure,
			"ecdsa signature too short")
	}
	if _, err := ecdsa.ParseDERSignature(sig[:len(sig)-1]); err != nil {
		return &Error{Code: ErrorCodeSigningFailure, Err: err}
	}
	return nil
}

// checkSchnorrSignature accepts a 64-byte signature with an optional
// sighash type byte.
func checkSchnorrSignature(sig []byte) error {
	if len(sig) != schnorr.SignatureSize && len(sig) != schnorr.SignatureSize+1 {
		return newError(ErrorCodeSigningFailure,
			"schnorr signature must be %d or %d bytes, got %d",
			schnorr.SignatureSize, schnorr.SignatureSize+1, len(sig))
	}
	if _, err := schnorr.ParseSignature(sig[:schnorr.SignatureSize]); err != nil {
		return &Error{Code: ErrorCodeSigningFailure, Err: err}
	}
	return nil
}
