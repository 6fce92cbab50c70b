package btcsign

import (
	"fmt"

	"github.com/btcsuite/btcd/txscript"
)

// Sighash is the digest one selected input has to be signed over.
type Sighash struct {
	Sighash       []byte
	SigningMethod SighashMethod
	SighashType   txscript.SigHashType

	// LeafHash is set for taproot script-path spends only.
	LeafHash []byte
}

// preimages computes one sighash per input of the unsigned transaction, in
// input order.
func (b *txBuilder) preimages() ([]Sighash, error) {
	sigHashes := txscript.NewTxSigHashes(b.tx, b.fetcher)

	hashes := make([]Sighash, 0, len(b.inputs))
	for idx, in := range b.inputs {
		hash, err := b.preimage(idx, in, sigHashes)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", in.Index, err)
		}

		log.Tracef("Input %d (%v:%d) %v sighash %x", idx, in.TxID,
			in.Vout, in.SighashMethod, hash)

		hashes = append(hashes, Sighash{
			Sighash:       hash,
			SigningMethod: in.SighashMethod,
			SighashType:   in.SighashType,
			LeafHash:      in.LeafHash,
		})
	}
	return hashes, nil
}

func (b *txBuilder) preimage(idx int, in UtxoInput,
	sigHashes *txscript.TxSigHashes) ([]byte, error) {

	var (
		hash []byte
		err  error
	)
	switch in.SighashMethod {
	case Legacy:
		hash, err = txscript.CalcSignatureHash(
			in.ScriptPubKey, in.SighashType, b.tx, idx,
		)

	case Segwit:
		var scriptCode []byte
		scriptCode, err = witnessScriptCode(in.ScriptPubKey)
		if err != nil {
			return nil, err
		}
		hash, err = txscript.CalcWitnessSigHash(
			scriptCode, sigHashes, in.SighashType, b.tx, idx,
			int64(in.Amount),
		)

	case Taproot:
		if in.tapLeaf != nil {
			hash, err = txscript.CalcTapscriptSignaturehash(
				sigHashes, in.SighashType, b.tx, idx, b.fetcher,
				*in.tapLeaf,
			)
		} else {
			hash, err = txscript.CalcTaprootSignatureHash(
				sigHashes, in.SighashType, b.tx, idx, b.fetcher,
			)
		}

	default:
		return nil, newError(ErrorCodeUnsupportedVariant,
			"unknown sighash method %d", in.SighashMethod)
	}
	if err != nil {
		return nil, &Error{Code: ErrorCodeInvalidScript, Err: err}
	}
	return hash, nil
}

// witnessScriptCode returns the BIP-143 script code for a segwit prevout.
// P2WPKH programs use the P2PKH script of their key hash.
func witnessScriptCode(scriptPubKey []byte) ([]byte, error) {
	if !txscript.IsPayToWitnessPubKeyHash(scriptPubKey) {
		return scriptPubKey, nil
	}
	return p2pkhScript(scriptPubKey[2:])
}
