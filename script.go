package btcsign

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
)

const (
	pubKeyHashLen = 20
	nodeHashLen   = 32
)

// pubKeyHash resolves key to its HASH160. Witness forms always hash the
// compressed encoding, legacy forms hash the key as given.
func pubKeyHash(key PubKeyOrHash, witness bool) ([]byte, error) {
	switch k := key.(type) {
	case PubKeyHash:
		if len(k) != pubKeyHashLen {
			return nil, newError(ErrorCodeInvalidKey,
				"public key hash must be %d bytes, got %d",
				pubKeyHashLen, len(k))
		}
		return []byte(k), nil

	case PubKey:
		pub, err := btcec.ParsePubKey(k)
		if err != nil {
			return nil, &Error{Code: ErrorCodeInvalidKey, Err: err}
		}
		if witness {
			return btcutil.Hash160(pub.SerializeCompressed()), nil
		}
		return btcutil.Hash160(k), nil

	case nil:
		return nil, newError(ErrorCodeMissingField, "missing public key or hash")

	default:
		return nil, newError(ErrorCodeUnsupportedVariant,
			"unknown key type %T", key)
	}
}

// claimKey is the key material pushed when claiming a pubkey-hash output:
// the public key if the caller gave one, the hash otherwise.
func claimKey(key PubKeyOrHash, witness bool) ([]byte, error) {
	k, ok := key.(PubKey)
	if !ok {
		return pubKeyHash(key, witness)
	}
	pub, err := btcec.ParsePubKey(k)
	if err != nil {
		return nil, &Error{Code: ErrorCodeInvalidKey, Err: err}
	}
	if witness {
		return pub.SerializeCompressed(), nil
	}
	return []byte(k), nil
}

// parseTaprootKey accepts an x-only key or a SEC encoded key.
func parseTaprootKey(key []byte) (*btcec.PublicKey, error) {
	var (
		pub *btcec.PublicKey
		err error
	)
	switch len(key) {
	case 0:
		return nil, newError(ErrorCodeMissingField, "missing taproot key")
	case schnorr.PubKeyBytesLen:
		pub, err = schnorr.ParsePubKey(key)
	default:
		pub, err = btcec.ParsePubKey(key)
	}
	if err != nil {
		return nil, &Error{Code: ErrorCodeInvalidKey, Err: err}
	}
	return pub, nil
}

// p2pkhScript returns OP_DUP OP_HASH160 <hash> OP_EQUALVERIFY OP_CHECKSIG.
func p2pkhScript(hash []byte) ([]byte, error) {
	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(hash).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG).
		Script()
	if err != nil {
		return nil, &Error{Code: ErrorCodeInvalidScript, Err: err}
	}
	return script, nil
}

// p2wpkhScript returns OP_0 <hash>.
func p2wpkhScript(hash []byte) ([]byte, error) {
	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(hash).
		Script()
	if err != nil {
		return nil, &Error{Code: ErrorCodeInvalidScript, Err: err}
	}
	return script, nil
}

// p2trScript returns OP_1 <output key> for the internal key tweaked with the
// given merkle root. An empty root is the key-path only tweak.
func p2trScript(internalKey *btcec.PublicKey, merkleRoot []byte) ([]byte, error) {
	outputKey := txscript.ComputeTaprootOutputKey(internalKey, merkleRoot)
	script, err := txscript.PayToTaprootScript(outputKey)
	if err != nil {
		return nil, &Error{Code: ErrorCodeInvalidScript, Err: err}
	}
	return script, nil
}

// P2PKHScript builds the locking script of a P2PKH output.
func P2PKHScript(key PubKeyOrHash) ([]byte, error) {
	hash, err := pubKeyHash(key, false)
	if err != nil {
		return nil, err
	}
	return p2pkhScript(hash)
}

// P2WPKHScript builds the locking script of a P2WPKH output.
func P2WPKHScript(key PubKeyOrHash) ([]byte, error) {
	hash, err := pubKeyHash(key, true)
	if err != nil {
		return nil, err
	}
	return p2wpkhScript(hash)
}

// P2TRKeyPathScript builds the locking script of a taproot output without a
// script tree.
func P2TRKeyPathScript(internalKey []byte) ([]byte, error) {
	pub, err := parseTaprootKey(internalKey)
	if err != nil {
		return nil, err
	}
	return p2trScript(pub, []byte{})
}

// P2TRScriptTreeScript builds the locking script of a taproot output that
// commits to the script tree with the given merkle root.
func P2TRScriptTreeScript(internalKey, nodeHash []byte) ([]byte, error) {
	if len(nodeHash) != nodeHashLen {
		return nil, newError(ErrorCodeInvalidScript,
			"merkle root must be %d bytes, got %d", nodeHashLen,
			len(nodeHash))
	}
	pub, err := parseTaprootKey(internalKey)
	if err != nil {
		return nil, err
	}
	return p2trScript(pub, nodeHash)
}

// recipientScript builds the locking script paid to by an output.
func recipientScript(r Recipient) ([]byte, error) {
	switch v := r.(type) {
	case P2PKH:
		return P2PKHScript(v.Key)
	case P2WPKH:
		return P2WPKHScript(v.Key)
	case P2TRKeyPath:
		return P2TRKeyPathScript(v.PubKey)
	case P2TRScriptTree:
		return P2TRScriptTreeScript(v.InternalKey, v.NodeHash)
	case ScriptOutput:
		if len(v.ScriptPubKey) == 0 {
			return nil, newError(ErrorCodeMissingField,
				"missing script pubkey")
		}
		return v.ScriptPubKey, nil
	case P2SH, P2WSH, AddressOutput:
		return nil, newError(ErrorCodeUnsupportedVariant,
			"recipient %T is not supported", r)
	case nil:
		return nil, newError(ErrorCodeMissingField, "missing recipient")
	default:
		return nil, newError(ErrorCodeUnsupportedVariant,
			"unknown recipient %T", r)
	}
}
