package btcsign

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// UtxoInput is an input after classification: the prevout it spends and the
// sighash algorithm it commits to.
type UtxoInput struct {
	TxID     chainhash.Hash
	Vout     uint32
	Amount   uint64
	Sequence uint32

	// ScriptPubKey is the locking script of the prevout.
	ScriptPubKey []byte

	SighashMethod SighashMethod
	SighashType   txscript.SigHashType

	// LeafHash is set for taproot script-path spends only.
	LeafHash []byte

	OnePrevout bool

	// Index is the position of the input in SigningInput.Inputs.
	Index int

	variant InputVariant
	tapLeaf *txscript.TapLeaf
}

// UtxoOutput is an output with its locking script resolved.
type UtxoOutput struct {
	Amount       uint64
	ScriptPubKey []byte
}

// classifyInputs maps every requested input to its prevout script and
// sighash algorithm.
func classifyInputs(inputs []Input) ([]UtxoInput, error) {
	if len(inputs) == 0 {
		return nil, newError(ErrorCodeMissingField, "no inputs")
	}

	var total uint64
	utxos := make([]UtxoInput, 0, len(inputs))
	for i, in := range inputs {
		utxo, err := classifyInput(in)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		total += utxo.Amount
		if total > MaxAmount {
			return nil, newError(ErrorCodeSerializationFailure,
				"input total exceeds maximum amount")
		}
		utxo.Index = i
		utxos = append(utxos, *utxo)
	}
	return utxos, nil
}

func classifyInput(in Input) (*UtxoInput, error) {
	if in.Amount > MaxAmount {
		return nil, newError(ErrorCodeSerializationFailure,
			"amount %d exceeds maximum", in.Amount)
	}

	utxo := &UtxoInput{
		TxID:       in.TxID,
		Vout:       in.Vout,
		Amount:     in.Amount,
		Sequence:   DefaultSequence,
		OnePrevout: in.OnePrevout,
		variant:    in.Variant,
	}

	var err error
	switch v := in.Variant.(type) {
	case P2PKH:
		utxo.SighashMethod = Legacy
		utxo.ScriptPubKey, err = P2PKHScript(v.Key)

	case P2WPKH:
		utxo.SighashMethod = Segwit
		utxo.ScriptPubKey, err = P2WPKHScript(v.Key)

	case P2TRKeyPath:
		utxo.SighashMethod = Taproot
		utxo.ScriptPubKey, err = P2TRKeyPathScript(v.PubKey)

	case P2TRScriptPath:
		utxo.SighashMethod = Taproot
		err = classifyScriptPath(utxo, v)

	case CustomInput:
		err = classifyCustom(utxo, v)

	case P2SH, P2WSH:
		return nil, newError(ErrorCodeUnsupportedVariant,
			"input %T is not supported", v)

	case nil:
		return nil, newError(ErrorCodeMissingField, "missing input variant")

	default:
		return nil, newError(ErrorCodeUnsupportedVariant,
			"unknown input variant %T", v)
	}
	if err != nil {
		return nil, err
	}

	utxo.SighashType = sighashType(utxo.SighashMethod, utxo.OnePrevout)

	return utxo, nil
}

// classifyScriptPath derives the taproot output script that the control
// block commits to, so the sighash covers the real prevout.
func classifyScriptPath(utxo *UtxoInput, v P2TRScriptPath) error {
	if len(v.Payload) == 0 {
		return newError(ErrorCodeMissingField, "missing leaf script")
	}
	if len(v.ControlBlock) == 0 {
		return newError(ErrorCodeMissingField, "missing control block")
	}

	ctrlBlock, err := txscript.ParseControlBlock(v.ControlBlock)
	if err != nil {
		return &Error{Code: ErrorCodeInvalidScript, Err: err}
	}
	if ctrlBlock.LeafVersion != txscript.BaseLeafVersion {
		return newError(ErrorCodeUnsupportedVariant,
			"leaf version %#x is not supported",
			byte(ctrlBlock.LeafVersion))
	}

	rootHash := ctrlBlock.RootHash(v.Payload)
	outputKey := txscript.ComputeTaprootOutputKey(
		ctrlBlock.InternalKey, rootHash,
	)
	isOdd := outputKey.SerializeCompressed()[0] ==
		secp256k1.PubKeyFormatCompressedOdd
	if isOdd != ctrlBlock.OutputKeyYIsOdd {
		return newError(ErrorCodeInvalidScript,
			"control block parity does not match output key")
	}

	utxo.ScriptPubKey, err = txscript.PayToTaprootScript(outputKey)
	if err != nil {
		return &Error{Code: ErrorCodeInvalidScript, Err: err}
	}

	leaf := txscript.NewBaseTapLeaf(v.Payload)
	leafHash := leaf.TapHash()
	utxo.tapLeaf = &leaf
	utxo.LeafHash = leafHash[:]

	return nil
}

func classifyCustom(utxo *UtxoInput, v CustomInput) error {
	if len(v.ScriptPubKey) == 0 {
		return newError(ErrorCodeMissingField, "missing script pubkey")
	}
	switch v.SighashMethod {
	case Legacy, Segwit, Taproot:
	case 0:
		return newError(ErrorCodeMissingField, "missing sighash method")
	default:
		return newError(ErrorCodeUnsupportedVariant,
			"unknown sighash method %d", v.SighashMethod)
	}
	if v.SighashMethod == Taproot && !txscript.IsPayToTaproot(v.ScriptPubKey) {
		return newError(ErrorCodeInvalidScript,
			"taproot input must spend a P2TR output")
	}
	utxo.SighashMethod = v.SighashMethod
	utxo.ScriptPubKey = v.ScriptPubKey

	if len(v.TapLeafScript) != 0 {
		if v.SighashMethod != Taproot {
			return newError(ErrorCodeInvalidScript,
				"leaf script on a %v input", v.SighashMethod)
		}
		leaf := txscript.NewBaseTapLeaf(v.TapLeafScript)
		leafHash := leaf.TapHash()
		utxo.tapLeaf = &leaf
		utxo.LeafHash = leafHash[:]
	}

	return nil
}

// sighashType is ALL for ECDSA inputs. Taproot inputs use DEFAULT, or
// ALL|ANYONECANPAY when they commit to their own prevout only.
func sighashType(method SighashMethod, onePrevout bool) txscript.SigHashType {
	if method != Taproot {
		return txscript.SigHashAll
	}
	if onePrevout {
		return txscript.SigHashAll | txscript.SigHashAnyOneCanPay
	}
	return txscript.SigHashDefault
}

// classifyOutputs resolves the locking script of every output.
func classifyOutputs(outputs []Output) ([]UtxoOutput, error) {
	if len(outputs) == 0 {
		return nil, newError(ErrorCodeMissingField, "no outputs")
	}

	var total uint64
	utxos := make([]UtxoOutput, 0, len(outputs))
	for i, out := range outputs {
		if out.Amount > MaxAmount {
			return nil, fmt.Errorf("output %d: %w", i, newError(
				ErrorCodeSerializationFailure,
				"amount %d exceeds maximum", out.Amount,
			))
		}
		total += out.Amount
		if total > MaxAmount {
			return nil, newError(ErrorCodeSerializationFailure,
				"output total exceeds maximum amount")
		}
		script, err := recipientScript(out.Recipient)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		utxos = append(utxos, UtxoOutput{
			Amount:       out.Amount,
			ScriptPubKey: script,
		})
	}
	return utxos, nil
}
