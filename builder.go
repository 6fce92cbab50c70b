package btcsign

import (
	"github.com/btcsuite/btcd/wire"
)

// txBuilder holds an unsigned transaction together with the prevouts its
// inputs spend. Preimages and the final serialization are both derived from
// it so they always describe the same transaction.
type txBuilder struct {
	tx      *wire.MsgTx
	inputs  []UtxoInput
	outputs []UtxoOutput
	fetcher *PrevOutputFetcher
}

// newTxBuilder creates the unsigned transaction spending ins to outs.
func newTxBuilder(version int32, lockTime LockTime, ins []UtxoInput,
	outs []UtxoOutput) (*txBuilder, error) {

	nLockTime, err := lockTimeValue(lockTime)
	if err != nil {
		return nil, err
	}

	tx := wire.NewMsgTx(version)
	tx.LockTime = nLockTime

	seen := make(map[wire.OutPoint]struct{}, len(ins))
	for _, in := range ins {
		txHash := in.TxID
		prevOut := wire.NewOutPoint(&txHash, in.Vout)
		if _, ok := seen[*prevOut]; ok {
			return nil, newError(ErrorCodeSerializationFailure,
				"outpoint %v spent twice", prevOut)
		}
		seen[*prevOut] = struct{}{}

		txIn := wire.NewTxIn(prevOut, nil, nil)
		txIn.Sequence = in.Sequence
		tx.AddTxIn(txIn)
	}

	for _, out := range outs {
		tx.AddTxOut(wire.NewTxOut(int64(out.Amount), out.ScriptPubKey))
	}

	return &txBuilder{
		tx:      tx,
		inputs:  ins,
		outputs: outs,
		fetcher: NewPrevOutputFetcher(ins),
	}, nil
}

// lockTimeValue resolves lt into an nLockTime value.
func lockTimeValue(lt LockTime) (uint32, error) {
	switch v := lt.(type) {
	case nil, LockTimeNone:
		return 0, nil
	case LockTimeBlocks:
		if uint32(v) >= LockTimeThreshold {
			return 0, newError(ErrorCodeSerializationFailure,
				"block height %d is not below %d", v,
				LockTimeThreshold)
		}
		return uint32(v), nil
	case LockTimeSeconds:
		if uint32(v) < LockTimeThreshold {
			return 0, newError(ErrorCodeSerializationFailure,
				"timestamp %d is below %d", v, LockTimeThreshold)
		}
		return uint32(v), nil
	default:
		return 0, newError(ErrorCodeUnsupportedVariant,
			"unknown lock time %T", lt)
	}
}

// PrevOutputFetcher serves the prevouts of a set of classified inputs to
// the txscript sighash and script engine code.
type PrevOutputFetcher struct {
	prevOuts map[wire.OutPoint]*wire.TxOut
}

// NewPrevOutputFetcher indexes the prevouts spent by utxos.
func NewPrevOutputFetcher(utxos []UtxoInput) *PrevOutputFetcher {
	prevOuts := make(map[wire.OutPoint]*wire.TxOut, len(utxos))
	for _, utxo := range utxos {
		txHash := utxo.TxID
		prevOuts[*wire.NewOutPoint(&txHash, utxo.Vout)] = &wire.TxOut{
			Value:    int64(utxo.Amount),
			PkScript: utxo.ScriptPubKey,
		}
	}
	return &PrevOutputFetcher{prevOuts: prevOuts}
}

// FetchPrevOutput returns the prevout spent through op, or nil if unknown.
func (f *PrevOutputFetcher) FetchPrevOutput(op wire.OutPoint) *wire.TxOut {
	return f.prevOuts[op]
}
