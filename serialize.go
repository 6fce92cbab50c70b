package btcsign

import (
	"bytes"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// Transaction describes a signed transaction field by field.
type Transaction struct {
	Version  int32
	LockTime uint32
	Inputs   []TransactionInput
	Outputs  []TransactionOutput
}

// TransactionInput is a signed input.
type TransactionInput struct {
	TxID         chainhash.Hash
	Vout         uint32
	Sequence     uint32
	ScriptSig    []byte
	WitnessItems [][]byte
}

// TransactionOutput is an output of a signed transaction.
type TransactionOutput struct {
	Amount       uint64
	ScriptPubKey []byte
}

// signedTx is a serialized transaction and the figures derived from it.
type signedTx struct {
	encoded []byte
	txHash  chainhash.Hash
	fee     uint64
	weight  int64
	vsize   int64
	summary *Transaction
}

// finalize attaches claims to a copy of the unsigned transaction and
// serializes it. Segwit encoding is used when any input has a witness.
func (b *txBuilder) finalize(claims []claim) (*signedTx, error) {
	if len(claims) != len(b.inputs) {
		return nil, newError(ErrorCodeSignatureCountMismatch,
			"%d claims for %d inputs", len(claims), len(b.inputs))
	}

	tx := b.tx.Copy()
	for i, c := range claims {
		tx.TxIn[i].SignatureScript = c.scriptSig
		tx.TxIn[i].Witness = c.witness
	}

	var buf bytes.Buffer
	buf.Grow(tx.SerializeSize())
	if err := tx.Serialize(&buf); err != nil {
		return nil, &Error{Code: ErrorCodeSerializationFailure, Err: err}
	}

	var totalIn uint64
	for _, in := range b.inputs {
		totalIn = addAmount(totalIn, in.Amount)
	}
	fee := totalIn - sumOutputs(b.outputs)

	weight := blockchain.GetTransactionWeight(btcutil.NewTx(tx))
	vsize := (weight + blockchain.WitnessScaleFactor - 1) /
		blockchain.WitnessScaleFactor

	signed := &signedTx{
		encoded: buf.Bytes(),
		txHash:  tx.TxHash(),
		fee:     fee,
		weight:  weight,
		vsize:   vsize,
		summary: summarize(tx),
	}

	log.Debugf("Signed tx %v: %d inputs, %d outputs, fee %v, %d vbytes",
		signed.txHash, len(tx.TxIn), len(tx.TxOut),
		btcutil.Amount(fee), vsize)

	return signed, nil
}

func summarize(tx *wire.MsgTx) *Transaction {
	summary := &Transaction{
		Version:  tx.Version,
		LockTime: tx.LockTime,
		Inputs:   make([]TransactionInput, 0, len(tx.TxIn)),
		Outputs:  make([]TransactionOutput, 0, len(tx.TxOut)),
	}
	for _, txIn := range tx.TxIn {
		summary.Inputs = append(summary.Inputs, TransactionInput{
			TxID:         txIn.PreviousOutPoint.Hash,
			Vout:         txIn.PreviousOutPoint.Index,
			Sequence:     txIn.Sequence,
			ScriptSig:    txIn.SignatureScript,
			WitnessItems: txIn.Witness,
		})
	}
	for _, txOut := range tx.TxOut {
		summary.Outputs = append(summary.Outputs, TransactionOutput{
			Amount:       uint64(txOut.Value),
			ScriptPubKey: txOut.PkScript,
		})
	}
	return summary
}
