package btcsign

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

// testPrivKey returns the private key 0x00..01, whose public key is the
// generator point.
func testPrivKey() []byte {
	key := make([]byte, btcec.PrivKeyBytesLen)
	key[len(key)-1] = 1
	return key
}

func testPubKey() *btcec.PublicKey {
	_, pub := btcec.PrivKeyFromBytes(testPrivKey())
	return pub
}

func repeatHash(b byte) chainhash.Hash {
	var h chainhash.Hash
	for i := range h {
		h[i] = b
	}
	return h
}

// p2pkhPkScript builds the expected P2PKH script through btcutil addresses.
func p2pkhPkScript(t *testing.T, pub *btcec.PublicKey) []byte {
	t.Helper()

	addr, err := btcutil.NewAddressPubKeyHash(
		btcutil.Hash160(pub.SerializeCompressed()), &chaincfg.MainNetParams,
	)
	require.NoError(t, err)
	script, err := txscript.PayToAddrScript(addr)
	require.NoError(t, err)
	return script
}

func p2wpkhPkScript(t *testing.T, pub *btcec.PublicKey) []byte {
	t.Helper()

	addr, err := btcutil.NewAddressWitnessPubKeyHash(
		btcutil.Hash160(pub.SerializeCompressed()), &chaincfg.MainNetParams,
	)
	require.NoError(t, err)
	script, err := txscript.PayToAddrScript(addr)
	require.NoError(t, err)
	return script
}

func p2trPkScript(t *testing.T, pub *btcec.PublicKey) []byte {
	t.Helper()

	script, err := txscript.PayToTaprootScript(
		txscript.ComputeTaprootKeyNoScript(pub),
	)
	require.NoError(t, err)
	return script
}

// tapscriptFixture is a single leaf tree `<key> OP_CHECKSIG` under the test
// key.
type tapscriptFixture struct {
	leafScript   []byte
	controlBlock []byte
	leafHash     chainhash.Hash
	pkScript     []byte
}

func newTapscriptFixture(t *testing.T) *tapscriptFixture {
	t.Helper()

	pub := testPubKey()
	leafScript, err := txscript.NewScriptBuilder().
		AddData(schnorr.SerializePubKey(pub)).
		AddOp(txscript.OP_CHECKSIG).
		Script()
	require.NoError(t, err)

	leaf := txscript.NewBaseTapLeaf(leafScript)
	tree := txscript.AssembleTaprootScriptTree(leaf)
	ctrlBlock := tree.LeafMerkleProofs[0].ToControlBlock(pub)
	ctrlBytes, err := ctrlBlock.ToBytes()
	require.NoError(t, err)

	rootHash := tree.RootNode.TapHash()
	pkScript, err := txscript.PayToTaprootScript(
		txscript.ComputeTaprootOutputKey(pub, rootHash[:]),
	)
	require.NoError(t, err)

	return &tapscriptFixture{
		leafScript:   leafScript,
		controlBlock: ctrlBytes,
		leafHash:     leaf.TapHash(),
		pkScript:     pkScript,
	}
}

// verifySigned decodes the signed transaction and runs every input through
// the script engine against the given prevouts.
func verifySigned(t *testing.T, out *SigningOutput,
	prevOuts map[wire.OutPoint]*wire.TxOut) *wire.MsgTx {

	t.Helper()

	require.NoError(t, out.Err())
	require.Equal(t, ErrorCodeOK, out.Error)

	var tx wire.MsgTx
	require.NoError(t, tx.Deserialize(bytes.NewReader(out.Encoded)))

	fetcher := txscript.NewMultiPrevOutFetcher(prevOuts)
	sigHashes := txscript.NewTxSigHashes(&tx, fetcher)
	for i, txIn := range tx.TxIn {
		prevOut := fetcher.FetchPrevOutput(txIn.PreviousOutPoint)
		require.NotNil(t, prevOut, "input %d", i)

		vm, err := txscript.NewEngine(
			prevOut.PkScript, &tx, i, txscript.StandardVerifyFlags,
			nil, sigHashes, prevOut.Value, fetcher,
		)
		require.NoError(t, err)
		require.NoError(t, vm.Execute(), "input %d", i)
	}

	var noWitness bytes.Buffer
	require.NoError(t, tx.SerializeNoWitness(&noWitness))
	require.Equal(t, chainhash.DoubleHashB(noWitness.Bytes()),
		out.TransactionID)

	return &tx
}

func pushedData(t *testing.T, script []byte) [][]byte {
	t.Helper()

	var pushes [][]byte
	tokenizer := txscript.MakeScriptTokenizer(0, script)
	for tokenizer.Next() {
		pushes = append(pushes, tokenizer.Data())
	}
	require.NoError(t, tokenizer.Err())
	return pushes
}

// TestSignP2PKH spends a P2PKH output back to the same key.
func TestSignP2PKH(t *testing.T) {
	t.Parallel()

	// Arrange: One P2PKH input of 50,000 sats paying 40,000 back.
	pub := testPubKey()
	prevTxID := repeatHash(0x11)
	in := &SigningInput{
		Version:    2,
		PrivateKey: testPrivKey(),
		Inputs: []Input{{
			TxID:    prevTxID,
			Amount:  50_000,
			Variant: P2PKH{Key: PubKey(pub.SerializeCompressed())},
		}},
		Outputs: []Output{{
			Amount:    40_000,
			Recipient: P2PKH{Key: PubKey(pub.SerializeCompressed())},
		}},
	}
	entry := NewEntry(WithDeterministicSigning())

	// Act: Compute the sighash and sign.
	pre := entry.PreImageHashes(in)
	out := entry.Sign(in)

	// Assert: The sighash is legacy and the script_sig carries
	// <sig||01> <pubkey> with no witness.
	require.NoError(t, pre.Err())
	require.Len(t, pre.Sighashes, 1)
	require.Equal(t, Legacy, pre.Sighashes[0].SigningMethod)
	require.Equal(t, txscript.SigHashAll, pre.Sighashes[0].SighashType)
	require.Empty(t, pre.Sighashes[0].LeafHash)

	pkScript := p2pkhPkScript(t, pub)
	tx := verifySigned(t, out, map[wire.OutPoint]*wire.TxOut{
		{Hash: prevTxID, Index: 0}: wire.NewTxOut(50_000, pkScript),
	})

	require.False(t, tx.HasWitness())
	pushes := pushedData(t, tx.TxIn[0].SignatureScript)
	require.Len(t, pushes, 2)
	sig := pushes[0]
	require.Equal(t, byte(txscript.SigHashAll), sig[len(sig)-1])
	_, err := ecdsa.ParseDERSignature(sig[:len(sig)-1])
	require.NoError(t, err)
	require.Equal(t, pub.SerializeCompressed(), pushes[1])

	require.Equal(t, pkScript, tx.TxOut[0].PkScript)
	require.EqualValues(t, 40_000, tx.TxOut[0].Value)
	require.EqualValues(t, 10_000, out.Fee)
	require.Equal(t, int64(len(out.Encoded)), out.VSize)
	require.Equal(t, DefaultSequence, tx.TxIn[0].Sequence)
}

// TestSignP2WPKH spends a P2WPKH output back to the same key.
func TestSignP2WPKH(t *testing.T) {
	t.Parallel()

	// Arrange: One P2WPKH input of 100,000 sats paying 90,000 back.
	pub := testPubKey()
	prevTxID := repeatHash(0x22)
	in := &SigningInput{
		Version:    2,
		PrivateKey: testPrivKey(),
		Inputs: []Input{{
			TxID:    prevTxID,
			Vout:    1,
			Amount:  100_000,
			Variant: P2WPKH{Key: PubKey(pub.SerializeCompressed())},
		}},
		Outputs: []Output{{
			Amount:    90_000,
			Recipient: P2WPKH{Key: PubKey(pub.SerializeCompressed())},
		}},
	}

	// Act: Sign the request.
	out := NewEntry(WithDeterministicSigning()).Sign(in)

	// Assert: The witness is [sig||01, pubkey] and the script_sig is
	// empty.
	tx := verifySigned(t, out, map[wire.OutPoint]*wire.TxOut{
		{Hash: prevTxID, Index: 1}: wire.NewTxOut(
			100_000, p2wpkhPkScript(t, pub),
		),
	})

	require.True(t, tx.HasWitness())
	require.Empty(t, tx.TxIn[0].SignatureScript)
	require.Len(t, tx.TxIn[0].Witness, 2)
	sig := tx.TxIn[0].Witness[0]
	require.Equal(t, byte(txscript.SigHashAll), sig[len(sig)-1])
	require.Equal(t, pub.SerializeCompressed(), tx.TxIn[0].Witness[1])

	require.EqualValues(t, 10_000, out.Fee)
	require.Less(t, out.Weight, int64(len(out.Encoded))*4)
	require.Equal(t, out.Transaction.Inputs[0].WitnessItems,
		[][]byte(tx.TxIn[0].Witness))
}

// TestSignP2TRKeyPath spends a key-path taproot output.
func TestSignP2TRKeyPath(t *testing.T) {
	t.Parallel()

	// Arrange: One key-path input of 200,000 sats paying 180,000 back.
	pub := testPubKey()
	prevTxID := repeatHash(0x33)
	in := &SigningInput{
		Version:    2,
		PrivateKey: testPrivKey(),
		Inputs: []Input{{
			TxID:    prevTxID,
			Amount:  200_000,
			Variant: P2TRKeyPath{PubKey: pub.SerializeCompressed()},
		}},
		Outputs: []Output{{
			Amount:    180_000,
			Recipient: P2TRKeyPath{PubKey: pub.SerializeCompressed()},
		}},
	}

	// Act: Sign the request.
	out := NewEntry(WithDeterministicSigning()).Sign(in)

	// Assert: The witness is a single 64-byte signature and the output
	// pays to the tweaked key.
	pkScript := p2trPkScript(t, pub)
	tx := verifySigned(t, out, map[wire.OutPoint]*wire.TxOut{
		{Hash: prevTxID, Index: 0}: wire.NewTxOut(200_000, pkScript),
	})

	require.Len(t, tx.TxIn[0].Witness, 1)
	require.Len(t, tx.TxIn[0].Witness[0], schnorr.SignatureSize)
	require.Equal(t, pkScript, tx.TxOut[0].PkScript)
	require.EqualValues(t, 20_000, out.Fee)
}

// TestSignP2TRScriptPath spends a single leaf tapscript with the untweaked
// key.
func TestSignP2TRScriptPath(t *testing.T) {
	t.Parallel()

	// Arrange: A `<key> OP_CHECKSIG` leaf and its control block.
	fixture := newTapscriptFixture(t)
	prevTxID := repeatHash(0x44)
	in := &SigningInput{
		Version:    2,
		PrivateKey: testPrivKey(),
		Inputs: []Input{{
			TxID:   prevTxID,
			Amount: 50_000,
			Variant: P2TRScriptPath{
				Payload:      fixture.leafScript,
				ControlBlock: fixture.controlBlock,
			},
		}},
		Outputs: []Output{{
			Amount: 45_000,
			Recipient: P2WPKH{
				Key: PubKey(testPubKey().SerializeCompressed()),
			},
		}},
	}
	entry := NewEntry(WithDeterministicSigning())

	// Act: Compute the sighash and sign.
	pre := entry.PreImageHashes(in)
	out := entry.Sign(in)

	// Assert: The leaf hash is the BIP-341 tap leaf hash, the prevout
	// is the real taproot output and the witness is
	// [sig, script, control block].
	require.NoError(t, pre.Err())
	require.Equal(t, Taproot, pre.Sighashes[0].SigningMethod)
	require.Equal(t, fixture.leafHash[:], pre.Sighashes[0].LeafHash)
	require.Equal(t, fixture.pkScript, pre.UtxoInputs[0].ScriptPubKey)

	tx := verifySigned(t, out, map[wire.OutPoint]*wire.TxOut{
		{Hash: prevTxID, Index: 0}: wire.NewTxOut(
			50_000, fixture.pkScript,
		),
	})

	witness := tx.TxIn[0].Witness
	require.Len(t, witness, 3)
	require.Len(t, witness[0], schnorr.SignatureSize)
	require.Equal(t, fixture.leafScript, witness[1])
	require.Equal(t, fixture.controlBlock, witness[2])
}

// TestSignMixedInputs spends one input of every signable kind in a single
// transaction.
func TestSignMixedInputs(t *testing.T) {
	t.Parallel()

	// Arrange: P2PKH, P2WPKH, key-path and script-path inputs. The
	// key-path input commits to its own prevout only.
	pub := testPubKey()
	fixture := newTapscriptFixture(t)
	in := &SigningInput{
		Version:    2,
		LockTime:   LockTimeBlocks(800_000),
		PrivateKey: testPrivKey(),
		Inputs: []Input{{
			TxID:    repeatHash(0x01),
			Amount:  10_000,
			Variant: P2PKH{Key: PubKey(pub.SerializeCompressed())},
		}, {
			TxID:    repeatHash(0x02),
			Vout:    3,
			Amount:  20_000,
			Variant: P2WPKH{Key: PubKey(pub.SerializeUncompressed())},
		}, {
			TxID:       repeatHash(0x03),
			Amount:     30_000,
			OnePrevout: true,
			Variant:    P2TRKeyPath{PubKey: schnorr.SerializePubKey(pub)},
		}, {
			TxID:   repeatHash(0x04),
			Amount: 40_000,
			Variant: P2TRScriptPath{
				Payload:      fixture.leafScript,
				ControlBlock: fixture.controlBlock,
			},
		}},
		Outputs: []Output{{
			Amount:    60_000,
			Recipient: P2TRKeyPath{PubKey: pub.SerializeCompressed()},
		}, {
			Amount: 35_000,
			Recipient: ScriptOutput{
				ScriptPubKey: p2wpkhPkScript(t, pub),
			},
		}},
	}

	// Act: Sign the request.
	out := NewEntry(WithDeterministicSigning()).Sign(in)

	// Assert: Every input verifies and the one-prevout signature carries
	// ALL|ANYONECANPAY.
	tx := verifySigned(t, out, map[wire.OutPoint]*wire.TxOut{
		{Hash: repeatHash(0x01), Index: 0}: wire.NewTxOut(
			10_000, p2pkhPkScript(t, pub),
		),
		{Hash: repeatHash(0x02), Index: 3}: wire.NewTxOut(
			20_000, p2wpkhPkScript(t, pub),
		),
		{Hash: repeatHash(0x03), Index: 0}: wire.NewTxOut(
			30_000, p2trPkScript(t, pub),
		),
		{Hash: repeatHash(0x04), Index: 0}: wire.NewTxOut(
			40_000, fixture.pkScript,
		),
	})

	require.EqualValues(t, 800_000, tx.LockTime)
	require.EqualValues(t, 5_000, out.Fee)

	keyPathSig := tx.TxIn[2].Witness[0]
	require.Len(t, keyPathSig, schnorr.SignatureSize+1)
	require.Equal(t,
		byte(txscript.SigHashAll|txscript.SigHashAnyOneCanPay),
		keyPathSig[schnorr.SignatureSize],
	)
}

// TestSignDeterministic checks that test-mode signing is reproducible and
// that the default entry uses fresh Schnorr randomness.
func TestSignDeterministic(t *testing.T) {
	t.Parallel()

	pub := testPubKey()
	in := &SigningInput{
		Version:    2,
		PrivateKey: testPrivKey(),
		Inputs: []Input{{
			TxID:    repeatHash(0x55),
			Amount:  20_000,
			Variant: P2WPKH{Key: PubKey(pub.SerializeCompressed())},
		}, {
			TxID:    repeatHash(0x66),
			Amount:  20_000,
			Variant: P2TRKeyPath{PubKey: pub.SerializeCompressed()},
		}},
		Outputs: []Output{{
			Amount:    30_000,
			Recipient: P2WPKH{Key: PubKeyHash(btcutil.Hash160(pub.SerializeCompressed()))},
		}},
	}

	first := NewEntry(WithDeterministicSigning()).Sign(in)
	second := NewEntry(WithDeterministicSigning()).Sign(in)
	require.NoError(t, first.Err())
	require.Equal(t, first.Encoded, second.Encoded)
	require.Equal(t, first.TransactionID, second.TransactionID)

	// With random aux data the taproot witness differs, the txid does
	// not.
	random := NewEntry().Sign(in)
	require.NoError(t, random.Err())
	require.NotEqual(t, first.Encoded, random.Encoded)
	require.Equal(t, first.TransactionID, random.TransactionID)
}

// TestCompile assembles a transaction from externally produced signatures.
func TestCompile(t *testing.T) {
	t.Parallel()

	// Arrange: Two inputs of which only the smaller one is selected.
	priv, pub := btcec.PrivKeyFromBytes(testPrivKey())
	in := &SigningInput{
		Version:       2,
		InputSelector: AutomaticAscending,
		Inputs: []Input{{
			TxID:    repeatHash(0x77),
			Amount:  80_000,
			Variant: P2WPKH{Key: PubKey(pub.SerializeCompressed())},
		}, {
			TxID:    repeatHash(0x88),
			Amount:  30_000,
			Variant: P2WPKH{Key: PubKey(pub.SerializeCompressed())},
		}},
		Outputs: []Output{{
			Amount:    25_000,
			Recipient: P2PKH{Key: PubKey(pub.SerializeCompressed())},
		}},
	}
	entry := NewEntry(WithDeterministicSigning())

	pre := entry.PreImageHashes(in)
	require.NoError(t, pre.Err())
	require.Len(t, pre.Sighashes, 1)
	require.Equal(t, 1, pre.UtxoInputs[0].Index)

	sig := ecdsa.Sign(priv, pre.Sighashes[0].Sighash).Serialize()
	sig = append(sig, byte(txscript.SigHashAll))

	// Act: Compile with the external signature, and with a wrong number
	// of signatures.
	out := entry.Compile(in, [][]byte{sig})
	mismatch := entry.Compile(in, [][]byte{sig, sig})

	// Assert: The compiled transaction equals the one Sign produces and
	// the mismatch is reported without any bytes.
	verifySigned(t, out, map[wire.OutPoint]*wire.TxOut{
		{Hash: repeatHash(0x88), Index: 0}: wire.NewTxOut(
			30_000, p2wpkhPkScript(t, pub),
		),
	})
	in.PrivateKey = testPrivKey()
	require.Equal(t, entry.Sign(in).Encoded, out.Encoded)

	require.Equal(t, ErrorCodeSignatureCountMismatch, mismatch.Error)
	require.True(t, IsErrorCode(mismatch.Err(),
		ErrorCodeSignatureCountMismatch))
	require.Nil(t, mismatch.Encoded)
	require.Nil(t, mismatch.TransactionID)
}

// TestPreImageHashesSelection checks that only the smallest inputs covering
// the outputs are hashed, in ascending order.
func TestPreImageHashesSelection(t *testing.T) {
	t.Parallel()

	pub := testPubKey()
	input := func(b byte, amount uint64) Input {
		return Input{
			TxID:    repeatHash(b),
			Amount:  amount,
			Variant: P2WPKH{Key: PubKey(pub.SerializeCompressed())},
		}
	}
	in := &SigningInput{
		Version:       2,
		InputSelector: AutomaticAscending,
		Inputs: []Input{
			input(0x02, 20_000), input(0x07, 70_000),
			input(0x01, 10_000),
		},
		Outputs: []Output{{
			Amount:    25_000,
			Recipient: P2WPKH{Key: PubKey(pub.SerializeCompressed())},
		}},
	}

	out := NewEntry().PreImageHashes(in)
	require.NoError(t, out.Err())
	require.Len(t, out.Sighashes, 2)
	require.Len(t, out.UtxoInputs, 2)
	require.EqualValues(t, 10_000, out.UtxoInputs[0].Amount)
	require.EqualValues(t, 20_000, out.UtxoInputs[1].Amount)
	require.Equal(t, 2, out.UtxoInputs[0].Index)
	require.Equal(t, 0, out.UtxoInputs[1].Index)
	require.Len(t, out.UtxoOutputs, 1)
	require.Equal(t, p2wpkhPkScript(t, pub), out.UtxoOutputs[0].ScriptPubKey)
}

// TestSignErrors covers the failures reported through the response.
func TestSignErrors(t *testing.T) {
	t.Parallel()

	pub := testPubKey()
	validInput := Input{
		TxID:    repeatHash(0x99),
		Amount:  5_000,
		Variant: P2WPKH{Key: PubKey(pub.SerializeCompressed())},
	}
	validOutput := Output{
		Amount:    1_000,
		Recipient: P2WPKH{Key: PubKey(pub.SerializeCompressed())},
	}
	order := btcec.S256().N.Bytes()

	testCases := []struct {
		name string
		in   *SigningInput
		code ErrorCode
	}{{
		name: "nil request",
		in:   nil,
		code: ErrorCodeMissingField,
	}, {
		name: "insufficient funds",
		in: &SigningInput{
			PrivateKey: testPrivKey(),
			Inputs: []Input{validInput, {
				TxID:    repeatHash(0x98),
				Amount:  5_000,
				Variant: validInput.Variant,
			}},
			Outputs: []Output{{
				Amount:    20_000,
				Recipient: validOutput.Recipient,
			}},
		},
		code: ErrorCodeInsufficientFunds,
	}, {
		name: "missing private key",
		in: &SigningInput{
			Inputs:  []Input{validInput},
			Outputs: []Output{validOutput},
		},
		code: ErrorCodeMissingField,
	}, {
		name: "zero private key",
		in: &SigningInput{
			PrivateKey: make([]byte, 32),
			Inputs:     []Input{validInput},
			Outputs:    []Output{validOutput},
		},
		code: ErrorCodeInvalidKey,
	}, {
		name: "private key equal to group order",
		in: &SigningInput{
			PrivateKey: order,
			Inputs:     []Input{validInput},
			Outputs:    []Output{validOutput},
		},
		code: ErrorCodeInvalidKey,
	}, {
		name: "no inputs",
		in: &SigningInput{
			PrivateKey: testPrivKey(),
			Outputs:    []Output{validOutput},
		},
		code: ErrorCodeMissingField,
	}, {
		name: "no outputs",
		in: &SigningInput{
			PrivateKey: testPrivKey(),
			Inputs:     []Input{validInput},
		},
		code: ErrorCodeMissingField,
	}, {
		name: "p2sh input",
		in: &SigningInput{
			PrivateKey: testPrivKey(),
			Inputs: []Input{{
				TxID:    repeatHash(0x97),
				Amount:  5_000,
				Variant: P2SH{RedeemScript: []byte{txscript.OP_TRUE}},
			}},
			Outputs: []Output{validOutput},
		},
		code: ErrorCodeUnsupportedVariant,
	}, {
		name: "address output",
		in: &SigningInput{
			PrivateKey: testPrivKey(),
			Inputs:     []Input{validInput},
			Outputs: []Output{{
				Amount: 1_000,
				Recipient: AddressOutput{
					Address: "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4",
				},
			}},
		},
		code: ErrorCodeUnsupportedVariant,
	}, {
		name: "height lock time above threshold",
		in: &SigningInput{
			PrivateKey: testPrivKey(),
			LockTime:   LockTimeBlocks(LockTimeThreshold),
			Inputs:     []Input{validInput},
			Outputs:    []Output{validOutput},
		},
		code: ErrorCodeSerializationFailure,
	}, {
		name: "amount above maximum",
		in: &SigningInput{
			PrivateKey: testPrivKey(),
			Inputs:     []Input{validInput},
			Outputs: []Output{{
				Amount:    MaxAmount + 1,
				Recipient: validOutput.Recipient,
			}},
		},
		code: ErrorCodeSerializationFailure,
	}, {
		name: "same outpoint twice",
		in: &SigningInput{
			PrivateKey: testPrivKey(),
			Inputs:     []Input{validInput, validInput},
			Outputs:    []Output{validOutput},
		},
		code: ErrorCodeSerializationFailure,
	}}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := NewEntry(WithDeterministicSigning()).Sign(tc.in)

			require.Equal(t, tc.code, out.Error, out.ErrorMessage)
			require.NotEmpty(t, out.ErrorMessage)
			require.True(t, IsErrorCode(out.Err(), tc.code))
			require.Nil(t, out.Encoded)
			require.Nil(t, out.TransactionID)
			require.Nil(t, out.Transaction)
		})
	}
}
