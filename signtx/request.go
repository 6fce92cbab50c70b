package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	btcsign "btcsign-sdk"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
)

// hexBytes is a byte slice encoded as a hex string in JSON.
type hexBytes []byte

func (h *hexBytes) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	*h = b
	return nil
}

func (h hexBytes) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(h)), nil
}

// request is the JSON form of a signing request.
type request struct {
	Version  int32         `json:"version"`
	LockTime *lockTimeJSON `json:"lock_time,omitempty"`
	Selector string        `json:"selector"`
	Inputs   []inputJSON   `json:"inputs"`
	Outputs  []outputJSON  `json:"outputs"`
}

type lockTimeJSON struct {
	Blocks  *uint32 `json:"blocks,omitempty"`
	Seconds *uint32 `json:"seconds,omitempty"`
}

type inputJSON struct {
	// TxID is in the usual reversed display order.
	TxID       string `json:"txid"`
	Vout       uint32 `json:"vout"`
	Amount     uint64 `json:"amount"`
	OnePrevout bool   `json:"one_prevout,omitempty"`

	// Type is one of p2pkh, p2wpkh, p2tr, p2tr_script or custom.
	Type string `json:"type"`

	PubKey       hexBytes `json:"pubkey,omitempty"`
	PubKeyHash   hexBytes `json:"pubkey_hash,omitempty"`
	Payload      hexBytes `json:"payload,omitempty"`
	ControlBlock hexBytes `json:"control_block,omitempty"`

	ScriptPubKey  hexBytes   `json:"script_pubkey,omitempty"`
	SighashMethod string     `json:"sighash_method,omitempty"`
	TapLeafScript hexBytes   `json:"tap_leaf_script,omitempty"`
	ScriptSig     hexBytes   `json:"script_sig,omitempty"`
	Witness       []hexBytes `json:"witness,omitempty"`
}

type outputJSON struct {
	Amount uint64 `json:"amount"`

	// Address takes precedence over Type.
	Address string `json:"address,omitempty"`

	// Type is one of p2pkh, p2wpkh, p2tr, p2tr_tree or script.
	Type string `json:"type,omitempty"`

	PubKey       hexBytes `json:"pubkey,omitempty"`
	PubKeyHash   hexBytes `json:"pubkey_hash,omitempty"`
	InternalKey  hexBytes `json:"internal_key,omitempty"`
	NodeHash     hexBytes `json:"node_hash,omitempty"`
	ScriptPubKey hexBytes `json:"script_pubkey,omitempty"`
}

// readRequest decodes a request from path, or from stdin if path is "-".
func readRequest(path string) (*request, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var req request
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	return &req, nil
}

// signingInput converts the request into the signing core's input. Output
// addresses are decoded against net.
func (req *request) signingInput(net *chaincfg.Params) (*btcsign.SigningInput, error) {
	in := &btcsign.SigningInput{
		Version:  req.Version,
		LockTime: btcsign.LockTimeNone{},
		Inputs:   make([]btcsign.Input, 0, len(req.Inputs)),
		Outputs:  make([]btcsign.Output, 0, len(req.Outputs)),
	}

	if lt := req.LockTime; lt != nil {
		switch {
		case lt.Blocks != nil && lt.Seconds != nil:
			return nil, fmt.Errorf("lock_time sets both blocks and seconds")
		case lt.Blocks != nil:
			in.LockTime = btcsign.LockTimeBlocks(*lt.Blocks)
		case lt.Seconds != nil:
			in.LockTime = btcsign.LockTimeSeconds(*lt.Seconds)
		}
	}

	switch req.Selector {
	case "", "use_all":
		in.InputSelector = btcsign.UseAll
	case "ascending", "automatic_ascending":
		in.InputSelector = btcsign.AutomaticAscending
	default:
		return nil, fmt.Errorf("unknown selector %q", req.Selector)
	}

	for i, ij := range req.Inputs {
		input, err := ij.input()
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		in.Inputs = append(in.Inputs, input)
	}

	for i, oj := range req.Outputs {
		recipient, err := oj.recipient(net)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		in.Outputs = append(in.Outputs, btcsign.Output{
			Amount:    oj.Amount,
			Recipient: recipient,
		})
	}

	return in, nil
}

func (ij *inputJSON) input() (btcsign.Input, error) {
	txid, err := chainhash.NewHashFromStr(ij.TxID)
	if err != nil {
		return btcsign.Input{}, fmt.Errorf("txid: %w", err)
	}

	var variant btcsign.InputVariant
	switch ij.Type {
	case "p2pkh":
		variant = btcsign.P2PKH{Key: keyOf(ij.PubKey, ij.PubKeyHash)}
	case "p2wpkh":
		variant = btcsign.P2WPKH{Key: keyOf(ij.PubKey, ij.PubKeyHash)}
	case "p2tr":
		variant = btcsign.P2TRKeyPath{PubKey: ij.PubKey}
	case "p2tr_script":
		variant = btcsign.P2TRScriptPath{
			Payload:      ij.Payload,
			ControlBlock: ij.ControlBlock,
		}
	case "custom":
		method, err := sighashMethod(ij.SighashMethod)
		if err != nil {
			return btcsign.Input{}, err
		}
		witness := make([][]byte, 0, len(ij.Witness))
		for _, item := range ij.Witness {
			witness = append(witness, item)
		}
		variant = btcsign.CustomInput{
			ScriptPubKey:  ij.ScriptPubKey,
			SighashMethod: method,
			TapLeafScript: ij.TapLeafScript,
			ScriptSig:     ij.ScriptSig,
			WitnessItems:  witness,
		}
	default:
		return btcsign.Input{}, fmt.Errorf("unknown input type %q", ij.Type)
	}

	return btcsign.Input{
		TxID:       *txid,
		Vout:       ij.Vout,
		Amount:     ij.Amount,
		OnePrevout: ij.OnePrevout,
		Variant:    variant,
	}, nil
}

func (oj *outputJSON) recipient(net *chaincfg.Params) (btcsign.Recipient, error) {
	if oj.Address != "" {
		addr, err := btcutil.DecodeAddress(oj.Address, net)
		if err != nil {
			return nil, err
		}
		if !addr.IsForNet(net) {
			return nil, fmt.Errorf("address %s is not for %s",
				oj.Address, net.Name)
		}
		script, err := txscript.PayToAddrScript(addr)
		if err != nil {
			return nil, err
		}
		return btcsign.ScriptOutput{ScriptPubKey: script}, nil
	}

	switch oj.Type {
	case "p2pkh":
		return btcsign.P2PKH{Key: keyOf(oj.PubKey, oj.PubKeyHash)}, nil
	case "p2wpkh":
		return btcsign.P2WPKH{Key: keyOf(oj.PubKey, oj.PubKeyHash)}, nil
	case "p2tr":
		return btcsign.P2TRKeyPath{PubKey: oj.PubKey}, nil
	case "p2tr_tree":
		return btcsign.P2TRScriptTree{
			InternalKey: oj.InternalKey,
			NodeHash:    oj.NodeHash,
		}, nil
	case "script":
		return btcsign.ScriptOutput{ScriptPubKey: oj.ScriptPubKey}, nil
	default:
		return nil, fmt.Errorf("unknown output type %q", oj.Type)
	}
}

// keyOf prefers the public key. A nil result is reported by the signing
// core as a missing field.
func keyOf(pubKey, pubKeyHash []byte) btcsign.PubKeyOrHash {
	switch {
	case len(pubKey) != 0:
		return btcsign.PubKey(pubKey)
	case len(pubKeyHash) != 0:
		return btcsign.PubKeyHash(pubKeyHash)
	default:
		return nil
	}
}

func sighashMethod(s string) (btcsign.SighashMethod, error) {
	switch s {
	case "legacy":
		return btcsign.Legacy, nil
	case "segwit":
		return btcsign.Segwit, nil
	case "taproot":
		return btcsign.Taproot, nil
	default:
		return 0, fmt.Errorf("unknown sighash method %q", s)
	}
}
