package main

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
)

// bip84Purpose is the purpose level of native segwit derivation paths.
const bip84Purpose = 84

var errNoKey = errors.New("one of --privkey or --mnemonic is required")

// signingKey returns the raw private key selected on the command line.
func signingKey(opts *options, net *chaincfg.Params) ([]byte, error) {
	switch {
	case opts.PrivKey != "" && opts.Mnemonic != "":
		return nil, errors.New("--privkey and --mnemonic are mutually exclusive")
	case opts.PrivKey != "":
		return parsePrivKey(opts.PrivKey, net)
	case opts.Mnemonic != "":
		return deriveKey(opts.Mnemonic, net.HDCoinType, opts.PathAccount)
	default:
		return nil, errNoKey
	}
}

// parsePrivKey accepts 32 hex encoded bytes or a WIF string.
func parsePrivKey(s string, net *chaincfg.Params) ([]byte, error) {
	if len(s) == hex.EncodedLen(btcec.PrivKeyBytesLen) {
		if key, err := hex.DecodeString(s); err == nil {
			return key, nil
		}
	}

	wif, err := btcutil.DecodeWIF(s)
	if err != nil {
		return nil, fmt.Errorf("private key is neither hex nor WIF: %w", err)
	}
	if !wif.IsForNet(net) {
		return nil, fmt.Errorf("WIF key is not for %s", net.Name)
	}
	return wif.PrivKey.Serialize(), nil
}

// deriveKey derives the key at m/84'/coinType'/account'/0/0.
func deriveKey(mnemonic string, coinType, account uint32) ([]byte, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, err
	}

	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, err
	}

	path := []uint32{
		bip32.FirstHardenedChild + bip84Purpose,
		bip32.FirstHardenedChild + coinType,
		bip32.FirstHardenedChild + account,
		0, 0,
	}
	for _, index := range path {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, fmt.Errorf("derive child %d: %w", index, err)
		}
	}

	// Left-pad in case the scalar has leading zero bytes.
	priv := make([]byte, btcec.PrivKeyBytesLen)
	copy(priv[len(priv)-len(key.Key):], key.Key)
	return priv, nil
}

type keyAddresses struct {
	PubKey string `json:"pubkey"`
	P2PKH  string `json:"p2pkh"`
	P2WPKH string `json:"p2wpkh"`
	P2TR   string `json:"p2tr"`
}

// addressesOf encodes the P2PKH, P2WPKH and key-path P2TR addresses of a
// private key.
func addressesOf(privKey []byte, net *chaincfg.Params) (*keyAddresses, error) {
	priv, pub := btcec.PrivKeyFromBytes(privKey)
	defer priv.Zero()

	pubBytes := pub.SerializeCompressed()
	pkHash := btcutil.Hash160(pubBytes)

	legacy, err := btcutil.NewAddressPubKeyHash(pkHash, net)
	if err != nil {
		return nil, err
	}
	segwit, err := btcutil.NewAddressWitnessPubKeyHash(pkHash, net)
	if err != nil {
		return nil, err
	}
	taproot, err := btcutil.NewAddressTaproot(
		schnorr.SerializePubKey(txscript.ComputeTaprootKeyNoScript(pub)),
		net,
	)
	if err != nil {
		return nil, err
	}

	return &keyAddresses{
		PubKey: hex.EncodeToString(pubBytes),
		P2PKH:  legacy.EncodeAddress(),
		P2WPKH: segwit.EncodeAddress(),
		P2TR:   taproot.EncodeAddress(),
	}, nil
}
