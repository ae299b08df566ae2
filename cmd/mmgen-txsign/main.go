// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command mmgen-txsign signs a draft transaction artifact (§4.8): it
// partitions inputs into internal/external, derives internal keys from
// the supplied seed, and dispatches to the daemon or standalone signer
// according to the active protocol's SigningMode.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	flags "github.com/jessevdk/go-flags"
	"golang.org/x/term"

	"github.com/toole-brendan/mmwallet/amount"
	"github.com/toole-brendan/mmwallet/chaincfg"
	"github.com/toole-brendan/mmwallet/coinhash"
	"github.com/toole-brendan/mmwallet/keys"
	"github.com/toole-brendan/mmwallet/persist"
	"github.com/toole-brendan/mmwallet/rpcclient"
	"github.com/toole-brendan/mmwallet/signer"
	"github.com/toole-brendan/mmwallet/txbuilder"
	"github.com/toole-brendan/mmwallet/walleterr"
)

type options struct {
	Coin          string `short:"c" long:"coin" default:"btc"`
	Testnet       bool   `long:"testnet"`
	RPCHost       string `long:"rpc-host"`
	RPCUser       string `long:"rpc-user"`
	RPCPass       string `long:"rpc-pass"`
	SeedID        string `long:"seed-id" required:"true"`
	SeedHex       string `long:"seed" required:"true"`
	RawFile       string `long:"raw-file" required:"true" description:"path to a tx_*.raw artifact"`
	ExtraKeysFile string `long:"extra-keys-file" description:"file of WIF keys for external (non-wallet) inputs, one per line"`
	LogFile       string `long:"logfile" default:"mmgen-txsign.log"`
}

func main() {
	os.Exit(run())
}

func run() int {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		}
		return 3
	}

	if err := initLogRotator(opts.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, "mmgen-txsign: log init:", err)
		return 2
	}

	p, err := chaincfg.Get(opts.Coin, opts.Testnet)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mmgen-txsign:", err)
		return walleterr.ExitCode(err)
	}

	rawBytes, err := os.ReadFile(opts.RawFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mmgen-txsign:", err)
		return 2
	}
	lines := strings.SplitN(string(rawBytes), "\n", 4)
	if len(lines) < 3 {
		fmt.Fprintln(os.Stderr, "mmgen-txsign: malformed artifact: too few lines")
		return 3
	}
	header := strings.Fields(lines[0])
	if len(header) != 3 {
		fmt.Fprintln(os.Stderr, "mmgen-txsign: malformed artifact header")
		return 3
	}
	sendAmount, err := amount.ParseAmount(header[1], p.Decimals)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mmgen-txsign:", err)
		return 3
	}
	timestamp, err := strconv.ParseInt(header[2], 10, 64)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mmgen-txsign: malformed artifact timestamp:", err)
		return 3
	}
	meta := artifactMeta{
		TxID:                header[0],
		SendAmount:          sendAmount,
		Timestamp:           timestamp,
		InputsSerialized:    strings.TrimSuffix(lines[2], "\n"),
		OutputMapSerialized: strings.TrimSuffix(strings.Join(lines[3:], ""), "\n"),
	}
	rawHex := lines[1]

	inputs, err := txbuilder.ParseInputsSerialized(meta.InputsSerialized)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mmgen-txsign:", err)
		return 3
	}
	internal, external := signer.PartitionInputs(inputs)
	log.Infof("partitioned %d internal, %d external inputs", len(internal), len(external))

	var externalKeys []signer.ExternalKey
	var externalWIFs []string
	if len(external) > 0 {
		if opts.ExtraKeysFile == "" {
			fmt.Fprintln(os.Stderr, "mmgen-txsign: transaction has external inputs; supply --extra-keys-file")
			return 3
		}
		externalKeys, externalWIFs, err = loadExternalKeys(opts.ExtraKeysFile, p)
		if err != nil {
			fmt.Fprintln(os.Stderr, "mmgen-txsign:", err)
			return 3
		}
		extra, verr := signer.VerifyExternalKeys(external, externalKeys, p)
		if verr != nil {
			fmt.Fprintln(os.Stderr, "mmgen-txsign:", verr)
			return walleterr.ExitCode(verr)
		}
		if len(extra) > 0 {
			log.Warnf("%d supplied external key(s) matched no input", len(extra))
		}
	}

	seed, err := hex.DecodeString(opts.SeedHex)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mmgen-txsign: bad seed hex:", err)
		return 3
	}

	switch p.SigningMode {
	case chaincfg.SigningDaemon:
		return signViaDaemon(opts, p, rawHex, meta, internal, external, externalWIFs, seed)
	case chaincfg.SigningStandalone:
		return signStandalone(opts, p, rawHex, meta, internal, externalKeys, seed)
	default:
		fmt.Fprintln(os.Stderr, "mmgen-txsign: unknown signing mode for", p.Name)
		return 3
	}
}

// loadExternalKeys reads a user-supplied key file, one WIF per line,
// mirroring the original mmgen CLI's preverify_keys flow: decode each key
// eagerly so a malformed key file is rejected before any signing attempt,
// and keep both the parsed ExternalKey (for VerifyExternalKeys) and the
// original WIF string (for the daemon's signrawtransaction key array).
func loadExternalKeys(path string, p *chaincfg.Params) ([]signer.ExternalKey, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var keysOut []signer.ExternalKey
	var wifs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		secret, variant, compressed, derr := keys.DecodeSecret(line, p)
		if derr != nil {
			return nil, nil, fmt.Errorf("mmgen-txsign: %s: %w", path, derr)
		}
		keysOut = append(keysOut, signer.ExternalKey{Secret: secret, Variant: variant, Compressed: compressed})
		wifs = append(wifs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return keysOut, wifs, nil
}

// artifactMeta carries the fields of a *.raw artifact's header and
// remaining lines untouched through signing, so the *.sig artifact written
// afterward preserves the same tx_id and send_amount (§4.7's traceability
// requirement spans every stage, not just the draft).
type artifactMeta struct {
	TxID                string
	SendAmount          amount.Amount
	Timestamp           int64
	InputsSerialized    string
	OutputMapSerialized string
}

// persistSigned writes the *.sig artifact alongside the *.raw file it was
// derived from, replacing only the raw-hex line with the signed payload.
func persistSigned(rawFile string, meta artifactMeta, signedHex string) error {
	artifact := &txbuilder.Artifact{
		TxID:                meta.TxID,
		SendAmount:          meta.SendAmount,
		Timestamp:           meta.Timestamp,
		RawHex:              signedHex,
		InputsSerialized:    meta.InputsSerialized,
		OutputMapSerialized: meta.OutputMapSerialized,
	}
	path := filepath.Join(filepath.Dir(rawFile), artifact.FileName("sig"))
	return persist.WriteFileAtomic(path, []byte(artifact.Serialize()), 0600)
}

// deriveInternalWIFs derives and WIF-encodes the secret for every internal
// input, keyed on the seed_id:index label §4.8 step 2 reads off the
// input's wallet label.
func deriveInternalWIFs(internal []txbuilder.UnspentOutput, seed []byte, p *chaincfg.Params) ([]string, [][]byte, error) {
	wifs := make([]string, 0, len(internal))
	secrets := make([][]byte, 0, len(internal))
	for _, in := range internal {
		seedID, index, ok := in.SeedIDIndex()
		if !ok {
			return nil, nil, fmt.Errorf("mmgen-txsign: internal input %s:%d has no parseable seed label", in.TxID, in.Vout)
		}
		secret, derr := signer.DeriveInternalSecret(seed, seedID, index, chaincfg.VariantStd, p)
		if derr != nil {
			return nil, nil, derr
		}
		wif, werr := keys.EncodeSecret(secret, chaincfg.VariantStd, true, p)
		if werr != nil {
			return nil, nil, werr
		}
		wifs = append(wifs, wif)
		secrets = append(secrets, secret)
	}
	return wifs, secrets, nil
}

func signViaDaemon(opts options, p *chaincfg.Params, rawHex string, meta artifactMeta, internal, external []txbuilder.UnspentOutput, externalWIFs []string, seed []byte) int {
	internalWIFs, _, err := deriveInternalWIFs(internal, seed, p)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mmgen-txsign:", err)
		return 3
	}
	allWIFs := append(internalWIFs, externalWIFs...)

	prevOuts := make([]signer.PrevOut, 0, len(internal)+len(external))
	for _, in := range internal {
		prevOuts = append(prevOuts, signer.PrevOut{TxID: in.TxID, Vout: in.Vout, Amount: in.Amount.Units()})
	}
	for _, in := range external {
		prevOuts = append(prevOuts, signer.PrevOut{TxID: in.TxID, Vout: in.Vout, Amount: in.Amount.Units()})
	}

	client := rpcclient.New(rpcclient.Config{Host: opts.RPCHost, User: opts.RPCUser, Pass: opts.RPCPass})

	prompt := func(attempt int) (string, error) {
		fmt.Fprintf(os.Stderr, "wallet passphrase (attempt %d): ", attempt)
		return readPassphrase()
	}

	signedHex, err := signer.SignWithDaemon(client, rawHex, prevOuts, allWIFs, prompt, 3)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mmgen-txsign:", err)
		return walleterr.ExitCode(err)
	}
	if err := persistSigned(opts.RawFile, meta, signedHex); err != nil {
		fmt.Fprintln(os.Stderr, "mmgen-txsign:", err)
		return 2
	}
	fmt.Println(signedHex)
	return 0
}

// signStandalone implements §4.8 step 3's standalone branch for
// Ethereum-family and Bitcoin-family coins: no daemon round trip, sign
// in-process with each input's secret — derived from the seed for
// internal inputs, taken from the pre-verified key file for external
// ones (run already called signer.VerifyExternalKeys before dispatch).
func signStandalone(opts options, p *chaincfg.Params, rawHex string, meta artifactMeta, internal []txbuilder.UnspentOutput, externalKeys []signer.ExternalKey, seed []byte) int {
	_, internalSecrets, err := deriveInternalWIFs(internal, seed, p)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mmgen-txsign:", err)
		return 3
	}
	secrets := internalSecrets
	for _, k := range externalKeys {
		secrets = append(secrets, k.Secret)
	}

	var digest [32]byte
	copy(digest[:], coinhash.Hash256([]byte(rawHex)))

	var sigHexes []string
	switch p.Family {
	case chaincfg.FamilyEthereum, chaincfg.FamilyEthereumClassic:
		for _, secret := range secrets {
			sig, serr := signer.SignEthereum(secret, digest, p)
			if serr != nil {
				fmt.Fprintln(os.Stderr, "mmgen-txsign:", serr)
				return 3
			}
			sigHexes = append(sigHexes, fmt.Sprintf("%02x%x%x", sig.V, sig.R, sig.S))
		}
	default:
		for _, secret := range secrets {
			sig, serr := signer.SignBitcoinFamily(secret, digest, p)
			if serr != nil {
				fmt.Fprintln(os.Stderr, "mmgen-txsign:", serr)
				return 3
			}
			sigHexes = append(sigHexes, fmt.Sprintf("%x", sig))
		}
	}

	signedHex := rawHex + ":" + strings.Join(sigHexes, ":")
	if err := persistSigned(opts.RawFile, meta, signedHex); err != nil {
		fmt.Fprintln(os.Stderr, "mmgen-txsign:", err)
		return 2
	}
	for _, s := range sigHexes {
		fmt.Println(s)
	}
	return 0
}

// readPassphrase reads a passphrase from the controlling terminal without
// echoing it, falling back to a plain line read when stdin is not a
// terminal (e.g. piped input during scripted testing).
func readPassphrase() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
