// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Groupcraft Authors

// groupsend composes and submits atomic transaction groups from the command
// line. Payments given on one invocation land in a single group: either all
// of them confirm or none do.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/algorand/go-algorand-sdk/v2/crypto"
	"github.com/algorand/go-algorand-sdk/v2/mnemonic"
	"github.com/algorand/go-algorand-sdk/v2/types"
	"golang.org/x/term"

	"github.com/groupcraft-algo/groupcraft/composer"
	"github.com/groupcraft-algo/groupcraft/internal/util"
	"github.com/groupcraft-algo/groupcraft/network"
	"github.com/groupcraft-algo/groupcraft/signing"
)

// Global config for commands that need it
var config *util.Config

// stdinReader is a shared reader for non-terminal stdin
var stdinReader *bufio.Reader

func main() {
	util.InitLogger()

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "groupsend - Atomic transaction group submission\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  groupsend [-d path] [-n network] [-w rounds] pay RECEIVER:MICROALGOS [RECEIVER:MICROALGOS ...]\n")
		fmt.Fprintf(os.Stderr, "  groupsend [-d path] [-n network] params\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		fmt.Fprintf(os.Stderr, "  -d path      Data directory (or set GROUPCRAFT_DATA env var)\n")
		fmt.Fprintf(os.Stderr, "  -n network   Network override (mainnet, testnet, betanet, localnet)\n")
		fmt.Fprintf(os.Stderr, "  -w rounds    Rounds to wait for confirmation (0 = group validity window)\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  groupsend pay ABC...XYZ:1000000\n")
		fmt.Fprintf(os.Stderr, "  groupsend -n testnet pay ABC...XYZ:1000000 DEF...UVW:250000\n")
	}

	dataDir := flag.String("d", "", "Data directory (or set GROUPCRAFT_DATA)")
	netOverride := flag.String("n", "", "Network override")
	waitRounds := flag.Uint64("w", 0, "Rounds to wait for confirmation")
	flag.Parse()

	var err error
	config, err = util.LoadConfig(util.GetDataDir(*dataDir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	net := config.Network
	if *netOverride != "" {
		net = *netOverride
	}

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	switch args[0] {
	case "pay":
		if len(args) < 2 {
			fmt.Fprintf(os.Stderr, "Usage: groupsend pay RECEIVER:MICROALGOS [RECEIVER:MICROALGOS ...]\n")
			os.Exit(1)
		}
		if err := cmdPay(net, args[1:], *waitRounds); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "params":
		if err := cmdParams(net); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		flag.Usage()
		os.Exit(1)
	}
}

// parsePayment splits a RECEIVER:MICROALGOS argument.
func parsePayment(arg string) (types.Address, uint64, error) {
	idx := strings.LastIndex(arg, ":")
	if idx < 0 {
		return types.Address{}, 0, fmt.Errorf("expected RECEIVER:MICROALGOS, got %q", arg)
	}
	receiver, err := types.DecodeAddress(arg[:idx])
	if err != nil {
		return types.Address{}, 0, fmt.Errorf("invalid receiver address %q: %w", arg[:idx], err)
	}
	amount, err := strconv.ParseUint(arg[idx+1:], 10, 64)
	if err != nil {
		return types.Address{}, 0, fmt.Errorf("invalid amount %q: %w", arg[idx+1:], err)
	}
	return receiver, amount, nil
}

// cmdPay composes every payment into one atomic group, signs with the
// account recovered from the prompted mnemonic, and submits.
func cmdPay(net string, payArgs []string, waitRounds uint64) error {
	if len(payArgs) > composer.MaxGroupSize {
		return fmt.Errorf("%d payments exceed the group limit of %d", len(payArgs), composer.MaxGroupSize)
	}

	fmt.Print("Enter sender mnemonic: ")
	phrase, err := readPassword()
	if err != nil {
		return fmt.Errorf("failed to read mnemonic: %w", err)
	}
	fmt.Println()

	sk, err := mnemonic.ToPrivateKey(strings.TrimSpace(phrase))
	if err != nil {
		return fmt.Errorf("invalid mnemonic: %w", err)
	}
	account, err := crypto.AccountFromPrivateKey(sk)
	if err != nil {
		return fmt.Errorf("failed to derive account: %w", err)
	}
	fmt.Printf("Sender: %s\n", account.Address)

	client, err := network.MakeClient(net, config)
	if err != nil {
		return err
	}
	backend := network.NewBackend(client)

	registry := signing.NewRegistry()
	registry.RegisterAccount(account)

	comp, err := composer.NewComposer(
		composer.WithParamsSource(backend),
		composer.WithSignerRegistry(registry),
		composer.WithSubmitter(backend),
		composer.WithCompiler(backend),
	)
	if err != nil {
		return err
	}

	for _, arg := range payArgs {
		receiver, amount, err := parsePayment(arg)
		if err != nil {
			return err
		}
		pay := &composer.PaymentParams{
			CommonParams: composer.CommonParams{Sender: account.Address},
			Receiver:     receiver,
			Amount:       amount,
		}
		if err := comp.AddPayment(pay); err != nil {
			return err
		}
	}

	fmt.Printf("Submitting %d payment(s) as one atomic group...\n", comp.Count())

	result, err := comp.Execute(context.Background(), waitRounds)
	if err != nil {
		return err
	}

	fmt.Printf("\nConfirmed in round %d\n", result.ConfirmedRound)
	if len(result.TxIDs) > 1 {
		fmt.Printf("Group: %s\n", result.GroupID)
	}
	for _, txid := range result.TxIDs {
		fmt.Printf("  %s\n", txid)
	}
	return nil
}

// cmdParams prints the network's current suggested parameters.
func cmdParams(net string) error {
	client, err := network.MakeClient(net, config)
	if err != nil {
		return err
	}

	sp, err := network.NewBackend(client).SuggestedParams(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get suggested params: %w", err)
	}

	fmt.Printf("Network:     %s\n", net)
	fmt.Printf("Genesis ID:  %s\n", sp.GenesisID)
	fmt.Printf("First valid: %d\n", sp.FirstRoundValid)
	fmt.Printf("Fee/byte:    %d\n", sp.Fee)
	fmt.Printf("Min fee:     %d\n", sp.MinFee)
	if composer.IsDevNet(sp.GenesisID) {
		fmt.Println("Dev network detected (extended default validity window)")
	}
	return nil
}

// readPassword safely reads a secret from stdin, handling both terminal and
// non-terminal inputs.
func readPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		bytePassword, err := term.ReadPassword(fd)
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	if stdinReader == nil {
		stdinReader = bufio.NewReader(os.Stdin)
	}
	line, err := stdinReader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
