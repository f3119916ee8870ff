// Package main provides nftctl, a command line client for the registry API.
//
// Usage:
//
//	nftctl <command> [flags]
//
// Commands:
//
//	keygen             generate a new address
//	create-collection  create a collection and receive its mint capability
//	mint               mint a single NFT
//	batch-mint         mint several NFTs in one transaction
//	transfer           transfer an NFT to another holder
//	burn               burn an NFT
//	update-metadata    update an NFT's metadata (creator only)
//	cap-transfer       hand the mint capability to another address
//	collection         show a collection
//	token              show a token
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"tzar-nft-registry/internal/domain"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd, args := os.Args[1], os.Args[2:]

	var err error
	switch cmd {
	case "keygen":
		err = runKeygen()
	case "create-collection":
		err = runCreateCollection(args)
	case "mint":
		err = runMint(args)
	case "batch-mint":
		err = runBatchMint(args)
	case "transfer":
		err = runTransfer(args)
	case "burn":
		err = runBurn(args)
	case "update-metadata":
		err = runUpdateMetadata(args)
	case "cap-transfer":
		err = runCapTransfer(args)
	case "collection":
		err = runGetCollection(args)
	case "token":
		err = runGetToken(args)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `nftctl - registry API client

Commands:
  keygen             generate a new address
  create-collection  create a collection and receive its mint capability
  mint               mint a single NFT
  batch-mint         mint several NFTs in one transaction
  transfer           transfer an NFT to another holder
  burn               burn an NFT
  update-metadata    update an NFT's metadata (creator only)
  cap-transfer       hand the mint capability to another address
  collection         show a collection
  token              show a token

Run 'nftctl <command> -h' for command flags.`)
}

func runKeygen() error {
	addr, priv, err := domain.GenerateAddress()
	if err != nil {
		return err
	}
	fmt.Printf("address:     %s\n", addr)
	fmt.Printf("private-key: %s\n", hex.EncodeToString(priv))
	return nil
}
