package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

const defaultServer = "http://localhost:8080"

// serverFlag registers the shared --server flag on fs. The REGISTRY_SERVER
// environment variable provides the default.
func serverFlag(fs *flag.FlagSet) *string {
	def := os.Getenv("REGISTRY_SERVER")
	if def == "" {
		def = defaultServer
	}
	return fs.String("server", def, "Registry API base URL")
}

func runCreateCollection(args []string) error {
	fs := flag.NewFlagSet("create-collection", flag.ExitOnError)
	server := serverFlag(fs)
	sender := fs.String("sender", "", "Creator address (required)")
	name := fs.String("name", "", "Collection name (required)")
	description := fs.String("description", "", "Collection description")
	maxSupply := fs.Int64("max-supply", 0, "Maximum number of tokens (required)")
	fs.Parse(args)

	if *sender == "" || *name == "" {
		return fmt.Errorf("--sender and --name are required")
	}

	return postJSON(*server, "/v1/collections", map[string]any{
		"sender":      *sender,
		"name":        *name,
		"description": *description,
		"max_supply":  *maxSupply,
	})
}

func runMint(args []string) error {
	fs := flag.NewFlagSet("mint", flag.ExitOnError)
	server := serverFlag(fs)
	sender := fs.String("sender", "", "Capability holder address (required)")
	collectionID := fs.String("collection", "", "Collection ID (required)")
	capID := fs.String("cap", "", "Mint capability ID (required)")
	name := fs.String("name", "", "Token name (required)")
	description := fs.String("description", "", "Token description")
	imageURI := fs.String("image-uri", "", "Token image URI")
	recipient := fs.String("recipient", "", "Recipient address (defaults to sender)")
	fs.Parse(args)

	if *sender == "" || *collectionID == "" || *capID == "" || *name == "" {
		return fmt.Errorf("--sender, --collection, --cap and --name are required")
	}
	if *recipient == "" {
		*recipient = *sender
	}

	return postJSON(*server, "/v1/mint", map[string]any{
		"sender":        *sender,
		"collection_id": *collectionID,
		"cap_id":        *capID,
		"name":          *name,
		"description":   *description,
		"image_uri":     *imageURI,
		"recipient":     *recipient,
	})
}

func runBatchMint(args []string) error {
	fs := flag.NewFlagSet("batch-mint", flag.ExitOnError)
	server := serverFlag(fs)
	sender := fs.String("sender", "", "Capability holder address (required)")
	collectionID := fs.String("collection", "", "Collection ID (required)")
	capID := fs.String("cap", "", "Mint capability ID (required)")
	names := fs.String("names", "", "Comma-separated token names (required)")
	descriptions := fs.String("descriptions", "", "Comma-separated descriptions (optional, must match names)")
	imageURIs := fs.String("image-uris", "", "Comma-separated image URIs (optional, must match names)")
	recipients := fs.String("recipients", "", "Comma-separated recipient addresses (defaults to sender for each)")
	fs.Parse(args)

	if *sender == "" || *collectionID == "" || *capID == "" || *names == "" {
		return fmt.Errorf("--sender, --collection, --cap and --names are required")
	}

	nameList := splitList(*names)
	n := len(nameList)

	return postJSON(*server, "/v1/batch-mint", map[string]any{
		"sender":        *sender,
		"collection_id": *collectionID,
		"cap_id":        *capID,
		"names":         nameList,
		"descriptions":  splitListOrFill(*descriptions, "", n),
		"image_uris":    splitListOrFill(*imageURIs, "", n),
		"recipients":    splitListOrFill(*recipients, *sender, n),
	})
}

func runTransfer(args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	server := serverFlag(fs)
	sender := fs.String("sender", "", "Current holder address (required)")
	nftID := fs.String("nft", "", "NFT ID (required)")
	recipient := fs.String("recipient", "", "New holder address (required)")
	fs.Parse(args)

	if *sender == "" || *nftID == "" || *recipient == "" {
		return fmt.Errorf("--sender, --nft and --recipient are required")
	}

	return postJSON(*server, "/v1/transfer", map[string]any{
		"sender":    *sender,
		"nft_id":    *nftID,
		"recipient": *recipient,
	})
}

func runBurn(args []string) error {
	fs := flag.NewFlagSet("burn", flag.ExitOnError)
	server := serverFlag(fs)
	sender := fs.String("sender", "", "Current holder address (required)")
	nftID := fs.String("nft", "", "NFT ID (required)")
	fs.Parse(args)

	if *sender == "" || *nftID == "" {
		return fmt.Errorf("--sender and --nft are required")
	}

	return postJSON(*server, "/v1/burn", map[string]any{
		"sender": *sender,
		"nft_id": *nftID,
	})
}

func runUpdateMetadata(args []string) error {
	fs := flag.NewFlagSet("update-metadata", flag.ExitOnError)
	server := serverFlag(fs)
	sender := fs.String("sender", "", "Creator address (required)")
	nftID := fs.String("nft", "", "NFT ID (required)")
	name := fs.String("name", "", "New token name (required)")
	description := fs.String("description", "", "New token description")
	imageURI := fs.String("image-uri", "", "New token image URI")
	fs.Parse(args)

	if *sender == "" || *nftID == "" || *name == "" {
		return fmt.Errorf("--sender, --nft and --name are required")
	}

	return postJSON(*server, "/v1/metadata", map[string]any{
		"sender":      *sender,
		"nft_id":      *nftID,
		"name":        *name,
		"description": *description,
		"image_uri":   *imageURI,
	})
}

func runCapTransfer(args []string) error {
	fs := flag.NewFlagSet("cap-transfer", flag.ExitOnError)
	server := serverFlag(fs)
	sender := fs.String("sender", "", "Current capability holder address (required)")
	capID := fs.String("cap", "", "Mint capability ID (required)")
	recipient := fs.String("recipient", "", "New holder address (required)")
	fs.Parse(args)

	if *sender == "" || *capID == "" || *recipient == "" {
		return fmt.Errorf("--sender, --cap and --recipient are required")
	}

	return postJSON(*server, "/v1/cap-transfer", map[string]any{
		"sender":    *sender,
		"cap_id":    *capID,
		"recipient": *recipient,
	})
}

func runGetCollection(args []string) error {
	fs := flag.NewFlagSet("collection", flag.ExitOnError)
	server := serverFlag(fs)
	id := fs.String("id", "", "Collection ID (required)")
	tokens := fs.Bool("tokens", false, "List the collection's tokens instead")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}
	path := "/v1/collections/" + *id
	if *tokens {
		path += "/tokens"
	}
	return getJSON(*server, path)
}

func runGetToken(args []string) error {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	server := serverFlag(fs)
	id := fs.String("id", "", "NFT ID (required)")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}
	return getJSON(*server, "/v1/tokens/"+*id)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// splitListOrFill splits a comma-separated list, or repeats def n times when
// the list is empty.
func splitListOrFill(s, def string, n int) []string {
	if s == "" {
		out := make([]string, n)
		for i := range out {
			out[i] = def
		}
		return out
	}
	return splitList(s)
}
