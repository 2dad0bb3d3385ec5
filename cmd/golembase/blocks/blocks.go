package blocks

import (
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"strconv"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/urfave/cli/v2"

	"github.com/Golem-Base/golembase-sdk-go/receipt"
)

func Blocks() *cli.Command {
	return &cli.Command{
		Name:  "blocks",
		Usage: "manage blocks",
		Subcommands: []*cli.Command{
			blockList(),
			blockDetails(),
		},
	}
}

func blockList() *cli.Command {
	cfg := struct {
		nodeURL string
		count   uint64
	}{}
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "list blocks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "node-url",
				Usage:       "The URL of the node to connect to",
				Value:       "http://localhost:8545",
				Destination: &cfg.nodeURL,
				EnvVars:     []string{"NODE_URL"},
			},
			&cli.Uint64Flag{
				Name:        "count",
				Usage:       "Number of blocks to list, counting back from the head",
				Value:       32,
				Destination: &cfg.count,
			},
		},
		Action: func(c *cli.Context) error {

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
			defer stop()

			rpcClient, err := rpc.DialContext(ctx, cfg.nodeURL)
			if err != nil {
				return fmt.Errorf("failed to connect to node: %w", err)
			}
			defer rpcClient.Close()

			client := ethclient.NewClient(rpcClient)
			defer client.Close()

			lastHeader, err := client.HeaderByNumber(ctx, nil)
			if err != nil {
				return fmt.Errorf("failed to get last header: %w", err)
			}

			head := lastHeader.Number.Uint64()
			first := uint64(0)
			if cfg.count <= head {
				first = head - cfg.count + 1
			}

			for block := first; block <= head; block++ {
				header, err := client.HeaderByNumber(ctx, new(big.Int).SetUint64(block))
				if err != nil {
					return fmt.Errorf("failed to get block: %w", err)
				}

				fmt.Printf("Block: %d %x\n", block, header.Hash())
			}

			return nil
		},
	}
}

func blockDetails() *cli.Command {
	cfg := struct {
		nodeURL string
	}{}
	return &cli.Command{
		Name:    "cat",
		Aliases: []string{"details"},
		Usage:   "get block details and the storage operations it applied",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "node-url",
				Usage:       "The URL of the node to connect to",
				Value:       "http://localhost:8545",
				Destination: &cfg.nodeURL,
				EnvVars:     []string{"NODE_URL"},
			},
		},
		Action: func(c *cli.Context) error {

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
			defer stop()

			block := c.Args().First()
			if block == "" {
				return fmt.Errorf("block number is required")
			}

			blockNumber, err := strconv.ParseUint(block, 10, 64)
			if err != nil {
				return fmt.Errorf("failed to parse block number: %w", err)
			}

			rpcClient, err := rpc.DialContext(ctx, cfg.nodeURL)
			if err != nil {
				return fmt.Errorf("failed to connect to node: %w", err)
			}
			defer rpcClient.Close()

			client := ethclient.NewClient(rpcClient)
			defer client.Close()

			b, err := client.BlockByNumber(ctx, new(big.Int).SetUint64(blockNumber))
			if err != nil {
				return fmt.Errorf("failed to get block: %w", err)
			}

			fmt.Println("block", b.NumberU64())
			fmt.Println("  hash", b.Hash())
			fmt.Println("  parent", b.ParentHash())

			receipts, err := client.BlockReceipts(ctx, rpc.BlockNumberOrHashWithNumber(rpc.BlockNumber(b.NumberU64())))
			if err != nil {
				return fmt.Errorf("failed to get receipts: %w", err)
			}

			fmt.Println("transactions:")
			for i, tx := range b.Transactions() {
				fmt.Println("   ", tx.Hash())

				decoded, err := receipt.DecodeLogs(receipts[i].Logs)
				if err != nil {
					fmt.Println("      failed to decode storage logs:", err)
				}
				printStorageOps(decoded)
			}

			return nil
		},
	}
}

func printStorageOps(r *receipt.Receipts) {
	for _, cr := range r.Creates {
		fmt.Println("      created", cr.EntityKey, "expires at block", cr.ExpirationBlock)
	}
	for _, up := range r.Updates {
		fmt.Println("      updated", up.EntityKey, "expires at block", up.ExpirationBlock)
	}
	for _, del := range r.Deletes {
		fmt.Println("      deleted", del.EntityKey)
	}
	for _, ext := range r.Extends {
		fmt.Println("      extended", ext.EntityKey, "expires at block", ext.NewExpirationBlock, "was", ext.OldExpirationBlock)
	}
}
