package list

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Golem-Base/golembase-sdk-go/client"
	"github.com/Golem-Base/golembase-sdk-go/entity"
)

// metadataFetchConcurrency caps the parallel metadata lookups of the long
// listing so a large entity set does not flood the node.
const metadataFetchConcurrency = 8

func List() *cli.Command {
	cfg := struct {
		nodeURL string
		long    bool
	}{}

	return &cli.Command{
		Name:  "list",
		Usage: "List all entity keys",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "node-url",
				Usage:       "HTTP-RPC server endpoint",
				Value:       "http://localhost:8545",
				EnvVars:     []string{"NODE_URL"},
				Destination: &cfg.nodeURL,
			},
			&cli.BoolFlag{
				Name:        "long",
				Aliases:     []string{"l"},
				Usage:       "Also print expiry and owner of each entity",
				Destination: &cfg.long,
			},
		},
		Action: func(c *cli.Context) error {
			ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt)
			defer cancel()

			cl, err := client.Dial(ctx, cfg.nodeURL, client.Options{})
			if err != nil {
				return fmt.Errorf("failed to connect to node: %w", err)
			}
			defer cl.Close()

			entityKeys, err := cl.GetAllEntityKeys(ctx)
			if err != nil {
				return fmt.Errorf("failed to get entity keys: %w", err)
			}

			if len(entityKeys) == 0 {
				fmt.Println("No entities found")
				return nil
			}

			if !cfg.long {
				fmt.Println("Entity keys:")
				for _, key := range entityKeys {
					fmt.Println(key)
				}
				return nil
			}

			metas := make([]*entity.EntityMetaData, len(entityKeys))

			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(metadataFetchConcurrency)
			for i, key := range entityKeys {
				g.Go(func() error {
					md, err := cl.GetEntityMetaData(gctx, key)
					if err != nil {
						return fmt.Errorf("failed to get metadata of %s: %w", key, err)
					}
					metas[i] = md
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			for i, key := range entityKeys {
				printEntity(key, metas[i])
			}

			return nil
		},
	}
}

func printEntity(key common.Hash, md *entity.EntityMetaData) {
	fmt.Println(key, "expires at block", md.ExpiresAtBlock, "owner", md.Owner)
	for _, a := range md.StringAnnotations {
		fmt.Printf("  %s: %q\n", a.Key, a.Value)
	}
	for _, a := range md.NumericAnnotations {
		fmt.Printf("  %s: %d\n", a.Key, a.Value)
	}
}
