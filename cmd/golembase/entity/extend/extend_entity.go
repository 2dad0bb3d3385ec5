package extend

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"

	"github.com/Golem-Base/golembase-sdk-go/client"
	"github.com/Golem-Base/golembase-sdk-go/cmd/golembase/pkg/useraccount"
	"github.com/Golem-Base/golembase-sdk-go/storagetx"
)

func Extend() *cli.Command {
	cfg := struct {
		nodeURL string
		key     string
		blocks  uint64
	}{}
	return &cli.Command{
		Name:  "extend",
		Usage: "Extend the BTL of an existing entity",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "node-url",
				Usage:       "The URL of the node to connect to",
				Value:       "http://localhost:8545",
				EnvVars:     []string{"NODE_URL"},
				Destination: &cfg.nodeURL,
			},
			&cli.StringFlag{
				Name:        "key",
				Usage:       "key of the entity to extend",
				Required:    true,
				EnvVars:     []string{"ENTITY_KEY"},
				Destination: &cfg.key,
			},
			&cli.Uint64Flag{
				Name:        "blocks",
				Usage:       "number of blocks to add to the entity expiry",
				Value:       100,
				EnvVars:     []string{"ENTITY_EXTEND_BLOCKS"},
				Destination: &cfg.blocks,
			},
		},
		Action: func(c *cli.Context) error {
			ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt)
			defer cancel()

			userAccount, err := useraccount.Load()
			if err != nil {
				return fmt.Errorf("failed to load user account: %w", err)
			}

			cl, err := client.Dial(ctx, cfg.nodeURL, client.Options{
				PrivateKey: userAccount.PrivateKey,
			})
			if err != nil {
				return fmt.Errorf("failed to connect to node: %w", err)
			}
			defer cl.Close()

			receipts, err := cl.ExtendEntities(ctx, storagetx.ExtendBTL{
				EntityKey:      common.HexToHash(cfg.key),
				NumberOfBlocks: cfg.blocks,
			})
			if err != nil {
				return fmt.Errorf("failed to send storage tx: %w", err)
			}

			for _, r := range receipts {
				fmt.Println("Entity extended", "key", r.EntityKey, "expires at block", r.NewExpirationBlock, "was", r.OldExpirationBlock)
			}

			return nil
		},
	}
}
