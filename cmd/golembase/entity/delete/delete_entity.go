package delete

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"

	"github.com/Golem-Base/golembase-sdk-go/client"
	"github.com/Golem-Base/golembase-sdk-go/cmd/golembase/pkg/useraccount"
)

func Delete() *cli.Command {
	cfg := struct {
		nodeURL string
		key     string
	}{}
	return &cli.Command{
		Name:  "delete",
		Usage: "Delete an existing entity",
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
				Usage:       "key of the entity to delete",
				Required:    true,
				EnvVars:     []string{"ENTITY_KEY"},
				Destination: &cfg.key,
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

			receipts, err := cl.DeleteEntities(ctx, common.HexToHash(cfg.key))
			if err != nil {
				return fmt.Errorf("failed to send storage tx: %w", err)
			}

			for _, r := range receipts {
				fmt.Println("Entity deleted", "key", r.EntityKey)
			}

			return nil
		},
	}
}
