package history

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"

	"github.com/Golem-Base/golembase-sdk-go/client"
)

func History() *cli.Command {

	cfg := struct {
		nodeURL string
	}{}
	return &cli.Command{
		Name:  "history",
		Usage: "Get the history of a given entity",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "node-url",
				Usage:       "The URL of the node to connect to",
				Value:       "http://localhost:8545",
				EnvVars:     []string{"NODE_URL"},
				Destination: &cfg.nodeURL,
			},
		},
		Action: func(c *cli.Context) error {
			ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt)
			defer cancel()

			if c.Args().Len() != 1 {
				return fmt.Errorf("entity key is required")
			}

			entityKey := common.HexToHash(c.Args().Get(0))

			cl, err := client.Dial(ctx, cfg.nodeURL, client.Options{})
			if err != nil {
				return fmt.Errorf("failed to connect to node: %w", err)
			}
			defer cl.Close()

			events, err := cl.EntityHistory(ctx, entityKey)
			if err != nil {
				return fmt.Errorf("failed to get entity history: %w", err)
			}

			for _, ev := range events {
				switch {
				case ev.Create != nil:
					fmt.Println("Created", ev.BlockNumber, ev.TxHash, "expires at block", ev.Create.ExpirationBlock)
				case ev.Update != nil:
					fmt.Println("Updated", ev.BlockNumber, ev.TxHash, "expires at block", ev.Update.ExpirationBlock)
				case ev.Delete != nil:
					fmt.Println("Deleted", ev.BlockNumber, ev.TxHash)
				case ev.Extend != nil:
					fmt.Println("BTLExtended", ev.BlockNumber, ev.TxHash, "expires at block", ev.Extend.NewExpirationBlock)
				}
			}

			return nil
		},
	}

}
