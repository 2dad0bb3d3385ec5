package update

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"

	"github.com/Golem-Base/golembase-sdk-go/client"
	"github.com/Golem-Base/golembase-sdk-go/cmd/golembase/entity/create"
	"github.com/Golem-Base/golembase-sdk-go/cmd/golembase/pkg/useraccount"
	"github.com/Golem-Base/golembase-sdk-go/storagetx"
)

func Update() *cli.Command {
	cfg := struct {
		nodeURL string
		data    string
		key     string
		btl     uint64
	}{}
	return &cli.Command{
		Name:  "update",
		Usage: "Update an existing entity",
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
				Usage:       "key of the entity to update",
				Required:    true,
				EnvVars:     []string{"ENTITY_KEY"},
				Destination: &cfg.key,
			},
			&cli.StringFlag{
				Name:        "data",
				Usage:       "new data for the update operation",
				Value:       "this is updated data",
				EnvVars:     []string{"ENTITY_DATA"},
				Destination: &cfg.data,
			},
			&cli.Uint64Flag{
				Name:        "btl",
				Usage:       "new btl for the update operation",
				Value:       100,
				EnvVars:     []string{"ENTITY_BTL"},
				Destination: &cfg.btl,
			},
			&cli.StringSliceFlag{
				Name:    "string",
				Aliases: []string{"s"},
				Usage:   "Key/Value for string annotation. Specify as foo:bar. Pass multiple instances of --string as needed",
			},
			&cli.StringSliceFlag{
				Name:    "num",
				Aliases: []string{"n"},
				Usage:   "Key/Value for numeric annotation. Specify as favorite:100. Pass multiple instances of --num as needed",
			},
		},
		Action: func(c *cli.Context) error {
			ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt)
			defer cancel()

			userAccount, err := useraccount.Load()
			if err != nil {
				return fmt.Errorf("failed to load user account: %w", err)
			}

			strs, err := create.ParseStringAnnotations(c.StringSlice("string"))
			if err != nil {
				return fmt.Errorf("failed to parse string annotations: %w", err)
			}

			nums, err := create.ParseNumericAnnotations(c.StringSlice("num"))
			if err != nil {
				return fmt.Errorf("failed to parse numeric annotations: %w", err)
			}

			cl, err := client.Dial(ctx, cfg.nodeURL, client.Options{
				PrivateKey: userAccount.PrivateKey,
			})
			if err != nil {
				return fmt.Errorf("failed to connect to node: %w", err)
			}
			defer cl.Close()

			storageTx := &storagetx.StorageTransaction{
				Update: []storagetx.Update{
					{
						EntityKey: common.HexToHash(cfg.key),
						BTL:       cfg.btl,
						Payload:   []byte(cfg.data),

						StringAnnotations:  strs,
						NumericAnnotations: nums,
					},
				},
			}

			receipts, err := cl.SendStorageTransaction(ctx, storageTx)
			if err != nil {
				return fmt.Errorf("failed to send storage tx: %w", err)
			}

			for _, r := range receipts.Updates {
				fmt.Println("Entity updated", "key", r.EntityKey, "expires at block", r.ExpirationBlock)
			}

			return nil
		},
	}
}
