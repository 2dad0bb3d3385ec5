package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Golem-Base/golembase-sdk-go/client"
)

func Watch() *cli.Command {
	cfg := struct {
		nodeURL string
	}{}
	return &cli.Command{
		Name:  "watch",
		Usage: "Stream entity events as they are emitted. Pass entity keys to watch specific entities, or nothing to watch all",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "node-url",
				Usage:       "The URL of the node to connect to (must be a ws:// or ipc endpoint)",
				Value:       "ws://localhost:8546",
				EnvVars:     []string{"NODE_URL"},
				Destination: &cfg.nodeURL,
			},
		},
		Action: func(c *cli.Context) error {
			ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt)
			defer cancel()

			keys := make([]common.Hash, 0, c.Args().Len())
			for _, arg := range c.Args().Slice() {
				keys = append(keys, common.HexToHash(arg))
			}

			cl, err := client.Dial(ctx, cfg.nodeURL, client.Options{})
			if err != nil {
				return fmt.Errorf("failed to connect to node: %w", err)
			}
			defer cl.Close()

			events := make(chan client.EntityEvent, 16)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				defer close(events)
				err := cl.WatchEntityEvents(gctx, events, keys...)
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			})
			g.Go(func() error {
				for ev := range events {
					printEvent(ev)
				}
				return nil
			})

			return g.Wait()
		},
	}
}

func printEvent(ev client.EntityEvent) {
	switch {
	case ev.Create != nil:
		fmt.Println("Created", ev.BlockNumber, ev.TxHash, ev.Create.EntityKey, "expires at block", ev.Create.ExpirationBlock)
	case ev.Update != nil:
		fmt.Println("Updated", ev.BlockNumber, ev.TxHash, ev.Update.EntityKey, "expires at block", ev.Update.ExpirationBlock)
	case ev.Delete != nil:
		fmt.Println("Deleted", ev.BlockNumber, ev.TxHash, ev.Delete.EntityKey)
	case ev.Extend != nil:
		fmt.Println("BTLExtended", ev.BlockNumber, ev.TxHash, ev.Extend.EntityKey, "expires at block", ev.Extend.NewExpirationBlock)
	}
}
