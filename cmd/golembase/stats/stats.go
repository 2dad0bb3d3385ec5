package stats

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/Golem-Base/golembase-sdk-go/client"
)

func Stats() *cli.Command {
	cfg := struct {
		nodeURL string
	}{}
	return &cli.Command{
		Name:  "stats",
		Usage: "Show entity count and storage slot usage",
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

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
			defer stop()

			cl, err := client.Dial(ctx, cfg.nodeURL, client.Options{})
			if err != nil {
				return fmt.Errorf("failed to connect to node: %w", err)
			}
			defer cl.Close()

			count, err := cl.GetEntityCount(ctx)
			if err != nil {
				return fmt.Errorf("failed to get entity count: %w", err)
			}

			usedSlots, err := cl.GetNumberOfUsedSlots(ctx)
			if err != nil {
				return fmt.Errorf("failed to get number of used slots: %w", err)
			}

			fmt.Println("entities:", count)
			fmt.Println("used slots:", usedSlots.String())

			return nil
		},
	}
}
