package query

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/Golem-Base/golembase-sdk-go/arkivtype"
	"github.com/Golem-Base/golembase-sdk-go/client"
)

func Query() *cli.Command {
	cfg := struct {
		nodeURL string
		NoData  bool
		atBlock uint64
	}{}
	return &cli.Command{
		Name:  "query",
		Usage: "query entity",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "node-url",
				Usage:       "The URL of the node to connect to",
				Value:       "http://localhost:8545",
				EnvVars:     []string{"NODE_URL"},
				Destination: &cfg.nodeURL,
			},
			&cli.BoolFlag{
				Name:        "no-data",
				Usage:       "Do not print the stored value",
				Destination: &cfg.NoData,
				EnvVars:     []string{"NO_DATA"},
			},
			&cli.Uint64Flag{
				Name:        "at-block",
				Usage:       "Query the state as of the given block (via the arkiv endpoint)",
				Destination: &cfg.atBlock,
			},
		},
		Action: func(c *cli.Context) error {

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
			defer stop()

			query := c.Args().First()
			if query == "" {
				return fmt.Errorf("query string is required")
			}

			cl, err := client.Dial(ctx, cfg.nodeURL, client.Options{})
			if err != nil {
				return fmt.Errorf("failed to connect to node: %w", err)
			}
			defer cl.Close()

			if c.IsSet("at-block") {
				return arkivQuery(ctx, cl, query, cfg.atBlock, cfg.NoData)
			}

			res, err := cl.QueryEntities(ctx, query)
			if err != nil {
				return fmt.Errorf("failed to query entities: %w", err)
			}

			for _, r := range res {
				fmt.Println(r.Key)
				if !cfg.NoData {
					fmt.Println("  payload:", string(r.Value))
				}
			}

			return nil
		},
	}
}

func arkivQuery(ctx context.Context, cl *client.Client, query string, atBlock uint64, noData bool) error {
	res, err := cl.ArkivQuery(ctx, query, &arkivtype.QueryOptions{
		AtBlock: &atBlock,
		IncludeData: &arkivtype.IncludeData{
			Key:         true,
			Annotations: true,
			Payload:     !noData,
			Expiration:  true,
			Owner:       true,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to query entities: %w", err)
	}

	fmt.Println("block", res.BlockNumber)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, row := range res.Data {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("failed to print result row: %w", err)
		}
	}

	return nil
}
