package create

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/Golem-Base/golembase-sdk-go/client"
	"github.com/Golem-Base/golembase-sdk-go/cmd/golembase/pkg/useraccount"
	"github.com/Golem-Base/golembase-sdk-go/entity"
	"github.com/Golem-Base/golembase-sdk-go/storagetx"
)

// To supply string annotations, provide separate --string
// flags for each annotation. After each flag, pass the
// pair as key:value (separated by a colon).
// Example:
// --string hello:world --string foo:bar
// to provide two annotations, hello:world and foo:bar.

func ParseStringAnnotations(input []string) ([]entity.StringAnnotation, error) {
	var annotations []entity.StringAnnotation

	for _, pair := range input {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid annotation pair: %q", pair)
		}
		annotations = append(annotations, entity.StringAnnotation{
			Key:   strings.TrimSpace(kv[0]),
			Value: strings.TrimSpace(kv[1]),
		})
	}

	return annotations, nil
}

// To supply numeric annotations, provide separate --num
// flags for each annotation. After each flag, pass the
// pair as key:value (separated by a colon).
// Example:
// --num favorite:100 --num count:10
// to provide two annotations, favorite:100 and count:10.
func ParseNumericAnnotations(input []string) ([]entity.NumericAnnotation, error) {
	var annotations []entity.NumericAnnotation

	for _, pair := range input {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		valStr := strings.TrimSpace(kv[1])

		val, err := strconv.ParseUint(valStr, 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return nil, fmt.Errorf("invalid value for key %q: %w", key, entity.ErrIntegerOverflow)
			}
			return nil, fmt.Errorf("invalid value for key %q: %v", key, err)
		}

		annotations = append(annotations, entity.NumericAnnotation{
			Key:   key,
			Value: val,
		})
	}

	return annotations, nil
}

func Create() *cli.Command {

	cfg := struct {
		nodeURL string
		data    string
		btl     uint64
	}{}
	return &cli.Command{
		Name:  "create",
		Usage: "Create a new entity",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "node-url",
				Usage:       "The URL of the node to connect to",
				Value:       "http://localhost:8545",
				EnvVars:     []string{"NODE_URL"},
				Destination: &cfg.nodeURL,
			},
			&cli.StringFlag{
				Name:        "data",
				Usage:       "data for the create operation",
				Value:       "this is a test",
				EnvVars:     []string{"ENTITY_DATA"},
				Destination: &cfg.data,
			},
			&cli.Uint64Flag{
				Name:        "btl",
				Usage:       "btl for the create operation",
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

			strs, err := ParseStringAnnotations(c.StringSlice("string"))
			if err != nil {
				return fmt.Errorf("failed to parse string annotations: %w", err)
			}

			nums, err := ParseNumericAnnotations(c.StringSlice("num"))
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
				Create: []storagetx.Create{
					{
						BTL:     cfg.btl,
						Payload: []byte(cfg.data),

						StringAnnotations:  strs,
						NumericAnnotations: nums,
					},
				},
			}

			receipts, err := cl.SendStorageTransaction(ctx, storageTx)
			if err != nil {
				return fmt.Errorf("failed to send storage tx: %w", err)
			}

			for _, r := range receipts.Creates {
				fmt.Println("Entity created", "key", r.EntityKey, "expires at block", r.ExpirationBlock)
			}

			return nil
		},
	}
}
