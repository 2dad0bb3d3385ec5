package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/Golem-Base/golembase-sdk-go/receipt"
	"github.com/Golem-Base/golembase-sdk-go/storagetx"
)

// EntityEvent is one decoded storage event observed on-chain. Exactly one of
// Create, Update, Delete and Extend is non-nil.
type EntityEvent struct {
	BlockNumber uint64
	TxHash      common.Hash

	Create *receipt.CreateReceipt
	Update *receipt.UpdateReceipt
	Delete *receipt.DeleteReceipt
	Extend *receipt.ExtendReceipt
}

// entityEventTopics is the first topic position of an entity event filter:
// any of the four storage event signatures, plus the legacy extend
// signatures still found in the history of older chains.
var entityEventTopics = []common.Hash{
	storagetx.GolemBaseStorageEntityDeleted,
	storagetx.GolemBaseStorageEntityCreated,
	storagetx.GolemBaseStorageEntityUpdated,
	storagetx.GolemBaseStorageEntityBTLExtended,
	receipt.GolemBaseStorageEntityTTLExtended,
	receipt.GolemBaseStorageEntityTTLExtendedLegacy,
}

// EntityHistory returns every storage event ever emitted for the given
// entity key, oldest first. Malformed logs are reported in the joined error
// but do not suppress the events around them.
func (c *Client) EntityHistory(ctx context.Context, key common.Hash) ([]EntityEvent, error) {
	logs, err := c.eth.FilterLogs(ctx, ethereum.FilterQuery{
		Topics: [][]common.Hash{
			entityEventTopics,
			{key},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to filter logs: %w", err)
	}

	var events []EntityEvent
	var decodeErrs []error
	for _, l := range logs {
		ev, err := decodeEntityEvent(&l)
		if err != nil {
			decodeErrs = append(decodeErrs, fmt.Errorf("failed to decode log at block %d: %w", l.BlockNumber, err))
			continue
		}
		if ev == nil {
			continue
		}
		events = append(events, *ev)
	}

	return events, errors.Join(decodeErrs...)
}

// WatchEntityEvents subscribes to storage events and delivers them on the
// events channel until ctx is canceled or the subscription fails. With no
// keys it streams every entity's events; with keys it streams only those
// entities. Malformed logs are logged and skipped, so one bad log does not
// end the stream. The node must expose a subscription transport (ws or ipc).
func (c *Client) WatchEntityEvents(ctx context.Context, events chan<- EntityEvent, keys ...common.Hash) error {
	q := ethereum.FilterQuery{
		Topics: [][]common.Hash{entityEventTopics},
	}
	if len(keys) > 0 {
		q.Topics = append(q.Topics, keys)
	}

	logCh := make(chan types.Log)
	sub, err := c.eth.SubscribeFilterLogs(ctx, q, logCh)
	if err != nil {
		return fmt.Errorf("failed to subscribe to logs: %w", err)
	}
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			return fmt.Errorf("log subscription failed: %w", err)
		case l := <-logCh:
			ev, err := decodeEntityEvent(&l)
			if err != nil {
				c.logger.Warn("skipping malformed storage log", "block", l.BlockNumber, "tx", l.TxHash, "err", err)
				continue
			}
			if ev == nil {
				c.logger.Trace("ignoring unrelated log", "block", l.BlockNumber, "tx", l.TxHash)
				continue
			}
			select {
			case events <- *ev:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// decodeEntityEvent decodes a single log through the receipt rules. It
// returns (nil, nil) for signatures the decoder does not know.
func decodeEntityEvent(l *types.Log) (*EntityEvent, error) {
	rs, err := receipt.DecodeLogs([]*types.Log{l})
	if err != nil {
		return nil, err
	}

	ev := &EntityEvent{
		BlockNumber: l.BlockNumber,
		TxHash:      l.TxHash,
	}
	switch {
	case len(rs.Creates) == 1:
		ev.Create = &rs.Creates[0]
	case len(rs.Updates) == 1:
		ev.Update = &rs.Updates[0]
	case len(rs.Deletes) == 1:
		ev.Delete = &rs.Deletes[0]
	case len(rs.Extends) == 1:
		ev.Extend = &rs.Extends[0]
	default:
		return nil, nil
	}
	return ev, nil
}
