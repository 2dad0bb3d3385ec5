package client

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/Golem-Base/golembase-sdk-go/arkivtype"
	"github.com/Golem-Base/golembase-sdk-go/entity"
	"github.com/Golem-Base/golembase-sdk-go/golemtype"
)

// GetStorageValue returns the payload of the entity with the given key.
func (c *Client) GetStorageValue(ctx context.Context, key common.Hash) ([]byte, error) {
	var v []byte
	err := c.rpc.CallContext(ctx, &v, "golembase_getStorageValue", key)
	if err != nil {
		return nil, fmt.Errorf("failed to get storage value: %w", err)
	}
	return v, nil
}

// GetEntityMetaData returns the expiry, owner and annotations of the entity
// with the given key.
func (c *Client) GetEntityMetaData(ctx context.Context, key common.Hash) (*entity.EntityMetaData, error) {
	md := &entity.EntityMetaData{}
	err := c.rpc.CallContext(ctx, md, "golembase_getEntityMetaData", key)
	if err != nil {
		return nil, fmt.Errorf("failed to get entity metadata: %w", err)
	}
	return md, nil
}

// GetEntityCount returns the number of entities currently active in the
// storage layer.
func (c *Client) GetEntityCount(ctx context.Context) (uint64, error) {
	var count uint64
	err := c.rpc.CallContext(ctx, &count, "golembase_getEntityCount")
	if err != nil {
		return 0, fmt.Errorf("failed to get entity count: %w", err)
	}
	return count, nil
}

// GetAllEntityKeys returns the keys of all active entities.
func (c *Client) GetAllEntityKeys(ctx context.Context) ([]common.Hash, error) {
	var keys []common.Hash
	err := c.rpc.CallContext(ctx, &keys, "golembase_getAllEntityKeys")
	if err != nil {
		return nil, fmt.Errorf("failed to get entity keys: %w", err)
	}
	return keys, nil
}

// GetNumberOfUsedSlots returns the number of storage slots held by active
// entities.
func (c *Client) GetNumberOfUsedSlots(ctx context.Context) (*big.Int, error) {
	var slots hexutil.Big
	err := c.rpc.CallContext(ctx, &slots, "golembase_getNumberOfUsedSlots")
	if err != nil {
		return nil, fmt.Errorf("failed to get number of used slots: %w", err)
	}
	return slots.ToInt(), nil
}

// GetEntitiesOfOwner returns the keys of all active entities owned by the
// given address.
func (c *Client) GetEntitiesOfOwner(ctx context.Context, owner common.Address) ([]common.Hash, error) {
	var keys []common.Hash
	err := c.rpc.CallContext(ctx, &keys, "golembase_getEntitiesOfOwner", owner)
	if err != nil {
		return nil, fmt.Errorf("failed to get entities of owner: %w", err)
	}
	return keys, nil
}

// GetEntitiesToExpireAtBlock returns the keys of the entities whose expiry
// falls exactly on the given block.
func (c *Client) GetEntitiesToExpireAtBlock(ctx context.Context, blockNumber uint64) ([]common.Hash, error) {
	var keys []common.Hash
	err := c.rpc.CallContext(ctx, &keys, "golembase_getEntitiesToExpireAtBlock", blockNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get entities to expire: %w", err)
	}
	return keys, nil
}

// GetEntitiesForStringAnnotationValue returns the keys of the active entities
// carrying the given string annotation.
func (c *Client) GetEntitiesForStringAnnotationValue(ctx context.Context, key, value string) ([]common.Hash, error) {
	var keys []common.Hash
	err := c.rpc.CallContext(ctx, &keys, "golembase_getEntitiesForStringAnnotationValue", key, value)
	if err != nil {
		return nil, fmt.Errorf("failed to get entities for string annotation: %w", err)
	}
	return keys, nil
}

// GetEntitiesForNumericAnnotationValue returns the keys of the active
// entities carrying the given numeric annotation.
func (c *Client) GetEntitiesForNumericAnnotationValue(ctx context.Context, key string, value uint64) ([]common.Hash, error) {
	var keys []common.Hash
	err := c.rpc.CallContext(ctx, &keys, "golembase_getEntitiesForNumericAnnotationValue", key, value)
	if err != nil {
		return nil, fmt.Errorf("failed to get entities for numeric annotation: %w", err)
	}
	return keys, nil
}

// QueryEntities runs a query expression against the node and returns matching
// keys and payloads. The expression is passed through verbatim; the grammar
// is defined by the node.
func (c *Client) QueryEntities(ctx context.Context, query string) ([]golemtype.SearchResult, error) {
	res := []golemtype.SearchResult{}
	err := c.rpc.CallContext(ctx, &res, "golembase_queryEntities", query)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	return res, nil
}

// ArkivQuery runs a query expression through the Arkiv query endpoint, which
// supports column selection, historical reads and cursor pagination via opts.
// A nil opts queries the latest block with the default projection.
func (c *Client) ArkivQuery(ctx context.Context, query string, opts *arkivtype.QueryOptions) (*arkivtype.QueryResponse, error) {
	res := &arkivtype.QueryResponse{}
	err := c.rpc.CallContext(ctx, res, "arkiv_query", query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	return res, nil
}
