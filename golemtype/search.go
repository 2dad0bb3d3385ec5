// Package golemtype holds result shapes of the golembase_* JSON-RPC
// namespace.
package golemtype

import "github.com/ethereum/go-ethereum/common"

// SearchResult is one row returned by the golembase_queryEntities RPC
// method: the entity key and its payload.
type SearchResult struct {
	Key   common.Hash `json:"key"`
	Value []byte      `json:"value"`
}
