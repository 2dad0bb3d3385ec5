// Package arkivtype holds the request and response shapes of the arkiv_*
// JSON-RPC namespace.
package arkivtype

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/Golem-Base/golembase-sdk-go/entity"
)

// Reserved attribute names understood by the query language, usable in query
// strings next to user-defined annotation keys. The query grammar itself is
// evaluated server-side; the client passes query strings through verbatim.
var KeyAttributeKey = "$key"
var CreatorAttributeKey = "$creator"
var OwnerAttributeKey = "$owner"
var ExpirationAttributeKey = "$expiration"
var SequenceAttributeKey = "$sequence"

// IncludeData selects which parts of each matched entity the query returns.
type IncludeData struct {
	Key         bool `json:"key"`
	Annotations bool `json:"annotations"`
	Payload     bool `json:"payload"`
	Expiration  bool `json:"expiration"`
	Owner       bool `json:"owner"`
}

// QueryOptions are the optional arkiv_query parameters. A nil options value
// asks for everything at the current block.
type QueryOptions struct {
	AtBlock     *uint64      `json:"at_block"`
	IncludeData *IncludeData `json:"include_data"`
}

// QueryResponse is the arkiv_query result. Data holds one EntityData
// document per matched entity; Cursor, when set, is an opaque pagination
// token to feed into the next query.
type QueryResponse struct {
	Data        []json.RawMessage `json:"data"`
	BlockNumber uint64            `json:"blockNumber"`
	Cursor      *string           `json:"cursor,omitempty"`
}

// EntityData is the projection of one entity as returned by arkiv_query.
// Every field is optional; which ones are present depends on the
// IncludeData selection of the request.
type EntityData struct {
	Key                         *common.Hash    `json:"key,omitempty"`
	Value                       hexutil.Bytes   `json:"value,omitempty"`
	ContentType                 *string         `json:"contentType,omitempty"`
	ExpiresAt                   *uint64         `json:"expiresAt,omitempty"`
	Owner                       *common.Address `json:"owner,omitempty"`
	CreatedAtBlock              *uint64         `json:"createdAtBlock,omitempty"`
	LastModifiedAtBlock         *uint64         `json:"lastModifiedAtBlock,omitempty"`
	TransactionIndexInBlock     *uint64         `json:"transactionIndexInBlock,omitempty"`
	OperationIndexInTransaction *uint64         `json:"operationIndexInTransaction,omitempty"`

	StringAttributes  []entity.StringAnnotation  `json:"stringAttributes,omitempty"`
	NumericAttributes []entity.NumericAnnotation `json:"numericAttributes,omitempty"`
}
