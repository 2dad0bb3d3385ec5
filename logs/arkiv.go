// Package logs holds the event signatures emitted by the Arkiv storage
// processor. The GolemBase-flavor signatures live in the storagetx package
// next to the payload types; both tables feed the receipt decoder.
package logs

import "github.com/ethereum/go-ethereum/crypto"

// ArkivEntityCreated is emitted once per created entity.
// Indexed: entityKey, owner. Data: expirationBlock, cost (wei).
var ArkivEntityCreated = crypto.Keccak256Hash([]byte("ArkivEntityCreated(uint256,address,uint256,uint256)"))

// ArkivEntityUpdated is emitted once per replaced entity.
// Indexed: entityKey, owner. Data: oldExpirationBlock, newExpirationBlock, cost (wei).
var ArkivEntityUpdated = crypto.Keccak256Hash([]byte("ArkivEntityUpdated(uint256,address,uint256,uint256,uint256)"))

// ArkivEntityExpired is emitted by block housekeeping when an entity's
// expiration block passes. Indexed: entityKey, owner. No data.
var ArkivEntityExpired = crypto.Keccak256Hash([]byte("ArkivEntityExpired(uint256,address)"))

// ArkivEntityDeleted is emitted once per explicitly deleted entity.
// Indexed: entityKey, owner. No data.
var ArkivEntityDeleted = crypto.Keccak256Hash([]byte("ArkivEntityDeleted(uint256,address)"))

// ArkivEntityBTLExtended is emitted once per BTL extension.
// Indexed: entityKey, owner. Data: oldExpirationBlock, newExpirationBlock, cost (wei).
var ArkivEntityBTLExtended = crypto.Keccak256Hash([]byte("ArkivEntityBTLExtended(uint256,address,uint256,uint256,uint256)"))

// ArkivEntityOwnerChanged is emitted once per ownership transfer.
// Indexed: entityKey, oldOwner, newOwner. No data.
var ArkivEntityOwnerChanged = crypto.Keccak256Hash([]byte("ArkivEntityOwnerChanged(uint256,address,address)"))
