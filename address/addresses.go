package address

import "github.com/ethereum/go-ethereum/common"

// Storage transactions are sent as call data to these system addresses; the
// chain routes them to the entity-storage processor. The GolemBase address is
// the original processor, the Arkiv address accepts the compressed transaction
// format.
var (
	GolemBaseStorageProcessorAddress = common.HexToAddress("0x0000000000000000000000000000000060138453")
	ArkivProcessorAddress            = common.HexToAddress("0x00000000000000000000000000000061726B6976")
)
