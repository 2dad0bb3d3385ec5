// Package client submits storage transactions to a GolemBase-enabled node
// and wraps its entity read API. The codec packages stay pure; everything
// that touches the network lives here.
package client

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/Golem-Base/golembase-sdk-go/address"
)

// ErrNoPrivateKey is returned by the write path when the client was dialed
// without a signing key.
var ErrNoPrivateKey = errors.New("client has no private key")

// Options tune the client. Every field is optional: a zero Options gives a
// read-only client talking to the default processor addresses.
type Options struct {
	// PrivateKey signs storage transactions. Without it the client can
	// read but not write.
	PrivateKey *ecdsa.PrivateKey

	// ProcessorAddress overrides the GolemBase storage processor address.
	ProcessorAddress common.Address

	// ArkivProcessorAddress overrides the Arkiv storage processor address.
	ArkivProcessorAddress common.Address

	// GasFeeCap and GasTipCap pin the fee fields of submitted transactions.
	// When nil the node's suggestions are used per submission.
	GasFeeCap *big.Int
	GasTipCap *big.Int

	// Logger, if set, receives debug logging for submissions and watches.
	Logger log.Logger
}

// Client is a connection to a GolemBase-enabled node. It is safe for
// concurrent use.
type Client struct {
	rpc            *rpc.Client
	eth            *ethclient.Client
	key            *ecdsa.PrivateKey
	sender         common.Address
	processor      common.Address
	arkivProcessor common.Address
	gasFeeCap      *big.Int
	gasTipCap      *big.Int
	logger         log.Logger
}

// Dial connects to the node at nodeURL. A single connection backs both the
// typed chain calls and the golembase_* RPC namespace.
func Dial(ctx context.Context, nodeURL string, opts Options) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, nodeURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to node: %w", err)
	}

	c := &Client{
		rpc:            rpcClient,
		eth:            ethclient.NewClient(rpcClient),
		key:            opts.PrivateKey,
		processor:      opts.ProcessorAddress,
		arkivProcessor: opts.ArkivProcessorAddress,
		gasFeeCap:      opts.GasFeeCap,
		gasTipCap:      opts.GasTipCap,
		logger:         opts.Logger,
	}
	if c.key != nil {
		c.sender = crypto.PubkeyToAddress(c.key.PublicKey)
	}
	if c.processor == (common.Address{}) {
		c.processor = address.GolemBaseStorageProcessorAddress
	}
	if c.arkivProcessor == (common.Address{}) {
		c.arkivProcessor = address.ArkivProcessorAddress
	}
	if c.logger == nil {
		c.logger = log.Root()
	}

	return c, nil
}

// Close tears down the underlying connection.
func (c *Client) Close() {
	c.eth.Close()
}

// Sender returns the address the client signs transactions with, or the zero
// address for a read-only client.
func (c *Client) Sender() common.Address {
	return c.sender
}
