package client

import (
	nm "github.com/tendermint/tendermint/node"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
)

// DefaultLocalAddr is where a node started with default settings
// serves its RPC interface.
const DefaultLocalAddr = "http://localhost:26657"

// NewRemoteClient connects to the RPC interface of a running node.
// An empty address connects to a local node on the default port.
func NewRemoteClient(addr string) *Client {
	if addr == "" {
		addr = DefaultLocalAddr
	}
	return NewClient(rpcclient.NewHTTP(addr, "/websocket"))
}

// NewLocalClient talks to an in-process node without going through
// the network stack, useful in tests.
func NewLocalClient(node *nm.Node) *Client {
	return NewClient(rpcclient.NewLocal(node))
}
