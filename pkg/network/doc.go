// Package network defines the chain-agnostic transaction model used by
// arbctl: wasm messages, drafts, fee parameters, signed transactions and the
// events a ledger reports back.
//
// Implementations for a concrete ledger live in subpackages:
//
//	pkg/network/cosmos  Terra LCD client, wallet and signing
//	pkg/network/wasm    Mars and Astroport message builders
package network
