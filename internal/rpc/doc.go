// Package rpc frames admin requests and responses for the wire and serves
// decoded delete requests to a Deleter.
//
// Ownership boundary:
// - request/response envelopes over protocol/frame
// - API key dispatch table
// - single-request dispatcher with metrics and logs
package rpc
