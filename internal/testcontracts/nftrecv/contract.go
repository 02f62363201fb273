// Package nftrecv is a test-only receiver contract for the
// transfer-and-notify protocol. It records the last acknowledgment
// request it saw and answers according to the transfer payload:
// "reject" returns the token, "panic" fails the hook, anything else
// keeps it.
package nftrecv

import (
	"github.com/qstn-network/nft-contract/common"
	"github.com/qstn-network/nft-contract/host"
)

// Call is the recorded acknowledgment request.
type Call struct {
	Sender        host.AccountID `json:"sender"`
	PreviousOwner host.AccountID `json:"previous_owner"`
	TokenID       string         `json:"token_id"`
	Payload       []byte         `json:"payload,omitempty"`
}

var keyCall = []byte("call")

// Methods returns the receiver's dispatch table.
func Methods() map[string]host.Method {
	return map[string]host.Method{
		"onTokenTransfer": func(env host.Env, raw []byte) interface{} {
			var c Call
			common.UnmarshalPanic(raw, &c)
			common.SetSerialized(env.Storage(), keyCall, c)
			switch string(c.Payload) {
			case "reject":
				return common.MarshalPanic(false)
			case "panic":
				panic("transfer hook failure")
			}
			return common.MarshalPanic(true)
		},
		"lastCall": func(env host.Env, raw []byte) interface{} {
			var c Call
			common.GetSerialized(env.Storage(), keyCall, &c)
			return common.MarshalPanic(c)
		},
	}
}
