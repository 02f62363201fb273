package common

import (
	"github.com/fxamacker/cbor/v2"
)

// Canonical CBOR keeps persisted bytes deterministic: map keys are
// sorted, integers use the shortest form. Both the storage layer and
// cross-call payloads rely on this.
var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(err)
	}
}

// MarshalPanic serializes value to canonical CBOR and panics on failure.
// Serialization of contract state can only fail on a programming error,
// so there is no error to handle.
func MarshalPanic(value interface{}) []byte {
	data, err := encMode.Marshal(value)
	if err != nil {
		panic("marshal: " + err.Error())
	}
	return data
}

// Unmarshal deserializes canonical CBOR data into out.
func Unmarshal(data []byte, out interface{}) error {
	return decMode.Unmarshal(data, out)
}

// UnmarshalPanic deserializes data into out and panics on malformed
// input. It is used for contract-owned state that the contract itself
// serialized.
func UnmarshalPanic(data []byte, out interface{}) {
	if err := decMode.Unmarshal(data, out); err != nil {
		panic("unmarshal: " + err.Error())
	}
}
