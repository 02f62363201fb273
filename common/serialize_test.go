package common_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qstn-network/nft-contract/common"
	"github.com/qstn-network/nft-contract/runtime"
)

func TestMarshalRoundTrip(t *testing.T) {
	type record struct {
		Name  string
		Count uint64
		Tags  []string
	}
	in := record{Name: "x", Count: 7, Tags: []string{"a", "b"}}
	var out record
	require.NoError(t, common.Unmarshal(common.MarshalPanic(in), &out))
	require.Equal(t, in, out)
}

func TestMarshalMapIsDeterministic(t *testing.T) {
	m := map[string]uint64{"alice": 1, "bob": 2, "carol": 3, "dave": 4}
	first := common.MarshalPanic(m)
	for i := 0; i < 16; i++ {
		require.Equal(t, first, common.MarshalPanic(m))
	}
}

func TestUnmarshalMalformed(t *testing.T) {
	var n uint64
	require.Error(t, common.Unmarshal([]byte{0xff, 0x00}, &n))
	require.Panics(t, func() {
		common.UnmarshalPanic([]byte{0xff, 0x00}, &n)
	})
}

func TestSerializedStorage(t *testing.T) {
	s := runtime.NewMemStore()
	key := []byte("k")

	var out string
	require.False(t, common.GetSerialized(s, key, &out))

	common.SetSerialized(s, key, "value")
	require.True(t, common.GetSerialized(s, key, &out))
	require.Equal(t, "value", out)
}

func TestUint64Counters(t *testing.T) {
	s := runtime.NewMemStore()
	key := []byte("n")

	require.Zero(t, common.GetUint64(s, key))
	common.PutUint64(s, key, 5)
	require.EqualValues(t, 5, common.GetUint64(s, key))

	// A zero counter releases its storage instead of persisting.
	common.PutUint64(s, key, 0)
	require.Nil(t, s.Get(key))
	require.Zero(t, common.GetUint64(s, key))
}
