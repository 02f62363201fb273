package nft

import (
	"encoding/json"

	"github.com/mr-tron/base58"

	"github.com/qstn-network/nft-contract/common"
	"github.com/qstn-network/nft-contract/host"
)

// MetadataSpec is the metadata schema version the contract implements.
const MetadataSpec = "nft-1.0.0"

// Base58Bytes is a byte string rendered as base58 at the JSON boundary.
// Integrity hashes of off-chain references use it.
type Base58Bytes []byte

func (b Base58Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(base58.Encode(b))
}

func (b *Base58Bytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return err
	}
	*b = raw
	return nil
}

// ContractMetadata describes the whole collection. It is written once at
// deploy and never mutated afterwards.
type ContractMetadata struct {
	Spec          string      `json:"spec"`
	Name          string      `json:"name"`
	Symbol        string      `json:"symbol"`
	Icon          string      `json:"icon,omitempty"`
	BaseURI       string      `json:"base_uri,omitempty"`
	Reference     string      `json:"reference,omitempty"`
	ReferenceHash Base58Bytes `json:"reference_hash,omitempty"`
}

// TokenMetadata is the optional per-token metadata stored with the
// token.
type TokenMetadata struct {
	Title         string      `json:"title,omitempty"`
	Description   string      `json:"description,omitempty"`
	Media         string      `json:"media,omitempty"`
	MediaHash     Base58Bytes `json:"media_hash,omitempty"`
	Copies        uint64      `json:"copies,omitempty"`
	IssuedAt      uint64      `json:"issued_at,omitempty"`
	Reference     string      `json:"reference,omitempty"`
	ReferenceHash Base58Bytes `json:"reference_hash,omitempty"`
	Extra         string      `json:"extra,omitempty"`
}

func (m *ContractMetadata) checkValid() {
	if m.Spec != MetadataSpec {
		panic(ErrInvalidArgument + ": metadata spec must be " + MetadataSpec)
	}
	if m.Name == "" || m.Symbol == "" {
		panic(ErrInvalidArgument + ": metadata name and symbol are required")
	}
	checkReference(m.Reference, m.ReferenceHash)
}

func (m *TokenMetadata) checkValid() {
	checkReference(m.Reference, m.ReferenceHash)
	if m.MediaHash != nil && m.Media == "" {
		panic(ErrInvalidArgument + ": media hash requires media")
	}
}

// checkReference enforces that an off-chain reference and its integrity
// hash come together and that the hash has the expected length.
func checkReference(reference string, hash Base58Bytes) {
	if (reference == "") != (hash == nil) {
		panic(ErrInvalidArgument + ": reference and reference hash must come together")
	}
	if hash != nil && len(hash) != referenceHashLength {
		panic(ErrInvalidArgument + ": reference hash must be 32 bytes")
	}
}

// getContractMetadata returns the collection metadata and panics if the
// contract was not deployed.
func getContractMetadata(s host.Storage) ContractMetadata {
	var m ContractMetadata
	if !common.GetSerialized(s, []byte{prefixContractMetadata}, &m) {
		panic(ErrNotInitialized)
	}
	return m
}

// Metadata returns the collection metadata.
func Metadata(env host.Env) ContractMetadata {
	return getContractMetadata(env.Storage())
}

// DefaultMetadata returns placeholder collection metadata for local and
// test deployments.
func DefaultMetadata() ContractMetadata {
	return ContractMetadata{
		Spec:   MetadataSpec,
		Name:   "QSTN NFT",
		Symbol: "QSTN",
	}
}
