package core

import (
	"math"

	"github.com/ethereum/go-ethereum/rlp"
)

// codec.go is the Codec (C2): a structured record codec whose wire format is
// bit-for-bit deterministic, built on github.com/ethereum/go-ethereum/rlp,
// the same library used elsewhere in this codebase's lineage for canonical
// block encoding. RLP gives byte-identical output for byte-identical input
// by construction, which is exactly what §4.2/§6 require ("same input ->
// same bytes").
//
// RLP has no native float encoding, so every float64 field crosses the wire
// as its IEEE-754 bit pattern in a uint64 — a lossless, deterministic
// transform (math.Float64bits/Float64frombits), never a decimal
// reformatting that could round differently across platforms.

// Tag identifies the payload variant, the closed set from §4.4.
type Tag string

const (
	TagSetManager            Tag = "SET_MANAGER"
	TagSetIssuer              Tag = "SET_ISSUER"
	TagSetAccount             Tag = "SET_ACCOUNT"
	TagSetEndorsement         Tag = "SET_ENDORSEMENT"
	TagAddImmutable           Tag = "ADD_IMMUTABLE"
	TagIssueToken             Tag = "ISSUE_TOKEN"
	TagSetTokenStatus         Tag = "SET_TOKEN_STATUS"
	TagTransfer               Tag = "TRANSFER"
	TagHeartbeat              Tag = "HEARTBEAT"
	TagSetBalanceAttributes   Tag = "SET_BALANCE_ATTRIBUTES"
)

// Envelope is the tagged-variant wrapper that crosses the wire: a tag plus
// the RLP encoding of the tag-specific body.
type Envelope struct {
	Tag  string
	Body []byte
}

// EncodePayload serializes tag+body into an opaque byte string.
func EncodePayload(tag Tag, body interface{}) ([]byte, error) {
	bodyBytes, err := rlp.EncodeToBytes(body)
	if err != nil {
		return nil, errBadPayload("encode %s body: %v", tag, err)
	}
	return rlp.EncodeToBytes(Envelope{Tag: string(tag), Body: bodyBytes})
}

// DecodeEnvelope extracts the tag and raw body from an opaque payload,
// failing with BadPayload when the bytes don't even parse as an envelope.
func DecodeEnvelope(payload []byte) (Envelope, error) {
	var env Envelope
	if err := rlp.DecodeBytes(payload, &env); err != nil {
		return Envelope{}, errBadPayload("malformed payload: %v", err)
	}
	if env.Tag == "" {
		return Envelope{}, errBadPayload("missing payload tag")
	}
	return env, nil
}

func decodeBody(body []byte, out interface{}) error {
	if err := rlp.DecodeBytes(body, out); err != nil {
		return errBadPayload("malformed payload body: %v", err)
	}
	return nil
}

// ---- wire-level float64 handling -----------------------------------------

// wireAssetRef mirrors AssetRef with TotalSupply carried as its raw bit
// pattern so RLP (which has no float kind) still round-trips it exactly.
type wireAssetRef struct {
	Name        string
	TotalSupply uint64
}

func toWireAsset(a AssetRef) wireAssetRef {
	return wireAssetRef{Name: a.Name, TotalSupply: math.Float64bits(a.TotalSupply)}
}

func fromWireAsset(w wireAssetRef) AssetRef {
	return AssetRef{Name: w.Name, TotalSupply: math.Float64frombits(w.TotalSupply)}
}

type wireToken struct {
	Name        string
	IssuerPKey  string
	TotalSupply uint64
	Status      string
	Attributes  []Attribute
	Immutables  []Attribute
}

func toWireToken(t Token) wireToken {
	return wireToken{
		Name:        t.Name,
		IssuerPKey:  t.IssuerPKey,
		TotalSupply: math.Float64bits(t.TotalSupply),
		Status:      string(t.Status),
		Attributes:  t.Attributes,
		Immutables:  t.Immutables,
	}
}

func fromWireToken(w wireToken) Token {
	return Token{
		Name:        w.Name,
		IssuerPKey:  w.IssuerPKey,
		TotalSupply: math.Float64frombits(w.TotalSupply),
		Status:      TokenStatus(w.Status),
		Attributes:  w.Attributes,
		Immutables:  w.Immutables,
	}
}

type wireBalance struct {
	OwnerPKey  string
	Asset      wireAssetRef
	Attributes []KV
}

func toWireBalance(b Balance) wireBalance {
	return wireBalance{OwnerPKey: b.OwnerPKey, Asset: toWireAsset(b.Asset), Attributes: b.Attributes}
}

func fromWireBalance(w wireBalance) Balance {
	return Balance{OwnerPKey: w.OwnerPKey, Asset: fromWireAsset(w.Asset), Attributes: w.Attributes}
}

type wireTransfer struct {
	SenderPKey   string
	SenderName   string
	ReceiverPKey string
	ReceiverName string
	Asset        wireAssetRef
	Date         string
}

func toWireTransfer(t Transfer) wireTransfer {
	return wireTransfer{
		SenderPKey:   t.SenderPKey,
		SenderName:   t.SenderName,
		ReceiverPKey: t.ReceiverPKey,
		ReceiverName: t.ReceiverName,
		Asset:        toWireAsset(t.Asset),
		Date:         t.Date,
	}
}

func fromWireTransfer(w wireTransfer) Transfer {
	return Transfer{
		SenderPKey:   w.SenderPKey,
		SenderName:   w.SenderName,
		ReceiverPKey: w.ReceiverPKey,
		ReceiverName: w.ReceiverName,
		Asset:        fromWireAsset(w.Asset),
		Date:         w.Date,
	}
}

// ---- entity (de)serialization used by the state facade -------------------

func encodeAccount(a Account) ([]byte, error) {
	b, err := rlp.EncodeToBytes(a)
	if err != nil {
		return nil, errInternal("encode account: %v", err)
	}
	return b, nil
}

func decodeAccount(data []byte) (Account, error) {
	var a Account
	if err := rlp.DecodeBytes(data, &a); err != nil {
		return Account{}, errInternal("decode account: %v", err)
	}
	return a, nil
}

func encodeToken(t Token) ([]byte, error) {
	b, err := rlp.EncodeToBytes(toWireToken(t))
	if err != nil {
		return nil, errInternal("encode token: %v", err)
	}
	return b, nil
}

func decodeToken(data []byte) (Token, error) {
	var w wireToken
	if err := rlp.DecodeBytes(data, &w); err != nil {
		return Token{}, errInternal("decode token: %v", err)
	}
	return fromWireToken(w), nil
}

func encodeBalance(b Balance) ([]byte, error) {
	raw, err := rlp.EncodeToBytes(toWireBalance(b))
	if err != nil {
		return nil, errInternal("encode balance: %v", err)
	}
	return raw, nil
}

func decodeBalance(data []byte) (Balance, error) {
	var w wireBalance
	if err := rlp.DecodeBytes(data, &w); err != nil {
		return Balance{}, errInternal("decode balance: %v", err)
	}
	return fromWireBalance(w), nil
}

func encodeTransfer(t Transfer) ([]byte, error) {
	raw, err := rlp.EncodeToBytes(toWireTransfer(t))
	if err != nil {
		return nil, errInternal("encode transfer: %v", err)
	}
	return raw, nil
}

func decodeTransfer(data []byte) (Transfer, error) {
	var w wireTransfer
	if err := rlp.DecodeBytes(data, &w); err != nil {
		return Transfer{}, errInternal("decode transfer: %v", err)
	}
	return fromWireTransfer(w), nil
}
