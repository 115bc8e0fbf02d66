package core

import "math"

// payload.go is the Payload Dispatcher (C4): it parses an inbound payload,
// identifies its variant tag, and exposes the variant-specific body. An
// unknown tag fails with Unhandled (§4.4).

// SetManagerBody carries the fields of a SET_MANAGER payload.
type SetManagerBody struct {
	Name string
}

// SetIssuerBody carries the fields of a SET_ISSUER payload.
type SetIssuerBody struct {
	Name string
}

// SetAccountBody carries the fields of a SET_ACCOUNT payload.
type SetAccountBody struct {
	Name string
}

// SetEndorsementBody replaces a target account's endorsement list wholesale.
type SetEndorsementBody struct {
	TargetPKey  string
	Endorsement []Attribute
}

// AddImmutableBody appends immutable attributes to an active token.
type AddImmutableBody struct {
	TokenName  string
	Immutables []Attribute
}

// IssueTokenBody mints a new token; IssuerPKey is carried for wire
// compatibility but overwritten by the signer at handling time (§4.6).
type IssueTokenBody struct {
	Identifier  string
	TotalSupply float64
	IssuerPKey  string
}

type wireIssueTokenBody struct {
	Identifier  string
	TotalSupply uint64
	IssuerPKey  string
}

// SetTokenStatusBody flips a token's ACTIVE/INACTIVE status.
type SetTokenStatusBody struct {
	Identifier string
	Status     TokenStatus
}

// TransferBody moves Amount of Identifier from the signer to ReceiverPKey.
type TransferBody struct {
	Identifier   string
	ReceiverPKey string
	Amount       float64
	Timestamp    string
}

type wireTransferBody struct {
	Identifier   string
	ReceiverPKey string
	Amount       uint64
	Timestamp    string
}

// HeartbeatBody triggers the scheduled proportional payout for Identifier's
// holders as of Date.
type HeartbeatBody struct {
	Identifier    string
	ReceiversPKey []string
	Date          string
}

// SetBalanceAttributesBody replaces the attribute list on every named
// balance owned by OwnerPKey.
type SetBalanceAttributesBody struct {
	OwnerPKey   string
	Identifiers []string
	Attributes  []KV
}

// EncodeSetManager, EncodeSetIssuer, ... wrap EncodePayload for callers that
// construct transactions outside this package (the CLI/REST-gateway demos).

func EncodeSetManager(b SetManagerBody) ([]byte, error) { return EncodePayload(TagSetManager, b) }
func EncodeSetIssuer(b SetIssuerBody) ([]byte, error)   { return EncodePayload(TagSetIssuer, b) }
func EncodeSetAccount(b SetAccountBody) ([]byte, error) { return EncodePayload(TagSetAccount, b) }

func EncodeSetEndorsement(b SetEndorsementBody) ([]byte, error) {
	return EncodePayload(TagSetEndorsement, b)
}

func EncodeAddImmutable(b AddImmutableBody) ([]byte, error) {
	return EncodePayload(TagAddImmutable, b)
}

func EncodeIssueToken(b IssueTokenBody) ([]byte, error) {
	return EncodePayload(TagIssueToken, wireIssueTokenBody{
		Identifier:  b.Identifier,
		TotalSupply: math.Float64bits(b.TotalSupply),
		IssuerPKey:  b.IssuerPKey,
	})
}

func EncodeSetTokenStatus(b SetTokenStatusBody) ([]byte, error) {
	return EncodePayload(TagSetTokenStatus, b)
}

func EncodeTransfer(b TransferBody) ([]byte, error) {
	return EncodePayload(TagTransfer, wireTransferBody{
		Identifier:   b.Identifier,
		ReceiverPKey: b.ReceiverPKey,
		Amount:       math.Float64bits(b.Amount),
		Timestamp:    b.Timestamp,
	})
}

func EncodeHeartbeat(b HeartbeatBody) ([]byte, error) { return EncodePayload(TagHeartbeat, b) }

func EncodeSetBalanceAttributes(b SetBalanceAttributesBody) ([]byte, error) {
	return EncodePayload(TagSetBalanceAttributes, b)
}

// Dispatch parses payload and decodes its variant-specific body, returning
// the decoded body as an `interface{}` alongside the variant tag. handler.go
// type-switches on the body to reach its concrete type. An unrecognized
// tag fails with Unhandled.
func Dispatch(payload []byte) (Tag, interface{}, error) {
	env, err := DecodeEnvelope(payload)
	if err != nil {
		return "", nil, err
	}
	tag := Tag(env.Tag)

	switch tag {
	case TagSetManager:
		var b SetManagerBody
		if err := decodeBody(env.Body, &b); err != nil {
			return tag, nil, err
		}
		return tag, b, nil
	case TagSetIssuer:
		var b SetIssuerBody
		if err := decodeBody(env.Body, &b); err != nil {
			return tag, nil, err
		}
		return tag, b, nil
	case TagSetAccount:
		var b SetAccountBody
		if err := decodeBody(env.Body, &b); err != nil {
			return tag, nil, err
		}
		return tag, b, nil
	case TagSetEndorsement:
		var b SetEndorsementBody
		if err := decodeBody(env.Body, &b); err != nil {
			return tag, nil, err
		}
		return tag, b, nil
	case TagAddImmutable:
		var b AddImmutableBody
		if err := decodeBody(env.Body, &b); err != nil {
			return tag, nil, err
		}
		return tag, b, nil
	case TagIssueToken:
		var w wireIssueTokenBody
		if err := decodeBody(env.Body, &w); err != nil {
			return tag, nil, err
		}
		return tag, IssueTokenBody{
			Identifier:  w.Identifier,
			TotalSupply: math.Float64frombits(w.TotalSupply),
			IssuerPKey:  w.IssuerPKey,
		}, nil
	case TagSetTokenStatus:
		var b SetTokenStatusBody
		if err := decodeBody(env.Body, &b); err != nil {
			return tag, nil, err
		}
		return tag, b, nil
	case TagTransfer:
		var w wireTransferBody
		if err := decodeBody(env.Body, &w); err != nil {
			return tag, nil, err
		}
		return tag, TransferBody{
			Identifier:   w.Identifier,
			ReceiverPKey: w.ReceiverPKey,
			Amount:       math.Float64frombits(w.Amount),
			Timestamp:    w.Timestamp,
		}, nil
	case TagHeartbeat:
		var b HeartbeatBody
		if err := decodeBody(env.Body, &b); err != nil {
			return tag, nil, err
		}
		return tag, b, nil
	case TagSetBalanceAttributes:
		var b SetBalanceAttributesBody
		if err := decodeBody(env.Body, &b); err != nil {
			return tag, nil, err
		}
		return tag, b, nil
	default:
		return tag, nil, errUnhandled("unhandled action: %s", tag)
	}
}
