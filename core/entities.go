package core

// Entities mirror the data model of §3: Account, Token, Balance and Transfer.
// Monetary fields are IEEE-754 doubles per spec; see codec.go for how they
// survive a canonical binary round trip.

// TokenStatus is the mutable lifecycle flag on a Token.
type TokenStatus string

const (
	StatusActive   TokenStatus = "ACTIVE"
	StatusInactive TokenStatus = "INACTIVE"
)

// KV is the innermost {key, value} pair used by the nested attribute value
// lists (§3: "Attribute is {key, value: list<{key,value:string}>}").
type KV struct {
	Key   string
	Value string
}

// Attribute is a one-level-nested key/value tag attached to Accounts (as
// endorsement) and Tokens (as attributes/immutables).
type Attribute struct {
	Key   string
	Value []KV
}

// Account is created by SET_MANAGER / SET_ISSUER / SET_ACCOUNT.
type Account struct {
	PublicKey   string
	Name        string
	Endorsement []Attribute
}

// AssetRef is the {name, total_supply} shape embedded in Balance and
// Transfer records — a lightweight reference to a Token, not the Token
// record itself.
type AssetRef struct {
	Name        string
	TotalSupply float64
}

// Token is the fungible asset record. Status defaults to ACTIVE at issue
// time (§ state machine). Attributes/immutables only ever grow.
type Token struct {
	Name        string
	IssuerPKey  string
	TotalSupply float64
	Status      TokenStatus
	Attributes  []Attribute
	Immutables  []Attribute
}

// Balance is the holding of one Token by one Account, stored identically
// under both its AccTok and TokAcc addresses (§3 invariant 2).
type Balance struct {
	OwnerPKey  string
	Asset      AssetRef
	Attributes []KV
}

// Transfer is an append-only event recorded at a Transfer-relation address.
type Transfer struct {
	SenderPKey   string
	SenderName   string
	ReceiverPKey string
	ReceiverName string
	Asset        AssetRef
	Date         string
}

// CashToken is the protocol-reserved token auto-minted at SET_ISSUER time.
const CashToken = "Cash Token"

// CashTokenInitialSupply is the protocol constant minted to the issuer.
const CashTokenInitialSupply = 1_000_000_000.0

func hasAttrKey(attrs []Attribute, key string) bool {
	for _, a := range attrs {
		if a.Key == key {
			return true
		}
	}
	return false
}

func findAttr(attrs []Attribute, key string) (Attribute, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a, true
		}
	}
	return Attribute{}, false
}
