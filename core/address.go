package core

import (
	"crypto/sha512"
	"encoding/hex"
)

// address.go is the Address Deriver (C1): pure functions mapping logical
// identifiers to fixed-length hex state addresses, exactly as tabulated in
// spec §3. Hashing happens with SHA-512 and every slice below is a hex
// character slice, not a byte slice — get this wrong and two replicas will
// derive different addresses from identical inputs.

const (
	entityAccount = "01"
	entityToken   = "02"
	entityManager = "03"
	entityIssuer  = "04"

	relationAccTok    = "51"
	relationTokAcc    = "52"
	relationTransfer  = "53"
)

// hashHex returns the lowercase hex SHA-512 digest of s.
func hashHex(s string) string {
	sum := sha512.Sum512([]byte(s))
	return hex.EncodeToString(sum[:])
}

// addressPrefix is PREFIX = H("da")[0:6], the family namespace for every
// address this processor ever derives.
var addressPrefix = hashHex("da")[:6]

// ManagerAddress returns the Manager singleton address.
func ManagerAddress() string {
	return addressPrefix + hashHex(entityManager)[:64]
}

// IssuerAddress returns the Issuer singleton address.
func IssuerAddress() string {
	return addressPrefix + hashHex(entityIssuer)[:64]
}

// AccountAddress derives the per-account address from a public key.
func AccountAddress(pkey string) string {
	return addressPrefix + entityAccount + hashHex(pkey)[:62]
}

// AccountListPrefix is the proper prefix under which every Account address
// lives; listing by this prefix enumerates all accounts.
func AccountListPrefix() string {
	return addressPrefix + entityAccount
}

// TokenAddress derives the address of a Token record from its identifier
// (the Token's Name, which doubles as its unique id).
func TokenAddress(identifier string) string {
	return addressPrefix + entityToken + hashHex(identifier)[:62]
}

// TokenListPrefix enumerates every issued Token.
func TokenListPrefix() string {
	return addressPrefix + entityToken
}

// AccTokAddress derives the address that stores a Balance indexed by
// (account, token). tokenHex is the already-derived TokenAddress.
func AccTokAddress(pkey, tokenHex string) string {
	return addressPrefix + relationAccTok + entityAccount + hashHex(pkey)[:30] + entityToken + tokenHex[:28]
}

// AccountTokensPrefix lists every token a given account holds a balance of.
func AccountTokensPrefix(pkey string) string {
	return addressPrefix + relationAccTok + entityAccount + hashHex(pkey)[:30]
}

// TokAccAddress derives the address that stores the same Balance indexed by
// (token, account) — the denormalized twin of AccTokAddress.
func TokAccAddress(tokenHex, pkey string) string {
	return addressPrefix + relationTokAcc + entityToken + tokenHex[:28] + entityAccount + hashHex(pkey)[:30]
}

// TokenHoldersPrefix lists every holder of a given token.
func TokenHoldersPrefix(tokenHex string) string {
	return addressPrefix + relationTokAcc + entityToken + tokenHex[:28]
}

// TransferAddress derives the append-only event address for a transfer of
// tokenHex from `from` to `to` at the given decimal-seconds timestamp
// string. ts is sliced lexically (first 10 hex chars as written), never
// parsed as a number. A from, to or ts shorter than its slice width is used
// whole, which yields an address shorter than 70 chars.
func TransferAddress(tokenHex, from, to, ts string) string {
	return addressPrefix + relationTransfer +
		entityToken + tokenHex[:18] +
		entityAccount + leading(from, 14) +
		entityAccount + leading(to, 14) +
		leading(ts, 10)
}

// leading returns the first n characters of s, or all of s when it is
// shorter.
func leading(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

// TokenTransfersPrefix lists every transfer event recorded for a token.
func TokenTransfersPrefix(tokenHex string) string {
	return addressPrefix + relationTransfer + entityToken + tokenHex[:18]
}
