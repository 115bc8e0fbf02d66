package core

// state.go is the State Facade (C3): the only component that constructs
// addresses. Every other component passes logical identifiers and lets the
// facade call into address.go (C1) and codec.go (C2) on its behalf.

// StateStore is the minimal key/value contract the collaborator's state
// store must satisfy. Keys are the 70-hex-char addresses from §3; values are
// opaque bytes. Implementations must give every write inside a single
// SetMany call an all-or-nothing, atomically-visible commit (§5 ordering
// guarantee) and must never block past their own configured timeout.
type StateStore interface {
	Get(address string) ([]byte, bool, error)
	// SetMany writes every (address, value) pair atomically. Entries sharing
	// a Balance (AccTok/TokAcc) or any other co-written set must always be
	// passed together in one call.
	SetMany(entries map[string][]byte) error
	// PrefixScan returns every (address, value) pair whose address has the
	// given prefix, for range listing by holder or by token (§3).
	PrefixScan(prefix string) (map[string][]byte, error)
}

// StateFacade is the typed wrapper over StateStore used by every operation
// handler (C6). It is the sole place addresses are derived; handlers never
// touch address.go directly.
type StateFacade struct {
	store StateStore
}

func NewStateFacade(store StateStore) *StateFacade {
	return &StateFacade{store: store}
}

func (f *StateFacade) GetManager() (Account, bool, error) {
	return f.getAccountAt(ManagerAddress())
}

func (f *StateFacade) GetIssuer() (Account, bool, error) {
	return f.getAccountAt(IssuerAddress())
}

func (f *StateFacade) GetAccount(pkey string) (Account, bool, error) {
	return f.getAccountAt(AccountAddress(pkey))
}

func (f *StateFacade) getAccountAt(addr string) (Account, bool, error) {
	raw, ok, err := f.store.Get(addr)
	if err != nil {
		return Account{}, false, errInternal("get account: %v", err)
	}
	if !ok {
		return Account{}, false, nil
	}
	acc, err := decodeAccount(raw)
	if err != nil {
		return Account{}, false, err
	}
	return acc, true, nil
}

func (f *StateFacade) GetToken(identifier string) (Token, bool, error) {
	raw, ok, err := f.store.Get(TokenAddress(identifier))
	if err != nil {
		return Token{}, false, errInternal("get token: %v", err)
	}
	if !ok {
		return Token{}, false, nil
	}
	tok, err := decodeToken(raw)
	if err != nil {
		return Token{}, false, err
	}
	return tok, true, nil
}

func (f *StateFacade) GetBalance(pkey, identifier string) (Balance, bool, error) {
	tokenHex := TokenAddress(identifier)
	raw, ok, err := f.store.Get(AccTokAddress(pkey, tokenHex))
	if err != nil {
		return Balance{}, false, errInternal("get balance: %v", err)
	}
	if !ok {
		return Balance{}, false, nil
	}
	bal, err := decodeBalance(raw)
	if err != nil {
		return Balance{}, false, err
	}
	return bal, true, nil
}

// SetManager writes the Manager singleton and per-account address with an
// identical payload (§4.3).
func (f *StateFacade) SetManager(acc Account) error {
	return f.setSingletonAndAccount(ManagerAddress(), acc)
}

// SetIssuer writes the Issuer singleton and per-account address with an
// identical payload.
func (f *StateFacade) SetIssuer(acc Account) error {
	return f.setSingletonAndAccount(IssuerAddress(), acc)
}

func (f *StateFacade) setSingletonAndAccount(singleton string, acc Account) error {
	raw, err := encodeAccount(acc)
	if err != nil {
		return err
	}
	return f.commit(map[string][]byte{
		singleton:               raw,
		AccountAddress(acc.PublicKey): raw,
	})
}

func (f *StateFacade) SetAccount(acc Account) error {
	raw, err := encodeAccount(acc)
	if err != nil {
		return err
	}
	return f.commit(map[string][]byte{AccountAddress(acc.PublicKey): raw})
}

func (f *StateFacade) SetEndorsement(acc Account) error {
	return f.SetAccount(acc)
}

// IssueToken writes the token record and materializes an initial Balance
// for tok.IssuerPKey under both AccTok and TokAcc (§4.3).
func (f *StateFacade) IssueToken(tok Token) error {
	tokenHex := TokenAddress(tok.Name)
	tokenRaw, err := encodeToken(tok)
	if err != nil {
		return err
	}
	initial := Balance{
		OwnerPKey: tok.IssuerPKey,
		Asset:     AssetRef{Name: tok.Name, TotalSupply: tok.TotalSupply},
	}
	balRaw, err := encodeBalance(initial)
	if err != nil {
		return err
	}
	return f.commit(map[string][]byte{
		tokenHex: tokenRaw,
		AccTokAddress(tok.IssuerPKey, tokenHex): balRaw,
		TokAccAddress(tokenHex, tok.IssuerPKey): balRaw,
	})
}

func (f *StateFacade) SetTokenStatus(tok Token) error {
	return f.setTokenRecord(tok)
}

func (f *StateFacade) SetImmutables(tok Token) error {
	return f.setTokenRecord(tok)
}

func (f *StateFacade) setTokenRecord(tok Token) error {
	raw, err := encodeToken(tok)
	if err != nil {
		return err
	}
	return f.commit(map[string][]byte{TokenAddress(tok.Name): raw})
}

// writeBalance is the single encapsulated site that writes a Balance to both
// its AccTok and TokAcc addresses, per the design note in §9.
func (f *StateFacade) writeBalance(entries map[string][]byte, bal Balance) error {
	tokenHex := TokenAddress(bal.Asset.Name)
	raw, err := encodeBalance(bal)
	if err != nil {
		return err
	}
	entries[AccTokAddress(bal.OwnerPKey, tokenHex)] = raw
	entries[TokAccAddress(tokenHex, bal.OwnerPKey)] = raw
	return nil
}

func (f *StateFacade) SetBalance(bal Balance) error {
	entries := map[string][]byte{}
	if err := f.writeBalance(entries, bal); err != nil {
		return err
	}
	return f.commit(entries)
}

// Transfer mutates sender and receiver balances and appends a Transfer
// event, per §4.6. infiniteToken suppresses the sender debit; every call
// site in this processor passes false (see §9's forward-compatibility
// note) — handleTransfer and handleHeartbeat in handler.go both pass the
// literal false.
func (f *StateFacade) Transfer(tr Transfer, infiniteToken bool) error {
	senderBal, ok, err := f.GetBalance(tr.SenderPKey, tr.Asset.Name)
	if err != nil {
		return err
	}
	if !ok {
		return errInternal("transfer: sender has no balance for %s", tr.Asset.Name)
	}

	receiverBal, ok, err := f.GetBalance(tr.ReceiverPKey, tr.Asset.Name)
	if err != nil {
		return err
	}
	if !ok {
		receiverBal = Balance{
			OwnerPKey: tr.ReceiverPKey,
			Asset:     AssetRef{Name: tr.Asset.Name, TotalSupply: 0},
		}
	}

	if !infiniteToken {
		senderBal.Asset.TotalSupply -= tr.Asset.TotalSupply
	}
	receiverBal.Asset.TotalSupply += tr.Asset.TotalSupply

	entries := map[string][]byte{}
	if err := f.writeBalance(entries, senderBal); err != nil {
		return err
	}
	if err := f.writeBalance(entries, receiverBal); err != nil {
		return err
	}

	tokenHex := TokenAddress(tr.Asset.Name)
	eventRaw, err := encodeTransfer(tr)
	if err != nil {
		return err
	}
	entries[TransferAddress(tokenHex, tr.SenderPKey, tr.ReceiverPKey, tr.Date)] = eventRaw

	return f.commit(entries)
}

func (f *StateFacade) commit(entries map[string][]byte) error {
	if err := f.store.SetMany(entries); err != nil {
		return errInternal("state commit: %v", err)
	}
	return nil
}

// ListAccounts returns every registered Account, a read-only helper built
// on the prefix-listing invariant of §3.
func (f *StateFacade) ListAccounts() ([]Account, error) {
	raw, err := f.store.PrefixScan(AccountListPrefix())
	if err != nil {
		return nil, errInternal("list accounts: %v", err)
	}
	accs := make([]Account, 0, len(raw))
	for _, v := range raw {
		acc, err := decodeAccount(v)
		if err != nil {
			return nil, err
		}
		accs = append(accs, acc)
	}
	return accs, nil
}

// ListTokens returns every issued Token.
func (f *StateFacade) ListTokens() ([]Token, error) {
	raw, err := f.store.PrefixScan(TokenListPrefix())
	if err != nil {
		return nil, errInternal("list tokens: %v", err)
	}
	toks := make([]Token, 0, len(raw))
	for _, v := range raw {
		tok, err := decodeToken(v)
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

// TokensHeldBy lists the balances of every token a holder has touched.
func (f *StateFacade) TokensHeldBy(pkey string) ([]Balance, error) {
	raw, err := f.store.PrefixScan(AccountTokensPrefix(pkey))
	if err != nil {
		return nil, errInternal("list holder tokens: %v", err)
	}
	return decodeBalances(raw)
}

// HoldersOf lists the balances of every holder of a token.
func (f *StateFacade) HoldersOf(identifier string) ([]Balance, error) {
	raw, err := f.store.PrefixScan(TokenHoldersPrefix(TokenAddress(identifier)))
	if err != nil {
		return nil, errInternal("list token holders: %v", err)
	}
	return decodeBalances(raw)
}

func decodeBalances(raw map[string][]byte) ([]Balance, error) {
	bals := make([]Balance, 0, len(raw))
	for _, v := range raw {
		bal, err := decodeBalance(v)
		if err != nil {
			return nil, err
		}
		bals = append(bals, bal)
	}
	return bals, nil
}
