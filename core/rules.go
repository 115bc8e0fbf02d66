package core

import "strings"

// rules.go is the Validation & Rules Engine (C5): shared predicates used by
// every operation handler (C6). Each predicate returns a typed error from
// the §7 taxonomy on failure and nil on success.

// managerOnly requires a Manager to exist and to be the signer.
func managerOnly(state *StateFacade, signer string) error {
	manager, ok, err := state.GetManager()
	if err != nil {
		return err
	}
	if !ok {
		return errForbidden("manager not registered")
	}
	if manager.PublicKey != signer {
		return errForbidden("signer %s does not hold the manager role", signer)
	}
	return nil
}

func issuerExists(state *StateFacade) (Account, error) {
	issuer, ok, err := state.GetIssuer()
	if err != nil {
		return Account{}, err
	}
	if !ok {
		return Account{}, errNotFound("issuer not registered")
	}
	return issuer, nil
}

func managerAbsent(state *StateFacade) error {
	_, ok, err := state.GetManager()
	if err != nil {
		return err
	}
	if ok {
		return errConflict("manager already exists")
	}
	return nil
}

func issuerAbsent(state *StateFacade) error {
	_, ok, err := state.GetIssuer()
	if err != nil {
		return err
	}
	if ok {
		return errConflict("issuer already exists")
	}
	return nil
}

func accountAbsent(state *StateFacade, pkey string) error {
	acc, ok, err := state.GetAccount(pkey)
	if err != nil {
		return err
	}
	if ok {
		return errConflict("account already exists: %s", acc.Name)
	}
	return nil
}

func accountExists(state *StateFacade, pkey string) (Account, error) {
	acc, ok, err := state.GetAccount(pkey)
	if err != nil {
		return Account{}, err
	}
	if !ok {
		return Account{}, errNotFound("account not registered: %s", pkey)
	}
	return acc, nil
}

func tokenAbsent(state *StateFacade, identifier string) error {
	tok, ok, err := state.GetToken(identifier)
	if err != nil {
		return err
	}
	if ok {
		return errConflict("token already issued: %s", tok.Name)
	}
	return nil
}

func tokenExists(state *StateFacade, identifier string) (Token, error) {
	tok, ok, err := state.GetToken(identifier)
	if err != nil {
		return Token{}, err
	}
	if !ok {
		return Token{}, errNotFound("token not issued: %s", identifier)
	}
	return tok, nil
}

func tokenActive(tok Token) error {
	if tok.Status == StatusInactive {
		return errInactiveToken("token has INACTIVE status: %s", tok.Name)
	}
	return nil
}

func positiveAmount(amount float64) error {
	if amount <= 0.0 {
		return errInvalidAmount("amount must be positive, got %v", amount)
	}
	return nil
}

func sufficientBalance(state *StateFacade, pkey, identifier string, amount float64) (Balance, error) {
	bal, ok, err := state.GetBalance(pkey, identifier)
	if err != nil {
		return Balance{}, err
	}
	if !ok {
		return Balance{}, errNotFound("no balance for %s in %s", pkey, identifier)
	}
	if bal.Asset.TotalSupply < amount {
		return Balance{}, errInvalidAmount(
			"not enough balance for the transfer: have %v, need %v", bal.Asset.TotalSupply, amount)
	}
	return bal, nil
}

// transferAllowed implements the ordered endorsement cascade of §4.6. The
// order is load-bearing: rule 2 can allow a transfer that rule 1, evaluated
// afterward, would have denied — do not reorder or collapse these into a
// single lookup table.
func transferAllowed(receiver Account, token Token) (bool, string) {
	for _, item := range receiver.Endorsement {
		if item.Key == "blacklist" {
			return false, "account is on blacklist"
		}
	}

	if basic, ok := findAttr(token.Attributes, "basicattributes"); ok {
		for _, kv := range basic.Value {
			if kv.Key == "transferendorsement" && strings.EqualFold(kv.Value, "true") {
				return true, "transfer is endorsement"
			}
		}
	}

	for _, item := range receiver.Endorsement {
		if item.Key == "whitelist" {
			return true, "account is on whitelist"
		}
	}

	if endorsement, ok := findAttr(token.Immutables, "endorsement"); ok {
		if len(endorsement.Value) == 0 {
			return true, "token endorsement"
		}
		for _, tokenItem := range endorsement.Value {
			for _, accItem := range receiver.Endorsement {
				if accItem.Key == tokenItem.Key {
					return true, "account is endorsement"
				}
			}
		}
		return false, "account is not endorsement"
	}

	return true, "account is endorsement"
}
