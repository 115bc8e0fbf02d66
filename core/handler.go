package core

import "sort"

// handler.go is the Operation Handlers component (C6): the top-level Apply
// entrypoint plus one handler per payload variant. Handlers read prerequisite
// entities through the state facade (C3), run the predicates of rules.go
// (C5), and commit the resulting entities back through the facade. Any
// returned error aborts the whole transaction; nothing here retries.

// Apply decodes payload, dispatches on its tag, and runs the matching
// handler with signer as the transaction's signing public key.
func Apply(state *StateFacade, signer string, payload []byte) error {
	tag, body, err := Dispatch(payload)
	if err != nil {
		return err
	}

	switch b := body.(type) {
	case SetManagerBody:
		return handleSetManager(state, signer, b)
	case SetIssuerBody:
		return handleSetIssuer(state, signer, b)
	case SetAccountBody:
		return handleSetAccount(state, signer, b)
	case SetEndorsementBody:
		return handleSetEndorsement(state, signer, b)
	case AddImmutableBody:
		return handleAddImmutable(state, signer, b)
	case IssueTokenBody:
		return handleIssueToken(state, signer, b)
	case SetTokenStatusBody:
		return handleSetTokenStatus(state, signer, b)
	case TransferBody:
		return handleTransfer(state, signer, b)
	case HeartbeatBody:
		return handleHeartbeat(state, signer, b)
	case SetBalanceAttributesBody:
		return handleSetBalanceAttributes(state, signer, b)
	default:
		return errUnhandled("unhandled action: %s", tag)
	}
}

func handleSetManager(state *StateFacade, signer string, b SetManagerBody) error {
	if err := managerAbsent(state); err != nil {
		return err
	}
	return state.SetManager(Account{PublicKey: signer, Name: b.Name})
}

// handleSetIssuer additionally mints the protocol-reserved Cash Token and
// the issuer's initial cash balance, atomically with the Issuer account.
func handleSetIssuer(state *StateFacade, signer string, b SetIssuerBody) error {
	if err := issuerAbsent(state); err != nil {
		return err
	}
	if err := state.SetIssuer(Account{PublicKey: signer, Name: b.Name}); err != nil {
		return err
	}
	return state.IssueToken(Token{
		Name:        CashToken,
		IssuerPKey:  signer,
		TotalSupply: CashTokenInitialSupply,
		Status:      StatusActive,
	})
}

func handleSetAccount(state *StateFacade, signer string, b SetAccountBody) error {
	if err := accountAbsent(state, signer); err != nil {
		return err
	}
	return state.SetAccount(Account{PublicKey: signer, Name: b.Name})
}

func handleSetEndorsement(state *StateFacade, signer string, b SetEndorsementBody) error {
	if err := managerOnly(state, signer); err != nil {
		return err
	}
	target, err := accountExists(state, b.TargetPKey)
	if err != nil {
		return err
	}
	target.Endorsement = b.Endorsement
	return state.SetEndorsement(target)
}

func handleAddImmutable(state *StateFacade, signer string, b AddImmutableBody) error {
	if err := managerOnly(state, signer); err != nil {
		return err
	}
	if len(b.Immutables) == 0 {
		return errBadPayload("add_immutable requires a non-empty immutables list")
	}
	tok, err := tokenExists(state, b.TokenName)
	if err != nil {
		return err
	}
	if err := tokenActive(tok); err != nil {
		return err
	}

	var colliding []string
	for _, incoming := range b.Immutables {
		if hasAttrKey(tok.Immutables, incoming.Key) {
			colliding = append(colliding, incoming.Key)
		}
	}
	if len(colliding) > 0 {
		sort.Strings(colliding)
		return errConflict("duplicate immutable key(s): %v", colliding)
	}

	tok.Immutables = append(tok.Immutables, b.Immutables...)
	return state.SetImmutables(tok)
}

func handleIssueToken(state *StateFacade, signer string, b IssueTokenBody) error {
	if err := managerOnly(state, signer); err != nil {
		return err
	}
	if err := tokenAbsent(state, b.Identifier); err != nil {
		return err
	}
	if err := positiveAmount(b.TotalSupply); err != nil {
		return err
	}
	return state.IssueToken(Token{
		Name:        b.Identifier,
		IssuerPKey:  signer, // client-supplied issuer_pkey is discarded
		TotalSupply: b.TotalSupply,
		Status:      StatusActive,
	})
}

func handleSetTokenStatus(state *StateFacade, signer string, b SetTokenStatusBody) error {
	if err := managerOnly(state, signer); err != nil {
		return err
	}
	tok, err := tokenExists(state, b.Identifier)
	if err != nil {
		return err
	}
	tok.Status = b.Status
	return state.SetTokenStatus(tok)
}

func handleTransfer(state *StateFacade, signer string, b TransferBody) error {
	sender, err := accountExists(state, signer)
	if err != nil {
		return err
	}
	receiver, err := accountExists(state, b.ReceiverPKey)
	if err != nil {
		return err
	}
	tok, err := tokenExists(state, b.Identifier)
	if err != nil {
		return err
	}
	if err := tokenActive(tok); err != nil {
		return err
	}
	if err := positiveAmount(b.Amount); err != nil {
		return err
	}
	if _, err := sufficientBalance(state, signer, b.Identifier, b.Amount); err != nil {
		return err
	}
	if allowed, reason := transferAllowed(receiver, tok); !allowed {
		return errNotEndorsed(reason)
	}

	return state.Transfer(Transfer{
		SenderPKey:   signer,
		SenderName:   sender.Name,
		ReceiverPKey: b.ReceiverPKey,
		ReceiverName: receiver.Name,
		Asset:        AssetRef{Name: tok.Name, TotalSupply: b.Amount},
		Date:         b.Timestamp,
	}, false)
}

// handleHeartbeat runs the N-way proportional payout: for every scheduled
// payment whose calendar date matches b.Date, each listed receiver is paid
// share = receiver_balance(subject token) / subject_token.total_supply *
// amount, drawn from the Cash Token issuer's balance.
func handleHeartbeat(state *StateFacade, signer string, b HeartbeatBody) error {
	issuer, err := issuerExists(state)
	if err != nil {
		return err
	}

	type receiverInfo struct {
		account Account
		balance Balance
	}
	receivers := make([]receiverInfo, 0, len(b.ReceiversPKey))
	for _, pkey := range b.ReceiversPKey {
		acc, err := accountExists(state, pkey)
		if err != nil {
			return err
		}
		bal, ok, err := state.GetBalance(pkey, b.Identifier)
		if err != nil {
			return err
		}
		if !ok {
			return errNotFound("no balance for %s in %s", pkey, b.Identifier)
		}
		receivers = append(receivers, receiverInfo{account: acc, balance: bal})
	}

	cashToken, err := tokenExists(state, CashToken)
	if err != nil {
		return err
	}
	if err := tokenActive(cashToken); err != nil {
		return err
	}

	subjectToken, err := tokenExists(state, b.Identifier)
	if err != nil {
		return err
	}
	if err := tokenActive(subjectToken); err != nil {
		return err
	}

	due, err := dueSchedules(subjectToken, b.Date)
	if err != nil {
		return err
	}

	for _, schedule := range due {
		amount, err := parsePaymentAmount(schedule.Value)
		if err != nil {
			return err
		}
		if _, err := sufficientBalance(state, cashToken.IssuerPKey, CashToken, amount); err != nil {
			return err
		}

		for _, r := range receivers {
			share := r.balance.Asset.TotalSupply / subjectToken.TotalSupply * amount
			if err := state.Transfer(Transfer{
				SenderPKey:   cashToken.IssuerPKey,
				SenderName:   issuer.Name,
				ReceiverPKey: r.account.PublicKey,
				ReceiverName: r.account.Name,
				Asset:        AssetRef{Name: CashToken, TotalSupply: share},
				Date:         b.Date,
			}, false); err != nil {
				return err
			}
		}
	}
	return nil
}

func handleSetBalanceAttributes(state *StateFacade, signer string, b SetBalanceAttributesBody) error {
	for _, identifier := range b.Identifiers {
		bal, ok, err := state.GetBalance(b.OwnerPKey, identifier)
		if err != nil {
			return err
		}
		if !ok {
			return errNotFound("no balance for %s in %s", b.OwnerPKey, identifier)
		}
		bal.Attributes = b.Attributes
		if err := state.SetBalance(bal); err != nil {
			return err
		}
	}
	return nil
}
