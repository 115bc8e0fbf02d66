package core

import "testing"

func mustEncode(t *testing.T, raw []byte, err error) []byte {
	t.Helper()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return raw
}

func TestBootstrappingSecondManagerConflicts(t *testing.T) {
	state := newFacade()
	payload := mustEncode(t, EncodeSetManager(SetManagerBody{Name: "m"}))
	if err := Apply(state, "M", payload); err != nil {
		t.Fatalf("first SET_MANAGER: %v", err)
	}
	if err := Apply(state, "A", payload); KindOf(err) != KindConflict {
		t.Fatalf("second SET_MANAGER kind = %v, want Conflict", KindOf(err))
	}
}

func TestSetIssuerAutoMintsCashToken(t *testing.T) {
	state := newFacade()
	payload := mustEncode(t, EncodeSetIssuer(SetIssuerBody{Name: "i"}))
	if err := Apply(state, "I", payload); err != nil {
		t.Fatalf("SET_ISSUER: %v", err)
	}

	tok, ok, err := state.GetToken(CashToken)
	if err != nil || !ok {
		t.Fatalf("GetToken(Cash Token) = %v, %v, %v", tok, ok, err)
	}
	if tok.TotalSupply != CashTokenInitialSupply || tok.IssuerPKey != "I" || tok.Status != StatusActive {
		t.Fatalf("unexpected cash token: %+v", tok)
	}

	bal, ok, err := state.GetBalance("I", CashToken)
	if err != nil || !ok || bal.Asset.TotalSupply != CashTokenInitialSupply {
		t.Fatalf("issuer cash balance = %+v, %v, %v", bal, ok, err)
	}
}

func setUpManagerIssuerToken(t *testing.T, state *StateFacade, supply float64) {
	t.Helper()
	if err := Apply(state, "M", mustEncode(t, EncodeSetManager(SetManagerBody{Name: "m"}))); err != nil {
		t.Fatalf("SET_MANAGER: %v", err)
	}
	if err := Apply(state, "I", mustEncode(t, EncodeSetIssuer(SetIssuerBody{Name: "i"}))); err != nil {
		t.Fatalf("SET_ISSUER: %v", err)
	}
	if err := Apply(state, "M", mustEncode(t, EncodeIssueToken(IssueTokenBody{Identifier: "Widget", TotalSupply: supply}))); err != nil {
		t.Fatalf("ISSUE_TOKEN: %v", err)
	}
}

func TestMintAndTransferConservesSupply(t *testing.T) {
	state := newFacade()
	setUpManagerIssuerToken(t, state, 100)

	// SET_MANAGER already wrote M's account record.
	if err := Apply(state, "M", mustEncode(t, EncodeSetAccount(SetAccountBody{Name: "manager-as-account"}))); KindOf(err) != KindConflict {
		t.Fatalf("SET_ACCOUNT(M) kind = %v, want Conflict", KindOf(err))
	}
	if err := Apply(state, "B", mustEncode(t, EncodeSetAccount(SetAccountBody{Name: "b"}))); err != nil {
		t.Fatalf("SET_ACCOUNT(B): %v", err)
	}

	// ISSUE_TOKEN's initial balance belongs to the signer (M, overwritten as
	// issuer_pkey), so transfer from M to B.
	payload := mustEncode(t, EncodeTransfer(TransferBody{
		Identifier: "Widget", ReceiverPKey: "B", Amount: 30, Timestamp: "1700000000",
	}))
	if err := Apply(state, "M", payload); err != nil {
		t.Fatalf("TRANSFER: %v", err)
	}

	senderBal, _, err := state.GetBalance("M", "Widget")
	if err != nil {
		t.Fatalf("GetBalance(M): %v", err)
	}
	receiverBal, _, err := state.GetBalance("B", "Widget")
	if err != nil {
		t.Fatalf("GetBalance(B): %v", err)
	}
	if senderBal.Asset.TotalSupply != 70 {
		t.Fatalf("sender balance = %v, want 70", senderBal.Asset.TotalSupply)
	}
	if receiverBal.Asset.TotalSupply != 30 {
		t.Fatalf("receiver balance = %v, want 30", receiverBal.Asset.TotalSupply)
	}
	if senderBal.Asset.TotalSupply+receiverBal.Asset.TotalSupply != 100 {
		t.Fatalf("supply not conserved: %v + %v != 100", senderBal.Asset.TotalSupply, receiverBal.Asset.TotalSupply)
	}
}

func TestTransferDeniedByBlacklist(t *testing.T) {
	state := newFacade()
	setUpManagerIssuerToken(t, state, 100)
	if err := Apply(state, "B", mustEncode(t, EncodeSetAccount(SetAccountBody{Name: "b"}))); err != nil {
		t.Fatalf("SET_ACCOUNT(B): %v", err)
	}
	// SET_MANAGER already wrote M's account record.
	if err := Apply(state, "M", mustEncode(t, EncodeSetAccount(SetAccountBody{Name: "manager-as-account"}))); KindOf(err) != KindConflict {
		t.Fatalf("SET_ACCOUNT(M) kind = %v, want Conflict", KindOf(err))
	}
	endorsePayload := mustEncode(t, EncodeSetEndorsement(SetEndorsementBody{
		TargetPKey:  "B",
		Endorsement: []Attribute{{Key: "blacklist"}},
	}))
	if err := Apply(state, "M", endorsePayload); err != nil {
		t.Fatalf("SET_ENDORSEMENT: %v", err)
	}

	payload := mustEncode(t, EncodeTransfer(TransferBody{
		Identifier: "Widget", ReceiverPKey: "B", Amount: 10, Timestamp: "1700000000",
	}))
	if err := Apply(state, "M", payload); KindOf(err) != KindNotEndorsed {
		t.Fatalf("kind = %v, want NotEndorsed", KindOf(err))
	}
}

func TestTransferInsufficientBalanceIsInvalidAmount(t *testing.T) {
	state := newFacade()
	setUpManagerIssuerToken(t, state, 10)
	if err := Apply(state, "B", mustEncode(t, EncodeSetAccount(SetAccountBody{Name: "b"}))); err != nil {
		t.Fatalf("SET_ACCOUNT(B): %v", err)
	}
	// SET_MANAGER already wrote M's account record.
	if err := Apply(state, "M", mustEncode(t, EncodeSetAccount(SetAccountBody{Name: "manager-as-account"}))); KindOf(err) != KindConflict {
		t.Fatalf("SET_ACCOUNT(M) kind = %v, want Conflict", KindOf(err))
	}

	payload := mustEncode(t, EncodeTransfer(TransferBody{
		Identifier: "Widget", ReceiverPKey: "B", Amount: 10.01, Timestamp: "1700000000",
	}))
	if err := Apply(state, "M", payload); KindOf(err) != KindInvalidAmount {
		t.Fatalf("kind = %v, want InvalidAmount", KindOf(err))
	}
}

func TestSetTokenStatusInactiveBlocksTransfer(t *testing.T) {
	state := newFacade()
	setUpManagerIssuerToken(t, state, 10)
	if err := Apply(state, "B", mustEncode(t, EncodeSetAccount(SetAccountBody{Name: "b"}))); err != nil {
		t.Fatalf("SET_ACCOUNT(B): %v", err)
	}
	// SET_MANAGER already wrote M's account record.
	if err := Apply(state, "M", mustEncode(t, EncodeSetAccount(SetAccountBody{Name: "manager-as-account"}))); KindOf(err) != KindConflict {
		t.Fatalf("SET_ACCOUNT(M) kind = %v, want Conflict", KindOf(err))
	}
	statusPayload := mustEncode(t, EncodeSetTokenStatus(SetTokenStatusBody{Identifier: "Widget", Status: StatusInactive}))
	if err := Apply(state, "M", statusPayload); err != nil {
		t.Fatalf("SET_TOKEN_STATUS: %v", err)
	}

	payload := mustEncode(t, EncodeTransfer(TransferBody{
		Identifier: "Widget", ReceiverPKey: "B", Amount: 1, Timestamp: "1700000000",
	}))
	if err := Apply(state, "M", payload); KindOf(err) != KindInactiveToken {
		t.Fatalf("kind = %v, want InactiveToken", KindOf(err))
	}
}

func TestAddImmutableRejectsDuplicateKeys(t *testing.T) {
	state := newFacade()
	setUpManagerIssuerToken(t, state, 10)

	first := mustEncode(t, EncodeAddImmutable(AddImmutableBody{
		TokenName:  "Widget",
		Immutables: []Attribute{{Key: "endorsement", Value: []KV{{Key: "kyc-tier-1"}}}},
	}))
	if err := Apply(state, "M", first); err != nil {
		t.Fatalf("first ADD_IMMUTABLE: %v", err)
	}

	dup := mustEncode(t, EncodeAddImmutable(AddImmutableBody{
		TokenName:  "Widget",
		Immutables: []Attribute{{Key: "endorsement", Value: []KV{{Key: "kyc-tier-2"}}}},
	}))
	if err := Apply(state, "M", dup); KindOf(err) != KindConflict {
		t.Fatalf("kind = %v, want Conflict", KindOf(err))
	}
}

func TestAddImmutableForbiddenForNonManager(t *testing.T) {
	state := newFacade()
	setUpManagerIssuerToken(t, state, 10)
	payload := mustEncode(t, EncodeAddImmutable(AddImmutableBody{
		TokenName:  "Widget",
		Immutables: []Attribute{{Key: "endorsement"}},
	}))
	if err := Apply(state, "not-the-manager", payload); KindOf(err) != KindForbidden {
		t.Fatalf("kind = %v, want Forbidden", KindOf(err))
	}
}

func TestHeartbeatPayoutIsProportional(t *testing.T) {
	state := newFacade()
	setUpManagerIssuerToken(t, state, 100)

	// Distribute Widget so B holds 70 and C holds 30 of the 100 total supply.
	if err := Apply(state, "B", mustEncode(t, EncodeSetAccount(SetAccountBody{Name: "b"}))); err != nil {
		t.Fatalf("SET_ACCOUNT(B): %v", err)
	}
	if err := Apply(state, "C", mustEncode(t, EncodeSetAccount(SetAccountBody{Name: "c"}))); err != nil {
		t.Fatalf("SET_ACCOUNT(C): %v", err)
	}
	// SET_MANAGER already wrote M's account record.
	if err := Apply(state, "M", mustEncode(t, EncodeSetAccount(SetAccountBody{Name: "manager-as-account"}))); KindOf(err) != KindConflict {
		t.Fatalf("SET_ACCOUNT(M) kind = %v, want Conflict", KindOf(err))
	}
	if err := Apply(state, "M", mustEncode(t, EncodeTransfer(TransferBody{
		Identifier: "Widget", ReceiverPKey: "B", Amount: 70, Timestamp: "1700000000",
	}))); err != nil {
		t.Fatalf("TRANSFER to B: %v", err)
	}
	if err := Apply(state, "M", mustEncode(t, EncodeTransfer(TransferBody{
		Identifier: "Widget", ReceiverPKey: "C", Amount: 30, Timestamp: "1700000000",
	}))); err != nil {
		t.Fatalf("TRANSFER to C: %v", err)
	}

	// "payments" lives in a token's attributes, which no handler exposes a
	// mutating operation for (only immutables grow through ADD_IMMUTABLE);
	// seed it directly through the state facade.
	tok, ok, err := state.GetToken("Widget")
	if err != nil || !ok {
		t.Fatalf("GetToken(Widget): %v, %v", ok, err)
	}
	tok.Attributes = append(tok.Attributes, Attribute{
		Key:   "payments",
		Value: []KV{{Key: "11/14/2023", Value: "100"}},
	})
	if err := state.SetImmutables(tok); err != nil {
		t.Fatalf("seed payments schedule: %v", err)
	}

	heartbeatPayload := mustEncode(t, EncodeHeartbeat(HeartbeatBody{
		Identifier:    "Widget",
		ReceiversPKey: []string{"B", "C"},
		Date:          "1700000000",
	}))
	if err := Apply(state, "I", heartbeatPayload); err != nil {
		t.Fatalf("HEARTBEAT: %v", err)
	}

	bCash, _, err := state.GetBalance("B", CashToken)
	if err != nil || bCash.Asset.TotalSupply != 70 {
		t.Fatalf("B cash balance = %v, %v, want 70", bCash.Asset.TotalSupply, err)
	}
	cCash, _, err := state.GetBalance("C", CashToken)
	if err != nil || cCash.Asset.TotalSupply != 30 {
		t.Fatalf("C cash balance = %v, %v, want 30", cCash.Asset.TotalSupply, err)
	}
	issuerCash, _, err := state.GetBalance("I", CashToken)
	if err != nil || issuerCash.Asset.TotalSupply != CashTokenInitialSupply-100 {
		t.Fatalf("issuer cash balance = %v, %v, want %v", issuerCash.Asset.TotalSupply, err, CashTokenInitialSupply-100)
	}
}

func TestHeartbeatWithoutPaymentsAttributeIsScheduleEmpty(t *testing.T) {
	state := newFacade()
	setUpManagerIssuerToken(t, state, 100)
	// SET_MANAGER already wrote M's account record.
	if err := Apply(state, "M", mustEncode(t, EncodeSetAccount(SetAccountBody{Name: "manager-as-account"}))); KindOf(err) != KindConflict {
		t.Fatalf("SET_ACCOUNT(M) kind = %v, want Conflict", KindOf(err))
	}

	payload := mustEncode(t, EncodeHeartbeat(HeartbeatBody{
		Identifier:    "Widget",
		ReceiversPKey: []string{"M"},
		Date:          "1700000000",
	}))
	if err := Apply(state, "I", payload); KindOf(err) != KindScheduleEmpty {
		t.Fatalf("kind = %v, want ScheduleEmpty (no payments attribute at all)", KindOf(err))
	}
}
