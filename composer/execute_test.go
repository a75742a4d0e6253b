// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Groupcraft Authors

package composer

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

// stubSubmitter records its invocation and returns canned confirmations.
type stubSubmitter struct {
	gotRaw        []byte
	gotTxIDs      []string
	gotWaitRounds uint64
	calls         int

	result *SubmitResult
	err    error

	// logsByIndex attaches logs to the confirmation at a group position.
	logsByIndex map[int][][]byte
}

func (s *stubSubmitter) SubmitGroup(ctx context.Context, rawGroup []byte, txIDs []string, waitRounds uint64) (*SubmitResult, error) {
	s.calls++
	s.gotRaw = append([]byte(nil), rawGroup...)
	s.gotTxIDs = txIDs
	s.gotWaitRounds = waitRounds
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	result := &SubmitResult{ConfirmedRound: 1234}
	for i, txid := range txIDs {
		result.Confirmations = append(result.Confirmations, Confirmation{
			TxID:           txid,
			ConfirmedRound: 1234,
			Logs:           s.logsByIndex[i],
		})
	}
	return result, nil
}

func TestExecute_DerivesWaitRoundsFromValidityWindow(t *testing.T) {
	params := &stubParams{sp: testParams()}
	submitter := &stubSubmitter{}
	c := newTestComposer(t, params, WithSubmitter(submitter))

	if err := c.AddPayment(payTo(testAddr(1), testAddr(2), 100)); err != nil {
		t.Fatalf("AddPayment: %v", err)
	}

	result, err := c.Execute(context.Background(), 0)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	// Last valid 1010, network first valid 1000: wait the 11 rounds in which
	// the group could still land.
	if submitter.gotWaitRounds != 11 {
		t.Errorf("waitRounds = %d, want 11", submitter.gotWaitRounds)
	}
	if result.ConfirmedRound != 1234 {
		t.Errorf("ConfirmedRound = %d, want 1234", result.ConfirmedRound)
	}
}

func TestExecute_ExplicitWaitRoundsPassedThrough(t *testing.T) {
	params := &stubParams{sp: testParams()}
	submitter := &stubSubmitter{}
	c := newTestComposer(t, params, WithSubmitter(submitter))

	if err := c.AddPayment(payTo(testAddr(1), testAddr(2), 100)); err != nil {
		t.Fatalf("AddPayment: %v", err)
	}
	if _, err := c.Execute(context.Background(), 4); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if submitter.gotWaitRounds != 4 {
		t.Errorf("waitRounds = %d, want 4", submitter.gotWaitRounds)
	}
}

func TestExecute_SubmitsConcatenatedSignedGroup(t *testing.T) {
	params := &stubParams{sp: testParams()}
	submitter := &stubSubmitter{}
	c := newTestComposer(t, params, WithSubmitter(submitter))

	for i := byte(0); i < 2; i++ {
		if err := c.AddPayment(payTo(testAddr(1), testAddr(10+i), 100)); err != nil {
			t.Fatalf("AddPayment: %v", err)
		}
	}
	if _, err := c.Execute(context.Background(), 1); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	// fakeSigner emits {id, index} per transaction; the raw group is their
	// concatenation in group order.
	want := []byte{1, 0, 1, 1}
	if !bytes.Equal(submitter.gotRaw, want) {
		t.Errorf("raw group = %v, want %v", submitter.gotRaw, want)
	}
	if len(submitter.gotTxIDs) != 2 {
		t.Errorf("got %d txids, want 2", len(submitter.gotTxIDs))
	}
}

func TestExecute_DecodesMethodReturn(t *testing.T) {
	params := &stubParams{sp: testParams()}
	submitter := &stubSubmitter{
		logsByIndex: map[int][][]byte{
			0: {
				[]byte("ordinary log line"),
				append([]byte{0x15, 0x1f, 0x7c, 0x75}, 0, 0, 0, 0, 0, 0, 0, 16),
			},
		},
	}
	c := newTestComposer(t, params, WithSubmitter(submitter))

	call := &MethodCallParams{
		CommonParams:  CommonParams{Sender: testAddr(1)},
		ApplicationID: 42,
		Method:        mustMethod(t, "add(uint64,uint64)uint64"),
		Args:          []MethodArg{ABIValue(uint64(7)), ABIValue(uint64(9))},
	}
	if err := c.AddMethodCall(call); err != nil {
		t.Fatalf("AddMethodCall: %v", err)
	}

	result, err := c.Execute(context.Background(), 1)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(result.MethodResults) != 1 {
		t.Fatalf("got %d method results, want 1", len(result.MethodResults))
	}
	r := result.MethodResults[0]
	if r.DecodeError != nil {
		t.Fatalf("DecodeError = %v", r.DecodeError)
	}
	if got, ok := r.Value.(uint64); !ok || got != 16 {
		t.Errorf("Value = %v (%T), want uint64 16", r.Value, r.Value)
	}
	if r.Method.Name != "add" {
		t.Errorf("Method = %s, want add", r.Method.Name)
	}
}

func TestExecute_VoidMethodSkipsDecoding(t *testing.T) {
	params := &stubParams{sp: testParams()}
	submitter := &stubSubmitter{}
	c := newTestComposer(t, params, WithSubmitter(submitter))

	call := &MethodCallParams{
		CommonParams:  CommonParams{Sender: testAddr(1)},
		ApplicationID: 42,
		Method:        mustMethod(t, "ping()void"),
	}
	if err := c.AddMethodCall(call); err != nil {
		t.Fatalf("AddMethodCall: %v", err)
	}

	result, err := c.Execute(context.Background(), 1)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	r := result.MethodResults[0]
	if r.Value != nil || r.RawValue != nil || r.DecodeError != nil {
		t.Errorf("void method result = %+v, want empty", r)
	}
}

func TestExecute_MissingReturnLogSetsDecodeError(t *testing.T) {
	params := &stubParams{sp: testParams()}
	submitter := &stubSubmitter{} // no logs attached
	c := newTestComposer(t, params, WithSubmitter(submitter))

	call := &MethodCallParams{
		CommonParams:  CommonParams{Sender: testAddr(1)},
		ApplicationID: 42,
		Method:        mustMethod(t, "add(uint64,uint64)uint64"),
		Args:          []MethodArg{ABIValue(uint64(1)), ABIValue(uint64(2))},
	}
	if err := c.AddMethodCall(call); err != nil {
		t.Fatalf("AddMethodCall: %v", err)
	}

	result, err := c.Execute(context.Background(), 1)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.MethodResults[0].DecodeError == nil {
		t.Error("missing return log should surface as a decode error, not a failed execution")
	}
}

func TestExecute_NoSubmitter(t *testing.T) {
	params := &stubParams{sp: testParams()}
	c := newTestComposer(t, params)

	if err := c.AddPayment(payTo(testAddr(1), testAddr(2), 100)); err != nil {
		t.Fatalf("AddPayment: %v", err)
	}
	if _, err := c.Execute(context.Background(), 0); !errors.Is(err, ErrNoSubmitter) {
		t.Fatalf("Execute = %v, want ErrNoSubmitter", err)
	}
}

func TestExecute_SubmitFailurePropagates(t *testing.T) {
	params := &stubParams{sp: testParams()}
	submitter := &stubSubmitter{err: errors.New("overspend")}
	c := newTestComposer(t, params, WithSubmitter(submitter))

	if err := c.AddPayment(payTo(testAddr(1), testAddr(2), 100)); err != nil {
		t.Fatalf("AddPayment: %v", err)
	}
	if _, err := c.Execute(context.Background(), 1); err == nil {
		t.Fatal("expected submit failure to propagate")
	}
}
