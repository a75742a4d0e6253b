// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 Groupcraft Authors

package composer

import (
	"errors"
	"strings"
	"testing"

	"github.com/algorand/go-algorand-sdk/v2/types"
)

func TestFee_MinFeeFloor(t *testing.T) {
	// Zero fee-per-byte: the computed fee is 0 and must be floored.
	txn, err := buildPayment(payTo(testAddr(1), testAddr(2), 100), testParams(), DefaultValidityWindow)
	if err != nil {
		t.Fatalf("buildPayment: %v", err)
	}
	if txn.Fee != 1000 {
		t.Errorf("Fee = %d, want min fee 1000", txn.Fee)
	}
}

func TestFee_ScalesWithSize(t *testing.T) {
	sp := testParams()
	sp.Fee = 10 // per byte
	txn, err := buildPayment(payTo(testAddr(1), testAddr(2), 100), sp, DefaultValidityWindow)
	if err != nil {
		t.Fatalf("buildPayment: %v", err)
	}
	// An encoded signed payment is well over 100 bytes.
	if txn.Fee <= 1000 {
		t.Errorf("Fee = %d, want size-scaled fee above the min fee", txn.Fee)
	}
}

func TestFee_StaticFeeUsedVerbatim(t *testing.T) {
	static := types.MicroAlgos(42) // below min fee, still used as-is
	pay := payTo(testAddr(1), testAddr(2), 100)
	pay.StaticFee = &static

	txn, err := buildPayment(pay, testParams(), DefaultValidityWindow)
	if err != nil {
		t.Fatalf("buildPayment: %v", err)
	}
	if txn.Fee != 42 {
		t.Errorf("Fee = %d, want static fee 42", txn.Fee)
	}
}

func TestFee_ExtraFeeAddedAfterFloor(t *testing.T) {
	extra := types.MicroAlgos(500)
	pay := payTo(testAddr(1), testAddr(2), 100)
	pay.ExtraFee = &extra

	txn, err := buildPayment(pay, testParams(), DefaultValidityWindow)
	if err != nil {
		t.Fatalf("buildPayment: %v", err)
	}
	if txn.Fee != 1500 {
		t.Errorf("Fee = %d, want 1500 (min fee + extra)", txn.Fee)
	}
}

func TestFee_StaticAndExtraConflict(t *testing.T) {
	static := types.MicroAlgos(2000)
	extra := types.MicroAlgos(500)
	pay := payTo(testAddr(1), testAddr(2), 100)
	pay.StaticFee = &static
	pay.ExtraFee = &extra

	if _, err := buildPayment(pay, testParams(), DefaultValidityWindow); !errors.Is(err, ErrFeeConflict) {
		t.Fatalf("buildPayment = %v, want ErrFeeConflict", err)
	}
}

func TestFee_MaxFeeCeilingReportsBothAmounts(t *testing.T) {
	ceiling := types.MicroAlgos(999)
	pay := payTo(testAddr(1), testAddr(2), 100)
	pay.MaxFee = &ceiling

	_, err := buildPayment(pay, testParams(), DefaultValidityWindow)
	if !errors.Is(err, ErrFeeExceedsMax) {
		t.Fatalf("buildPayment = %v, want ErrFeeExceedsMax", err)
	}
	if !strings.Contains(err.Error(), "1000") || !strings.Contains(err.Error(), "999") {
		t.Errorf("error %q should name the computed fee and the ceiling", err)
	}
}

func TestFee_MaxFeeAllowsEqualFee(t *testing.T) {
	ceiling := types.MicroAlgos(1000)
	pay := payTo(testAddr(1), testAddr(2), 100)
	pay.MaxFee = &ceiling

	txn, err := buildPayment(pay, testParams(), DefaultValidityWindow)
	if err != nil {
		t.Fatalf("buildPayment: %v", err)
	}
	if txn.Fee != 1000 {
		t.Errorf("Fee = %d, want 1000", txn.Fee)
	}
}

func TestValidity_DefaultWindow(t *testing.T) {
	txn, err := buildPayment(payTo(testAddr(1), testAddr(2), 100), testParams(), DefaultValidityWindow)
	if err != nil {
		t.Fatalf("buildPayment: %v", err)
	}
	if txn.FirstValid != 1000 {
		t.Errorf("FirstValid = %d, want network first round 1000", txn.FirstValid)
	}
	if txn.LastValid != 1010 {
		t.Errorf("LastValid = %d, want 1010", txn.LastValid)
	}
}

func TestValidity_IntentWindowWins(t *testing.T) {
	window := uint64(50)
	pay := payTo(testAddr(1), testAddr(2), 100)
	pay.ValidityWindow = &window

	txn, err := buildPayment(pay, testParams(), DefaultValidityWindow)
	if err != nil {
		t.Fatalf("buildPayment: %v", err)
	}
	if txn.LastValid != 1050 {
		t.Errorf("LastValid = %d, want 1050", txn.LastValid)
	}
}

func TestValidity_ExplicitLastValidWinsOverWindow(t *testing.T) {
	window := uint64(50)
	last := uint64(1234)
	pay := payTo(testAddr(1), testAddr(2), 100)
	pay.ValidityWindow = &window
	pay.LastValid = &last

	txn, err := buildPayment(pay, testParams(), DefaultValidityWindow)
	if err != nil {
		t.Fatalf("buildPayment: %v", err)
	}
	if txn.LastValid != 1234 {
		t.Errorf("LastValid = %d, want explicit 1234", txn.LastValid)
	}
}

func TestValidity_ExplicitFirstValidShiftsWindow(t *testing.T) {
	first := uint64(2000)
	pay := payTo(testAddr(1), testAddr(2), 100)
	pay.FirstValid = &first

	txn, err := buildPayment(pay, testParams(), DefaultValidityWindow)
	if err != nil {
		t.Fatalf("buildPayment: %v", err)
	}
	if txn.FirstValid != 2000 || txn.LastValid != 2010 {
		t.Errorf("validity = [%d, %d], want [2000, 2010]", txn.FirstValid, txn.LastValid)
	}
}

func TestCommon_NoteLeaseRekeyApplied(t *testing.T) {
	pay := payTo(testAddr(1), testAddr(2), 100)
	pay.Note = []byte("invoice 42")
	pay.Lease = [32]byte{1, 2, 3}
	pay.RekeyTo = testAddr(9)

	txn, err := buildPayment(pay, testParams(), DefaultValidityWindow)
	if err != nil {
		t.Fatalf("buildPayment: %v", err)
	}
	if string(txn.Note) != "invoice 42" {
		t.Errorf("Note = %q", txn.Note)
	}
	if txn.Lease != pay.Lease {
		t.Error("Lease not applied")
	}
	if txn.RekeyTo != testAddr(9) {
		t.Error("RekeyTo not applied")
	}
}
