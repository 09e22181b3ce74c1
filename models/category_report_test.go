package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func strPtr(s string) *string { return &s }

func newTestReport(note *string) *CategoryChangeReport {
	txn := &Transaction{ID: "T1", UserID: "U1", MerchantID: "M1"}
	merchant := &Merchant{ID: "M1", Name: "Coop Pronto"}
	return NewCategoryChangeReport(txn, merchant, "C2", note)
}

func TestNewCategoryChangeReport(t *testing.T) {
	r := newTestReport(strPtr("wrong category"))

	assert.NotEmpty(t, r.ID)
	assert.Equal(t, ReportStatusPending, r.Status)
	assert.Equal(t, "U1", r.UserID)
	assert.Equal(t, "T1", r.TransactionID)
	assert.Equal(t, "M1", r.MerchantID)
	assert.Equal(t, "Coop Pronto", r.MerchantNameSnapshot)
	assert.Nil(t, r.CurrentCategoryIDSnapshot)
	assert.Equal(t, "C2", r.RequestedCategoryID)
	require.NotNil(t, r.UserNote)
	assert.Equal(t, "wrong category", *r.UserNote)
	assert.Nil(t, r.ResolvedAt)
	assert.NoError(t, r.CheckInvariants())
}

func TestNewCategoryChangeReport_SnapshotIsCopied(t *testing.T) {
	cat := "C1"
	txn := &Transaction{ID: "T1", UserID: "U1", MerchantID: "M1", CategoryID: &cat}
	r := NewCategoryChangeReport(txn, &Merchant{ID: "M1", Name: "Shop"}, "C2", nil)

	// 交易之后被改类不影响快照
	newCat := "C2"
	txn.CategoryID = &newCat
	require.NotNil(t, r.CurrentCategoryIDSnapshot)
	assert.Equal(t, "C1", *r.CurrentCategoryIDSnapshot)
	assert.Nil(t, r.UserNote)
}

func TestCategoryChangeReport_Resolve(t *testing.T) {
	r := newTestReport(nil)
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, r.Resolve("A1", ReportStatusApproved, strPtr("confirmed"), at))
	assert.Equal(t, ReportStatusApproved, r.Status)
	assert.Equal(t, "A1", *r.ResolvedByAdminUserID)
	assert.Equal(t, at, *r.ResolvedAt)
	assert.Equal(t, "confirmed", *r.ResolutionNote)
	assert.NoError(t, r.CheckInvariants())

	// 第二次处理失败且记录不变
	before := *r
	err := r.Resolve("A2", ReportStatusRejected, strPtr("changed my mind"), at.Add(time.Hour))
	assert.ErrorIs(t, err, ErrReportAlreadyResolved)
	assert.Equal(t, before, *r)
}

func TestCategoryChangeReport_ResolveWithoutNote(t *testing.T) {
	r := newTestReport(nil)
	require.NoError(t, r.Resolve("A1", ReportStatusRejected, nil, time.Now()))
	require.NotNil(t, r.ResolutionNote)
	assert.Equal(t, "", *r.ResolutionNote)
	assert.NoError(t, r.CheckInvariants())
}

func TestCategoryChangeReport_ResolveInvalidDecision(t *testing.T) {
	r := newTestReport(nil)
	err := r.Resolve("A1", ReportStatusPending, nil, time.Now())
	assert.ErrorIs(t, err, ErrInvalidDecision)
	assert.Equal(t, ReportStatusPending, r.Status)
}

func TestParseDecision(t *testing.T) {
	d, err := ParseDecision("approved")
	require.NoError(t, err)
	assert.Equal(t, ReportStatusApproved, d)

	d, err = ParseDecision(" REJECTED ")
	require.NoError(t, err)
	assert.Equal(t, ReportStatusRejected, d)

	_, err = ParseDecision("PENDING")
	assert.ErrorIs(t, err, ErrInvalidDecision)
	_, err = ParseDecision("")
	assert.ErrorIs(t, err, ErrInvalidDecision)
}

func TestCheckInvariants_Violations(t *testing.T) {
	r := newTestReport(nil)
	r.ResolvedAt = new(time.Time)
	assert.Error(t, r.CheckInvariants())

	r2 := newTestReport(nil)
	r2.Status = ReportStatusApproved
	assert.Error(t, r2.CheckInvariants())

	r3 := newTestReport(nil)
	r3.Status = "ARCHIVED"
	assert.Error(t, r3.CheckInvariants())
}

func TestCategoryChangeReport_WireShape(t *testing.T) {
	r := newTestReport(strPtr("wrong category"))
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var wire map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &wire))
	for _, key := range []string{
		"id", "userId", "transactionId", "merchantId", "merchantNameSnapshot",
		"currentCategoryIdSnapshot", "requestedCategoryId", "userNote", "status",
		"resolvedByAdminUserId", "resolvedAt", "resolutionNote", "createdAt", "updatedAt",
	} {
		assert.Contains(t, wire, key)
	}
	assert.Nil(t, wire["currentCategoryIdSnapshot"])
	assert.Nil(t, wire["resolvedAt"])
	assert.Equal(t, "PENDING", wire["status"])
}

// 任意操作序列下：PENDING ⇔ 处理字段全空，终态 ⇔ 处理字段全非空，且终态不再变化
func TestCategoryChangeReport_StateMachineProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var note *string
		if rapid.Bool().Draw(t, "hasNote") {
			n := rapid.String().Draw(t, "note")
			note = &n
		}
		r := newTestReport(note)

		decisions := rapid.SliceOfN(
			rapid.SampledFrom([]ReportStatus{ReportStatusPending, ReportStatusApproved, ReportStatusRejected}),
			0, 6,
		).Draw(t, "decisions")

		var terminal *CategoryChangeReport
		for i, d := range decisions {
			err := r.Resolve("A1", d, note, time.Unix(int64(i), 0))
			if terminal != nil {
				if err == nil {
					t.Fatalf("resolved twice")
				}
				if *r != *terminal {
					t.Fatalf("terminal report changed")
				}
			}
			if err == nil {
				snapshot := *r
				terminal = &snapshot
			}
			if invErr := r.CheckInvariants(); invErr != nil {
				t.Fatalf("invariant violated: %v", invErr)
			}
		}
		if r.MerchantNameSnapshot != "Coop Pronto" || r.CurrentCategoryIDSnapshot != nil {
			t.Fatalf("snapshot fields changed")
		}
	})
}
