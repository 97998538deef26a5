package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
)

func TestRecordKey_DocID(t *testing.T) {
	key := model.RecordKey{ProfileID: "p1", RunID: "r1", Module: "InterestAwareness"}

	gt.Value(t, key.DocID()).Equal(key.DocID())
	gt.Number(t, len(key.DocID())).Equal(64)
	gt.Value(t, key.String()).Equal("p1/r1/InterestAwareness")

	// Different splits of the same characters must not collide
	a := model.RecordKey{ProfileID: "p1/r", RunID: "1", Module: "m"}
	b := model.RecordKey{ProfileID: "p1", RunID: "r/1", Module: "m"}
	gt.Value(t, a.DocID()).NotEqual(b.DocID())
}

func TestLatestByModule(t *testing.T) {
	t1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	rec := func(runID string, module types.ModuleName, at time.Time) *model.CanonicalRecord {
		return &model.CanonicalRecord{
			Key:       model.RecordKey{ProfileID: "p1", RunID: runID, Module: module},
			UserID:    "u1",
			Summary:   newSummary(runID, at),
			CreatedAt: at,
		}
	}

	latest := model.LatestByModule([]*model.CanonicalRecord{
		rec("r2", "InterestAwareness", t2),
		rec("r1", "InterestAwareness", t1),
		rec("r3", "RacialPride", t1),
		nil,
	})

	gt.Number(t, len(latest)).Equal(2)
	gt.Value(t, latest["InterestAwareness"].Key.RunID).Equal("r2")
	gt.Value(t, latest["RacialPride"].Key.RunID).Equal("r3")
}
