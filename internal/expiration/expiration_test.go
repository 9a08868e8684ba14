package expiration

import (
	"testing"
	"time"

	"github.com/conso-maestro/conso-sync/internal/model"
)

var today = time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)

func itemExpiringIn(days int) model.InventoryItem {
	d := time.Date(2024, time.March, 10+days, 0, 0, 0, 0, time.UTC)
	return model.InventoryItem{ID: "1", Name: "yaourt", ExpirationDate: d, StorageLocation: model.Fridge}
}

func TestDaysRemaining(t *testing.T) {
	cases := []struct {
		name string
		exp  time.Time
		want int
	}{
		{"same day", time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), 0},
		{"tomorrow", time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC), 1},
		{"expired", time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC), -3},
		{"across month", time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), 22},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := DaysRemaining(today, c.exp); got != c.want {
				t.Errorf("expected %d, got %d", c.want, got)
			}
		})
	}
}

func TestDaysRemaining_UsesLocalCalendarDateOfNow(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	// 00:30 on the 11th in Paris is still the 10th in UTC.
	now := time.Date(2024, time.March, 11, 0, 30, 0, 0, paris)
	exp := time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)
	if got := DaysRemaining(now, exp); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
}

func TestClassify_Boundaries(t *testing.T) {
	cases := []struct {
		days int
		want model.UrgencyLevel
	}{
		{-5, model.Critical},
		{0, model.Critical},
		{2, model.Critical},
		{3, model.Warning},
		{4, model.Warning},
		{5, model.Safe},
		{30, model.Safe},
	}
	for _, c := range cases {
		if got := Classify(itemExpiringIn(c.days), today); got != c.want {
			t.Errorf("days=%d: expected %s, got %s", c.days, c.want, got)
		}
	}
}

func TestSelectResponse_Boundaries(t *testing.T) {
	cases := []struct {
		days int
		want model.ResponseKind
	}{
		{-1, model.ShortNotice},
		{2, model.ShortNotice},
		{4, model.ShortNotice},
		{5, model.LongNotice},
	}
	for _, c := range cases {
		if got := SelectResponse(itemExpiringIn(c.days), today); got != c.want {
			t.Errorf("days=%d: expected %s, got %s", c.days, c.want, got)
		}
	}
}

func TestClassify_IsPure(t *testing.T) {
	item := itemExpiringIn(3)
	first := Classify(item, today)
	for i := 0; i < 10; i++ {
		if got := Classify(item, today); got != first {
			t.Fatalf("expected stable result %s, got %s", first, got)
		}
	}
}

func TestScenario_TomorrowInFridge(t *testing.T) {
	item := itemExpiringIn(1)

	if got := Classify(item, today); got != model.Critical {
		t.Errorf("expected Critical, got %s", got)
	}
	if got := SelectResponse(item, today); got != model.ShortNotice {
		t.Errorf("expected ShortNotice, got %s", got)
	}
	if got := item.StorageLocation.Next(); got != model.Freezer {
		t.Errorf("expected Freezer, got %s", got)
	}
}

func TestFixedClock(t *testing.T) {
	c := FixedClock(today)
	if !c.Now().Equal(today) {
		t.Errorf("expected %s, got %s", today, c.Now())
	}
}
