package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func entryEndingAt(end string) InsuranceEntry {
	return InsuranceEntry{
		ID:               "e1",
		InsuranceTakenBy: TakenByWarehouseOwner,
		FirePolicy:       PolicyDetails{EndDate: FlexDate(end)},
		BurglaryPolicy:   PolicyDetails{EndDate: FlexDate(end)},
	}
}

func TestAlertStatusThresholds(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want AlertLevel
	}{
		{"expired yesterday", now.Add(-36 * time.Hour), AlertExpired},
		{"expires today", now, AlertExpiring},
		{"expires in 10 days", now.AddDate(0, 0, 10), AlertExpiring},
		{"expires in 11 days", now.AddDate(0, 0, 11), AlertNone},
		{"expires in a year", now.AddDate(1, 0, 0), AlertNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := entryEndingAt(tt.end.Format(time.RFC3339))
			assert.Equal(t, tt.want, e.AlertStatus(now))
		})
	}
}

func TestAlertStatusUsesSoonestEndDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	e := InsuranceEntry{
		FirePolicy:     PolicyDetails{EndDate: FlexDate(now.AddDate(1, 0, 0).Format(time.RFC3339))},
		BurglaryPolicy: PolicyDetails{EndDate: FlexDate(now.AddDate(0, 0, 3).Format(time.RFC3339))},
	}
	assert.Equal(t, AlertExpiring, e.AlertStatus(now))
}

func TestAlertStatusNoParsableDates(t *testing.T) {
	now := time.Now()
	e := InsuranceEntry{
		FirePolicy:     PolicyDetails{EndDate: ""},
		BurglaryPolicy: PolicyDetails{EndDate: ""},
	}
	assert.Equal(t, AlertNone, e.AlertStatus(now))
}

func TestAlertStatusNeverWeakensAsExpiryNears(t *testing.T) {
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	e := entryEndingAt(end.Format(time.RFC3339))

	rank := map[AlertLevel]int{AlertNone: 0, AlertExpiring: 1, AlertExpired: 2}
	prev := AlertNone
	for d := 30; d >= -5; d-- {
		now := end.AddDate(0, 0, -d)
		got := e.AlertStatus(now)
		if rank[got] < rank[prev] {
			t.Fatalf("alert weakened from %s to %s at %d days before expiry", prev, got, d)
		}
		prev = got
	}
}

func TestFlexDateUnmarshalIsTotal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  FlexDate
	}{
		{"iso string", `"2025-04-01T00:00:00Z"`, "2025-04-01T00:00:00Z"},
		{"date only", `"2025-04-01"`, "2025-04-01T00:00:00Z"},
		{"null", `null`, ""},
		{"garbage string", `"soon"`, ""},
		{"epoch millis", `1743465600000`, "2025-04-01T00:00:00Z"},
		{"bool", `true`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d FlexDate
			err := json.Unmarshal([]byte(tt.input), &d)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
}

func TestFlexDateMarshal(t *testing.T) {
	out, err := json.Marshal(FlexDate(""))
	assert.NoError(t, err)
	assert.Equal(t, "null", string(out))

	out, err = json.Marshal(FlexDate("2025-04-01T00:00:00Z"))
	assert.NoError(t, err)
	assert.Equal(t, `"2025-04-01T00:00:00Z"`, string(out))
}

func TestNormalizeForPersistence(t *testing.T) {
	e := InsuranceEntry{
		ID:               "e1",
		InsuranceTakenBy: "undefined",
		ClientName:       "NaN",
		SelectedBankName: "Canara Bank",
		FirePolicy: PolicyDetails{
			CompanyName: "null",
			Amount:      "500000",
			StartDate:   "01/04/2025",
			EndDate:     "garbage",
		},
	}

	got := e.NormalizeForPersistence()
	assert.Equal(t, "", got.InsuranceTakenBy)
	assert.Equal(t, "", got.ClientName)
	assert.Equal(t, "Canara Bank", got.SelectedBankName)
	assert.Equal(t, "", got.FirePolicy.CompanyName)
	assert.Equal(t, "500000", got.FirePolicy.Amount)
	assert.Equal(t, FlexDate("2025-04-01T00:00:00Z"), got.FirePolicy.StartDate)
	assert.Equal(t, FlexDate(""), got.FirePolicy.EndDate)
}

func TestNormalizeForPersistenceIdempotent(t *testing.T) {
	e := InsuranceEntry{
		InsuranceTakenBy: TakenByClient,
		ClientName:       "Green Agro Traders",
		FirePolicy:       PolicyDetails{Amount: "100000", EndDate: "2025-12-31"},
	}
	once := e.NormalizeForPersistence()
	twice := once.NormalizeForPersistence()
	assert.Equal(t, once, twice)
}

func TestPolicyDetailsEmpty(t *testing.T) {
	assert.True(t, PolicyDetails{}.Empty())
	assert.False(t, PolicyDetails{Amount: "1"}.Empty())
	assert.False(t, PolicyDetails{EndDate: "2025-12-31T00:00:00Z"}.Empty())
}
