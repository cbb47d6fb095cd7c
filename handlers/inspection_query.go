package handlers

import (
	"net/http"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"p9e.in/agrogreen/models"
)

// InspectionFilter narrows a status-scoped list. Empty values mean "no
// constraint", never "match empty string". The same filter backs every
// status page; the pages differ only in status value and column set.
type InspectionFilter struct {
	Search       string // case-insensitive substring over the text-field set
	State        string
	Branch       string
	BusinessType string
	ReceiptType  string
	BankName     string
}

// ParseInspectionFilter reads the filter from list-endpoint query params.
func ParseInspectionFilter(r *http.Request) InspectionFilter {
	q := r.URL.Query()
	return InspectionFilter{
		Search:       q.Get("search"),
		State:        q.Get("state"),
		Branch:       q.Get("branch"),
		BusinessType: q.Get("businessType"),
		ReceiptType:  q.Get("receiptType"),
		BankName:     q.Get("bankName"),
	}
}

// searchFields is the fixed text-field set the substring search covers.
func searchFields(r *models.InspectionRecord) []string {
	return []string{
		r.InspectionCode,
		r.WarehouseCode,
		r.WarehouseName,
		r.State,
		r.Branch,
		r.Location,
		r.BusinessType,
		r.BankName,
		r.ReceiptType,
	}
}

// FilterInspections returns the records whose effective status equals the
// target, narrowed by the filter and sorted ascending by inspectionCode with
// locale-aware comparison. Pure over an in-memory list.
func FilterInspections(records []models.InspectionRecord, status models.InspectionStatus, f InspectionFilter) []models.InspectionRecord {
	needle := strings.ToLower(strings.TrimSpace(f.Search))

	var out []models.InspectionRecord
	for i := range records {
		r := &records[i]
		if r.EffectiveStatus() != status {
			continue
		}
		if !matchesDropdown(r, f) {
			continue
		}
		if needle != "" && !matchesSearch(r, needle) {
			continue
		}
		out = append(out, *r)
	}

	coll := collate.New(language.English, collate.Loose)
	sort.SliceStable(out, func(i, j int) bool {
		return coll.CompareString(out[i].InspectionCode, out[j].InspectionCode) < 0
	})
	return out
}

func matchesDropdown(r *models.InspectionRecord, f InspectionFilter) bool {
	checks := []struct{ want, have string }{
		{f.State, r.State},
		{f.Branch, r.Branch},
		{f.BusinessType, r.BusinessType},
		{f.ReceiptType, r.ReceiptType},
		{f.BankName, r.BankName},
	}
	for _, c := range checks {
		if c.want != "" && !strings.EqualFold(c.want, c.have) {
			return false
		}
	}
	return true
}

func matchesSearch(r *models.InspectionRecord, needle string) bool {
	for _, field := range searchFields(r) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
