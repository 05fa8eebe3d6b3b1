package accounting

import (
	"sort"
	"time"
)

// ContactView is the flat row the back office shows for an accounting
// contact.
type ContactView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Document   string `json:"document"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	City       string `json:"city"`
	Address    string `json:"address"`
	CreatedAt  string `json:"createdAt"`
}

var creationLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", time.DateOnly}

// Directory flattens contacts and sorts them newest first. Contacts without a
// readable creation date go last, in their original order.
func Directory(contacts []Contact) []ContactView {
	type row struct {
		view    ContactView
		created time.Time
	}
	rows := make([]row, 0, len(contacts))
	for _, c := range contacts {
		v := ContactView{
			ID:        c.ID.String(),
			Name:      c.Name,
			Document:  c.Identification,
			Email:     c.Email,
			Phone:     string(c.PhonePrimary),
			CreatedAt: c.CreationDate,
		}
		if c.Address != nil {
			v.Department = c.Address.Department
			v.City = c.Address.City
			v.Address = c.Address.Address
		}
		rows = append(rows, row{view: v, created: parseCreation(c.CreationDate)})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].created.After(rows[j].created)
	})

	out := make([]ContactView, len(rows))
	for i, r := range rows {
		out[i] = r.view
	}
	return out
}

func parseCreation(s string) time.Time {
	for _, layout := range creationLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
