package duplicates

import (
	"strings"

	dErrors "backoffice/pkg/domain-errors"

	"backoffice/internal/integrations/accounting"
)

// Query names the candidate identifiers to look for. At least one is required.
type Query struct {
	NationalID string `json:"nationalId"`
	Email      string `json:"email"`
}

// Normalize trims both identifiers.
func (q *Query) Normalize() {
	q.NationalID = strings.TrimSpace(q.NationalID)
	q.Email = strings.TrimSpace(q.Email)
}

// Validate rejects a query with no identifier.
func (q *Query) Validate() error {
	if q.NationalID == "" && q.Email == "" {
		return dErrors.New(dErrors.CodeBadRequest, "nationalId or email is required")
	}
	return nil
}

// searchValue is the single value sent to the accounting search; the national
// id wins when both are present.
func (q Query) searchValue() string {
	if q.NationalID != "" {
		return q.NationalID
	}
	return q.Email
}

// AccountingResult is the outcome of scanning the accounting search answer.
type AccountingResult struct {
	Exists             bool                `json:"exists"`
	ExistsByNationalID bool                `json:"existsByNationalId"`
	ExistsByEmail      bool                `json:"existsByEmail"`
	Matched            *accounting.Contact `json:"matchedRecord,omitempty"`
}

// ESignResult is the outcome of the e-signature search.
type ESignResult struct {
	Exists bool `json:"exists"`
	Count  int  `json:"count"`
}

// Report combines both lookups. A failed lookup leaves its result nil and
// sets its error; callers must not read a nil result as "no match".
type Report struct {
	Accounting    *AccountingResult
	AccountingErr error
	ESign         *ESignResult
	ESignErr      error
}

// Scan applies the match rules to contacts in one full pass: every record is
// inspected so both flags are accurate, and the last match is kept.
func Scan(contacts []accounting.Contact, q Query) *AccountingResult {
	res := &AccountingResult{}
	for i := range contacts {
		byID := contacts[i].MatchesNationalID(q.NationalID)
		byEmail := contacts[i].MatchesEmail(q.Email)
		if !byID && !byEmail {
			continue
		}
		matched := contacts[i]
		res.Matched = &matched
		res.ExistsByNationalID = res.ExistsByNationalID || byID
		res.ExistsByEmail = res.ExistsByEmail || byEmail
	}
	res.Exists = res.Matched != nil
	return res
}
