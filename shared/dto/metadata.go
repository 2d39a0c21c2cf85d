package dto

import (
	"time"

	"stay/shared/constant"
	"stay/shared/model"
	"stay/shared/timezone"
)

// Metadata is the audit block of a response, rendered in the application zone.
// Rows that were never modified omit the modification fields.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at,omitempty"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = stamp(model.CreatedAt)
	m.ModifiedAt = stamp(model.ModifiedAt)
	m.CreatedBy = model.CreatedBy
	m.ModifiedBy = model.ModifiedBy
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return timezone.Format(t, constant.DateFormat)
}
