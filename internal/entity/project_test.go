package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProjectRecordSubstitutesSentinel(t *testing.T) {
	row := ListingRow{RegistrationNumber: "RP/01/2024/00001", ProjectName: "Green Acres"}

	rec := NewProjectRecord(row, PromoterDetails{Name: "Acme Builders", GSTNumber: ""})

	assert.Equal(t, ProjectRecord{
		RegistrationNumber: "RP/01/2024/00001",
		ProjectName:        "Green Acres",
		PromoterName:       "Acme Builders",
		PromoterAddress:    NotFound,
		GSTNumber:          NotFound,
	}, rec)
	assert.Len(t, rec.Values(), len(Columns))
}
