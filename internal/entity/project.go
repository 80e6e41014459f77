package entity

// NotFound replaces any promoter field that could not be extracted.
const NotFound = "Not Found"

// ProjectRecord is one output row. Field order is the CSV column order.
type ProjectRecord struct {
	RegistrationNumber string `csv:"RERA Regd. No" json:"registration_number"`
	ProjectName        string `csv:"Project Name" json:"project_name"`
	PromoterName       string `csv:"Promoter Name" json:"promoter_name"`
	PromoterAddress    string `csv:"Address of Promoter" json:"promoter_address"`
	GSTNumber          string `csv:"GST No" json:"gst_number"`
}

// Columns is the fixed header of the tabular output.
var Columns = []string{"RERA Regd. No", "Project Name", "Promoter Name", "Address of Promoter", "GST No"}

// Values returns the record's fields in column order.
func (r ProjectRecord) Values() []string {
	return []string{r.RegistrationNumber, r.ProjectName, r.PromoterName, r.PromoterAddress, r.GSTNumber}
}

// ListingRow is a row read directly off the listing table.
type ListingRow struct {
	RegistrationNumber string
	ProjectName        string
	DetailLink         string
}

// PromoterDetails holds the fields read from a detail page. An empty string
// means the field was not found.
type PromoterDetails struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	GSTNumber string `json:"gst_number"`
	// Overlaps names fields that were satisfied by the same element as an
	// earlier field, e.g. "address=gst_number".
	Overlaps []string `json:"overlaps,omitempty"`
}

// NewProjectRecord combines a listing row with its promoter details,
// substituting NotFound for empty fields.
func NewProjectRecord(row ListingRow, d PromoterDetails) ProjectRecord {
	return ProjectRecord{
		RegistrationNumber: row.RegistrationNumber,
		ProjectName:        row.ProjectName,
		PromoterName:       orNotFound(d.Name),
		PromoterAddress:    orNotFound(d.Address),
		GSTNumber:          orNotFound(d.GSTNumber),
	}
}

func orNotFound(s string) string {
	if s == "" {
		return NotFound
	}
	return s
}
