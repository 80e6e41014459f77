package extractor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/rera-scraper/internal/entity"
)

var (
	ErrNoDocument        = errors.New("no document to extract from")
	ErrContainerNotFound = errors.New("detail container not found")
	ErrExtraction        = errors.New("extraction failed")
)

// Field identifies one promoter field on a detail page.
type Field string

const (
	FieldPromoterName Field = "promoter_name"
	FieldAddress      Field = "address"
	FieldGSTNumber    Field = "gst_number"
)

// LabelFamily pairs a field with the phrases that identify the element holding it.
type LabelFamily struct {
	Field    Field
	Primary  string
	Fallback string
}

func (f LabelFamily) matches(text string) bool {
	return strings.Contains(text, f.Primary) || strings.Contains(text, f.Fallback)
}

// DefaultLabelFamilies are the labels used on the registry's promoter tab.
// The fallbacks are broader than the primaries, so "Address" also matches
// "Registered Office Address".
var DefaultLabelFamilies = []LabelFamily{
	{Field: FieldPromoterName, Primary: "Company Name", Fallback: "Promoter Name"},
	{Field: FieldAddress, Primary: "Registered Office Address", Fallback: "Address"},
	{Field: FieldGSTNumber, Primary: "GST No", Fallback: "GST"},
}

// DetailExtractor pulls promoter fields out of a detail page.
type DetailExtractor struct {
	containerSelector string
	fieldSelector     string
	families          []LabelFamily
}

func NewDetailExtractor(containerSelector, fieldSelector string) *DetailExtractor {
	return &DetailExtractor{
		containerSelector: containerSelector,
		fieldSelector:     fieldSelector,
		families:          DefaultLabelFamilies,
	}
}

// Extract scans the field elements of the first container for each label
// family. Each field takes the first element in document order whose text
// contains one of its labels; families are scanned independently, so one
// element may win several fields. Those cases are listed in Overlaps.
func (e *DetailExtractor) Extract(doc *goquery.Document) (details entity.PromoterDetails, err error) {
	defer func() {
		if r := recover(); r != nil {
			details = entity.PromoterDetails{}
			err = fmt.Errorf("%w: %v", ErrExtraction, r)
		}
	}()

	if doc == nil {
		return details, ErrNoDocument
	}

	container := doc.Find(e.containerSelector).First()
	if container.Length() == 0 {
		return details, ErrContainerNotFound
	}

	var texts []string
	container.Find(e.fieldSelector).Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, s.Text())
	})

	owner := make(map[int]Field)
	for _, fam := range e.families {
		idx := firstMatch(texts, fam)
		if idx < 0 {
			continue
		}
		value := LabelValue(texts[idx])
		switch fam.Field {
		case FieldPromoterName:
			details.Name = value
		case FieldAddress:
			details.Address = value
		case FieldGSTNumber:
			details.GSTNumber = value
		}
		if prev, ok := owner[idx]; ok {
			details.Overlaps = append(details.Overlaps, string(prev)+"="+string(fam.Field))
			continue
		}
		owner[idx] = fam.Field
	}

	return details, nil
}

func firstMatch(texts []string, fam LabelFamily) int {
	for i, t := range texts {
		if fam.matches(t) {
			return i
		}
	}
	return -1
}

// LabelValue returns the text after the first colon, trimmed. Text without a
// colon is returned whole, trimmed.
func LabelValue(text string) string {
	if _, after, found := strings.Cut(text, ":"); found {
		return strings.TrimSpace(after)
	}
	return strings.TrimSpace(text)
}
