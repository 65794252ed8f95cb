package interchange

import (
	"github.com/alexanderramin/rota/internal/calendar"
	"github.com/alexanderramin/rota/internal/domain"
)

type options struct {
	defaultCode string
}

// Option adjusts how raw documents are validated.
type Option func(*options)

// WithDefaultCode sets the code the catalog must contain. Defaults to
// domain.DefaultShiftCode.
func WithDefaultCode(code string) Option {
	return func(o *options) {
		if code != "" {
			o.defaultCode = code
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{defaultCode: domain.DefaultShiftCode}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// FromRaw validates raw and converts it into a domain document. Structural
// problems are returned together as a *domain.ValidationError.
func FromRaw(raw *RawDocument, opts ...Option) (*domain.Document, error) {
	o := buildOptions(opts)
	if err := domain.NewValidationError(ValidateRawDocument(raw, o.defaultCode)); err != nil {
		return nil, err
	}

	// Dates were checked by validation.
	start, _ := calendar.ParseDate(raw.Metadata.StartDate)
	end, _ := calendar.ParseDate(raw.Metadata.EndDate)

	catalog := domain.NewShiftCatalog()
	for _, e := range raw.Metadata.ShiftCodes.Entries {
		catalog.Set(domain.ShiftCode{ID: e.Code, Name: e.Name, Color: e.Color})
	}

	doc := &domain.Document{
		Metadata: domain.Metadata{
			Title:      raw.Metadata.Title,
			StartDate:  start,
			EndDate:    end,
			ShiftCodes: catalog,
		},
		Employees: make([]*domain.Employee, 0, len(raw.Employees)),
	}

	for _, re := range raw.Employees {
		shifts := domain.NewShiftMap()
		for _, s := range re.Shifts.Entries {
			shifts.Set(s.Date, s.Code)
		}
		doc.Employees = append(doc.Employees, &domain.Employee{
			ID:     *re.ID,
			Name:   re.Name,
			Shifts: shifts,
		})
	}

	return doc, nil
}

// ToRaw mirrors doc into the interchange structure.
func ToRaw(doc *domain.Document) *RawDocument {
	codes := make([]ShiftCodeEntry, 0, doc.Metadata.ShiftCodes.Len())
	for _, sc := range doc.Metadata.ShiftCodes.Codes() {
		codes = append(codes, ShiftCodeEntry{
			Code:         sc.ID,
			RawShiftCode: RawShiftCode{Name: sc.Name, Color: sc.Color},
		})
	}

	raw := &RawDocument{
		Metadata: &RawMetadata{
			Title:      doc.Metadata.Title,
			StartDate:  calendar.FormatDate(doc.Metadata.StartDate),
			EndDate:    calendar.FormatDate(doc.Metadata.EndDate),
			ShiftCodes: NewRawShiftCodes(codes...),
		},
		Employees: make([]RawEmployee, 0, len(doc.Employees)),
	}

	for _, e := range doc.Employees {
		id := e.ID
		entries := make([]ShiftEntry, 0, e.Shifts.Len())
		for _, date := range e.Shifts.Dates() {
			code, _ := e.Shifts.Get(date)
			entries = append(entries, ShiftEntry{Date: date, Code: code})
		}
		raw.Employees = append(raw.Employees, RawEmployee{
			ID:     &id,
			Name:   e.Name,
			Shifts: NewRawShifts(entries...),
		})
	}

	return raw
}
