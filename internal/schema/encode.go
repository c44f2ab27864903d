// internal/schema/encode.go
package schema

import "time"

// Write is one encoded register assignment.
type Write struct {
	Address uint16
	Raw     uint16

	Field       string
	Description string
	Value       float64
}

// Encode converts a named physical setting of the primary table into a register write.
func (f Family) Encode(field string, value float64) (Write, error) {
	if !f.Valid() {
		return Write{}, &SchemaError{Kind: FamilyMismatch, Family: f, Field: f.String()}
	}
	d, ok := f.Schema().Lookup(field)
	if !ok {
		return Write{}, &SchemaError{Kind: UnknownField, Family: f, Field: field}
	}
	return encode(f, d, 0, value)
}

// EncodeGroup converts a named group setting into a register write at the
// absolute address of group index.
func (f Family) EncodeGroup(index int, field string, value float64) (Write, error) {
	if !f.Valid() {
		return Write{}, &SchemaError{Kind: FamilyMismatch, Family: f, Field: f.String()}
	}
	if !validGroup(index) {
		return Write{}, &SchemaError{Kind: InvalidGroup, Family: f, Group: index}
	}
	d, ok := f.GroupSchema().Lookup(field)
	if !ok {
		return Write{}, &SchemaError{Kind: UnknownField, Family: f, Field: field}
	}
	return encode(f, d, f.GroupAddress(index), value)
}

// EncodeClock produces the six clock writes from a single wall-clock reading.
func (f Family) EncodeClock(t time.Time) ([]Write, error) {
	parts := []struct {
		field string
		value int
	}{
		{FieldDatetimeYear, t.Year()},
		{FieldDatetimeMonth, int(t.Month())},
		{FieldDatetimeDay, t.Day()},
		{FieldDatetimeHour, t.Hour()},
		{FieldDatetimeMinute, t.Minute()},
		{FieldDatetimeSecond, t.Second()},
	}

	out := make([]Write, 0, len(parts))
	for _, p := range parts {
		w, err := f.Encode(p.field, float64(p.value))
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func encode(f Family, d RegisterDefinition, offset uint16, value float64) (Write, error) {
	raw, err := d.ToRaw(value)
	if err != nil {
		return Write{}, &SchemaError{Kind: ValueOutOfRange, Family: f, Field: d.Name, Value: value}
	}
	return Write{
		Address:     offset + d.Address,
		Raw:         raw,
		Field:       d.Name,
		Description: d.Description,
		Value:       value,
	}, nil
}
