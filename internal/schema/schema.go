// internal/schema/schema.go
package schema

// RegisterDefinition maps one 16-bit register to a physical value.
// Definitions live in package-level tables and are never mutated.
type RegisterDefinition struct {
	Address     uint16
	Name        string
	Description string

	ToRaw   func(float64) (uint16, error)
	FromRaw func(uint16) float64
}

func def(addr uint16, name, desc string, c codec) RegisterDefinition {
	return RegisterDefinition{
		Address:     addr,
		Name:        name,
		Description: desc,
		ToRaw:       c.to,
		FromRaw:     c.from,
	}
}

// Schema is an ordered register table for one family or group layout.
type Schema struct {
	fields   []RegisterDefinition
	byName   map[string]int
	optional map[string]bool
}

func newSchema(defs ...RegisterDefinition) *Schema {
	s := &Schema{
		fields:   defs,
		byName:   make(map[string]int, len(defs)),
		optional: map[string]bool{},
	}
	for i, d := range defs {
		if _, dup := s.byName[d.Name]; dup {
			panic("schema: duplicate field " + d.Name)
		}
		s.byName[d.Name] = i
	}
	return s
}

// withOptional marks fields that only some families carry.
func (s *Schema) withOptional(names ...string) *Schema {
	for _, n := range names {
		if _, ok := s.byName[n]; !ok {
			panic("schema: optional field not defined: " + n)
		}
		s.optional[n] = true
	}
	return s
}

// Fields returns the definitions in table order.
func (s *Schema) Fields() []RegisterDefinition {
	out := make([]RegisterDefinition, len(s.fields))
	copy(out, s.fields)
	return out
}

// Len is the number of defined fields.
func (s *Schema) Len() int { return len(s.fields) }

// Lookup finds a definition by field name.
func (s *Schema) Lookup(name string) (RegisterDefinition, bool) {
	i, ok := s.byName[name]
	if !ok {
		return RegisterDefinition{}, false
	}
	return s.fields[i], true
}

// Has reports whether the field exists in this table.
func (s *Schema) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Optional reports whether name is a family-specific extra.
func (s *Schema) Optional(name string) bool { return s.optional[name] }

// decode applies FromRaw to every definition whose absolute address
// (offset + Address) lies inside the block starting at base.
func (s *Schema) decode(regs []uint16, base, offset uint16) map[string]float64 {
	out := make(map[string]float64, len(s.fields))
	end := int(base) + len(regs)
	for _, d := range s.fields {
		addr := int(offset) + int(d.Address)
		if addr < int(base) || addr >= end {
			continue
		}
		out[d.Name] = d.FromRaw(regs[addr-int(base)])
	}
	return out
}
