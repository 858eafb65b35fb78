package metadata

// ValueKind discriminates the three supported value shapes.
type ValueKind int

const (
	// ScalarKind is a plain string value.
	ScalarKind ValueKind = iota
	// ListKind is a flat list of strings.
	ListKind
	// MapKind is a one-level nested mapping of scalars and lists.
	MapKind
)

func (k ValueKind) String() string {
	switch k {
	case ScalarKind:
		return "scalar"
	case ListKind:
		return "list"
	case MapKind:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is one metadata value: a scalar, a list, or a nested mapping whose
// values are themselves scalars or lists (never mappings).
type Value struct {
	Kind   ValueKind
	Scalar string
	List   []string
	Map    map[string]Value
}

// String constructs a scalar value.
func String(s string) Value {
	return Value{Kind: ScalarKind, Scalar: s}
}

// List constructs a list value. List() yields an empty (non-nil) list.
func List(items ...string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{Kind: ListKind, List: items}
}

// Mapping constructs a one-level nested mapping value.
func Mapping(m map[string]Value) Value {
	if m == nil {
		m = map[string]Value{}
	}
	return Value{Kind: MapKind, Map: m}
}

// Block is a parsed metadata block.
type Block map[string]Value

// Has reports whether key is present.
func (b Block) Has(key string) bool {
	_, ok := b[key]
	return ok
}

// GetString returns the scalar value for key, or "" if absent or non-scalar.
func (b Block) GetString(key string) string {
	v, ok := b[key]
	if !ok || v.Kind != ScalarKind {
		return ""
	}
	return v.Scalar
}

// GetList returns the list value for key, or nil if absent or non-list.
func (b Block) GetList(key string) []string {
	v, ok := b[key]
	if !ok || v.Kind != ListKind {
		return nil
	}
	return v.List
}

// GetMap returns the nested mapping for key, or nil if absent or non-mapping.
func (b Block) GetMap(key string) map[string]Value {
	v, ok := b[key]
	if !ok || v.Kind != MapKind {
		return nil
	}
	return v.Map
}
