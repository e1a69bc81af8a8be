package compiled

import (
	"sort"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// builtInClasses are opaque runtime classes: references to them never
// decompose and synthesis treats them as atoms (Date gets a dedicated value).
var builtInClasses = map[string]bool{
	"Array": true, "ArrayBuffer": true, "AsynchFunction": true, "Atomics": true,
	"BigInt": true, "BigInt64Array": true, "BigUint64Array": true, "Boolean": true,
	"DataView": true, "Date": true, "Error": true, "EvalError": true,
	"FinalizationRegistry": true, "Float32Array": true, "Float64Array": true,
	"Function": true, "Generator": true, "GeneratorFunction": true,
	"InternalError": true, "Intl": true, "JSON": true, "Map": true, "Math": true,
	"NaN": true, "Number": true, "Object": true, "Promise": true, "Proxy": true,
	"RangeError": true, "ReferenceError": true, "Reflect": true, "RegExp": true,
	"Set": true, "SharedArrayBuffer": true, "String": true, "Symbol": true,
	"TypedArray": true, "TypeError": true, "UInt16Array": true, "UInt32Array": true,
	"UInt8Array": true, "UInt8ClampedArray": true, "UriError": true,
	"WeakMap": true, "WeakSet": true, "WebAssembly": true,
}

// IsBuiltIn reports whether name is in the fixed built-in class list.
func IsBuiltIn(name string) bool {
	return builtInClasses[name]
}

// BuiltInClasses returns the fixed built-in class list, sorted.
func BuiltInClasses() []string {
	names := maps.Keys(builtInClasses)
	sort.Strings(names)
	return names
}

// Tables holds the per-pass resolution inputs: class names to treat as
// elementary (opaque, like built-ins) and the enum table mapping an enum name
// to its resolved value names. A Tables is read-only after construction and
// safe for concurrent use. A nil *Tables behaves as EmptyTables.
type Tables struct {
	elementary map[string]bool
	enums      map[string][]string
}

// NewTables copies elementary and enums into a new Tables. Either may be nil.
func NewTables(elementary []string, enums map[string][]string) *Tables {
	t := &Tables{
		elementary: make(map[string]bool, len(elementary)),
		enums:      make(map[string][]string, len(enums)),
	}
	for _, name := range elementary {
		t.elementary[name] = true
	}
	for name, values := range enums {
		t.enums[name] = slices.Clone(values)
	}
	return t
}

// EmptyTables returns tables with no elementary classes and no enums.
func EmptyTables() *Tables {
	return NewTables(nil, nil)
}

// IsElementary reports whether name was declared elementary.
func (t *Tables) IsElementary(name string) bool {
	if t == nil {
		return false
	}
	return t.elementary[name]
}

// EnumValues returns a copy of the value names of enum name.
func (t *Tables) EnumValues(name string) ([]string, bool) {
	if t == nil {
		return nil, false
	}
	values, ok := t.enums[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(values), true
}

// Elementary returns the elementary class names, sorted.
func (t *Tables) Elementary() []string {
	if t == nil {
		return []string{}
	}
	names := maps.Keys(t.elementary)
	sort.Strings(names)
	return names
}

// EnumNames returns the enum names, sorted.
func (t *Tables) EnumNames() []string {
	if t == nil {
		return []string{}
	}
	names := maps.Keys(t.enums)
	sort.Strings(names)
	return names
}

// Merge returns new tables holding the union of t and other. For an enum
// present in both, t's values win.
func (t *Tables) Merge(other *Tables) *Tables {
	enums := map[string][]string{}
	if other != nil {
		maps.Copy(enums, other.enums)
	}
	if t != nil {
		maps.Copy(enums, t.enums)
	}
	return NewTables(append(t.Elementary(), other.Elementary()...), enums)
}
