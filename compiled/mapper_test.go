package compiled

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/fixturegen/syntax"
	"github.com/teranos/fixturegen/syntax/parser"
	"github.com/teranos/fixturegen/ttype"
)

func mapSource(t *testing.T, src string, tables *Tables) ttype.Type {
	t.Helper()
	node, err := parser.ParseType(src)
	require.NoError(t, err)
	return MapType(node, tables)
}

func TestMapType(t *testing.T) {
	tables := NewTables([]string{"Money"}, map[string][]string{
		"Colour": {"Colour.red", "Colour.green"},
	})

	tests := []struct {
		src  string
		want ttype.Type
	}{
		{"string", ttype.String{}},
		{"number", ttype.Number{}},
		{"boolean", ttype.Boolean{}},
		{"void", ttype.Void{}},
		{"symbol", ttype.NewBuiltInClass("Symbol")},
		{"object", ttype.NewUserClass("object")},
		{"any", ttype.NewUserClass("any")},
		{"unknown", ttype.Unknown{}},
		{"never", ttype.Unknown{}},
		{"null", ttype.Unknown{}},
		{"undefined", ttype.Unknown{}},
		{"bigint", ttype.Unknown{}},

		{"Date", ttype.NewBuiltInClass("Date")},
		{"Promise<string>", ttype.NewBuiltInClass("Promise")},
		{"Money", ttype.NewBuiltInClass("Money")},
		{"Colour", ttype.NewEnum("Colour", []string{"Colour.red", "Colour.green"})},
		{"Eg", ttype.NewUserClass("Eg")},
		{"Eg<string>", ttype.NewUserClass("Eg", ttype.NewGenericArgument(ttype.String{}))},
		{"Eg<Eg<number>>", ttype.NewUserClass("Eg",
			ttype.NewGenericArgument(ttype.NewUserClass("Eg", ttype.NewGenericArgument(ttype.Number{}))))},
		{"ns.Thing", ttype.NewUserClass("ns.Thing")},

		{"boolean[]", ttype.NewArray(ttype.Boolean{})},
		{"string[][]", ttype.NewArray(ttype.NewArray(ttype.String{}))},
		{"[number, string]", ttype.NewTuple(ttype.Number{}, ttype.String{})},
		{"[]", ttype.NewTuple()},
		{"string | number", ttype.NewUnion(ttype.String{}, ttype.Number{})},
		{"number & string", ttype.NewIntersection(ttype.Number{}, ttype.String{})},
		{"(a: number) => string", ttype.NewArrow(
			[]ttype.Param{{Name: "a", Type: ttype.Number{}}}, ttype.String{})},
		{"(a, {b}: X) => void", ttype.NewArrow(
			[]ttype.Param{{Name: "a", Type: ttype.Unknown{}}, {Name: "unknown", Type: ttype.NewUserClass("X")}},
			ttype.Void{})},

		{"(string)", ttype.Unknown{}},
		{"[a: string]", ttype.NewTuple(ttype.Unknown{})},
		{"'literal'", ttype.Unknown{}},
		{"{ a: string }", ttype.Unknown{}},
		{"keyof T", ttype.Unknown{}},
		{"T[K]", ttype.Unknown{}},
		{"T extends U ? X : Y", ttype.Unknown{}},
		{"{ [K in keyof T]: T[K] }", ttype.Unknown{}},
		{"typeof x", ttype.Unknown{}},
		{"new () => Eg", ttype.Unknown{}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, mapSource(t, tt.src, tables))
		})
	}
}

func TestMapType_NilIsUnknown(t *testing.T) {
	assert.Equal(t, ttype.Unknown{}, MapType(nil, EmptyTables()))
}

func TestMapType_ResolutionPrecedence(t *testing.T) {
	// a name that is elementary and an enum resolves as elementary
	tables := NewTables([]string{"Status"}, map[string][]string{"Status": {"Status.on"}})
	assert.Equal(t, ttype.NewBuiltInClass("Status"), mapSource(t, "Status", tables))

	// the fixed built-in list shadows the enum table too
	tables = NewTables(nil, map[string][]string{"Date": {"Date.x"}})
	assert.Equal(t, ttype.NewBuiltInClass("Date"), mapSource(t, "Date", tables))

	// enum references drop any type arguments
	tables = NewTables(nil, map[string][]string{"Colour": {"Colour.red"}})
	assert.Equal(t, ttype.NewEnum("Colour", []string{"Colour.red"}), mapSource(t, "Colour<string>", tables))
}

func TestMapType_Deterministic(t *testing.T) {
	tables := NewTables(nil, map[string][]string{"Colour": {"Colour.red"}})
	node, err := parser.ParseType("Eg<[number, Colour]> | ((x: string & boolean) => unknown[])")
	require.NoError(t, err)

	first := MapType(node, tables)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, MapType(node, tables))
	}
}

func TestMapType_UnionDropsAbsentMembers(t *testing.T) {
	node := &syntax.UnionType{Types: []syntax.TypeNode{nil, &syntax.KeywordType{Keyword: "string"}, nil}}
	assert.Equal(t, ttype.NewUnion(ttype.String{}), MapType(node, EmptyTables()))
}

func TestMapType_TypedNilIsUnknown(t *testing.T) {
	tests := []struct {
		name string
		node syntax.TypeNode
		want ttype.Type
	}{
		{"reference", (*syntax.TypeReference)(nil), ttype.Unknown{}},
		{"keyword", (*syntax.KeywordType)(nil), ttype.Unknown{}},
		{"function", (*syntax.FunctionType)(nil), ttype.Unknown{}},
		{"union", (*syntax.UnionType)(nil), ttype.Unknown{}},
		{"array", (*syntax.ArrayType)(nil), ttype.Unknown{}},
		{"tuple", (*syntax.TupleType)(nil), ttype.Unknown{}},
		{"union member", &syntax.UnionType{Types: []syntax.TypeNode{
			(*syntax.TypeReference)(nil), &syntax.KeywordType{Keyword: "number"},
		}}, ttype.NewUnion(ttype.Number{})},
		{"tuple slot", &syntax.TupleType{Elements: []syntax.TypeNode{
			&syntax.KeywordType{Keyword: "string"}, (*syntax.ArrayType)(nil),
		}}, ttype.NewTuple(ttype.String{})},
		{"generic argument", &syntax.TypeReference{
			Name:          syntax.NewIdentifier("Box"),
			TypeArguments: []syntax.TypeNode{(*syntax.TypeReference)(nil)},
		}, ttype.NewUserClass("Box")},
		{"reference without name", &syntax.TypeReference{}, ttype.NewUserClass("unknown")},
		{"function with nil parameter", &syntax.FunctionType{
			Parameters: []*syntax.Parameter{nil},
			Type:       &syntax.KeywordType{Keyword: "void"},
		}, ttype.NewArrow([]ttype.Param{}, ttype.Void{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ttype.Type
			require.NotPanics(t, func() { got = MapType(tt.node, EmptyTables()) })
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapType_NilTables(t *testing.T) {
	ref := &syntax.TypeReference{Name: syntax.NewIdentifier("Foo")}
	assert.Equal(t, ttype.NewUserClass("Foo"), MapType(ref, nil))
	assert.Equal(t, ttype.NewBuiltInClass("Date"), mapSource(t, "Date", nil))

	var tables *Tables
	assert.False(t, tables.IsElementary("Foo"))
	_, ok := tables.EnumValues("Foo")
	assert.False(t, ok)
	assert.Empty(t, tables.Elementary())
	assert.Empty(t, tables.EnumNames())

	merged := tables.Merge(NewTables([]string{"Money"}, nil))
	assert.Equal(t, []string{"Money"}, merged.Elementary())
}

func TestExtract_NilTables(t *testing.T) {
	file, err := parser.ParseFile("a.ts", []byte("export interface A { c: Colour; n: number }"))
	require.NoError(t, err)

	var decls []Declaration
	require.NotPanics(t, func() { decls = Extract(file, nil) })
	require.Len(t, decls, 1)
	fields := decls[0].(Interface).Fields
	assert.Equal(t, ttype.NewUserClass("Colour"), fields[0].Type)
	assert.Equal(t, ttype.Number{}, fields[1].Type)
}

func TestTables_CopyInputs(t *testing.T) {
	elementary := []string{"Money"}
	values := []string{"Colour.red"}
	enums := map[string][]string{"Colour": values}
	tables := NewTables(elementary, enums)

	elementary[0] = "Changed"
	values[0] = "Colour.changed"
	enums["Other"] = []string{"Other.x"}

	assert.True(t, tables.IsElementary("Money"))
	assert.False(t, tables.IsElementary("Changed"))
	got, ok := tables.EnumValues("Colour")
	require.True(t, ok)
	assert.Equal(t, []string{"Colour.red"}, got)
	_, ok = tables.EnumValues("Other")
	assert.False(t, ok)

	// returned slices are copies as well
	got[0] = "mutated"
	again, _ := tables.EnumValues("Colour")
	assert.Equal(t, "Colour.red", again[0])
}

func TestTables_Merge(t *testing.T) {
	config := NewTables([]string{"Money"}, map[string][]string{"Colour": {"Colour.RED"}})
	discovered := NewTables(nil, map[string][]string{
		"Colour": {"Colour.red"},
		"Size":   {"Size.small"},
	})

	merged := config.Merge(discovered)
	assert.Equal(t, []string{"Money"}, merged.Elementary())
	assert.Equal(t, []string{"Colour", "Size"}, merged.EnumNames())
	colour, _ := merged.EnumValues("Colour")
	assert.Equal(t, []string{"Colour.RED"}, colour)
}

func TestBuiltInClasses(t *testing.T) {
	names := BuiltInClasses()
	assert.Len(t, names, 46)
	assert.Contains(t, names, "Date")
	assert.Contains(t, names, "AsynchFunction")
	assert.True(t, IsBuiltIn("WebAssembly"))
	assert.False(t, IsBuiltIn("Logger"))
}
