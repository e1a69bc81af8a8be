package compiled

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/fixturegen/syntax/parser"
	"github.com/teranos/fixturegen/ttype"
)

const egSource = `export interface Logger<T> {
    ttt: T
    i: number
    color: Colour
    date: Date
    buffer: ArrayBuffer
    flags: boolean[]
    tuple: [number, string]
    eg: Eg<string>
    genericIdentifier: Eg<MockHandler>
    union: string | number
    intersection: number & string
    fun: (a: number) => string
    gun: (a: number) => number

    info(s: T): void

    error(s: string): void
}

export enum Colour {
    red = 'red',
    green = 'green'
}

class Eg<T> {}

interface MockHandler {

}
`

func extract(t *testing.T, src string, tables *Tables) []Declaration {
	t.Helper()
	file, err := parser.ParseFile("eg.ts", []byte(src))
	require.NoError(t, err)
	return Extract(file, tables)
}

func colourTables() *Tables {
	return NewTables(nil, map[string][]string{"Colour": {"Colour.red", "Colour.green"}})
}

func TestExtract_Eg(t *testing.T) {
	decls := extract(t, egSource, colourTables())

	tParam := ttype.NewUserClass("T")
	fn := func(result ttype.Type) ttype.Type {
		return ttype.NewArrow([]ttype.Param{{Name: "a", Type: ttype.Number{}}}, result)
	}
	want := []Declaration{
		Interface{
			Name:              "Logger",
			GenericParameters: []ttype.GenericParameter{{Name: "T"}},
			Fields: []Field{
				{Name: "ttt", Type: tParam},
				{Name: "i", Type: ttype.Number{}},
				{Name: "color", Type: ttype.NewEnum("Colour", []string{"Colour.red", "Colour.green"})},
				{Name: "date", Type: ttype.NewBuiltInClass("Date")},
				{Name: "buffer", Type: ttype.NewBuiltInClass("ArrayBuffer")},
				{Name: "flags", Type: ttype.NewArray(ttype.Boolean{})},
				{Name: "tuple", Type: ttype.NewTuple(ttype.Number{}, ttype.String{})},
				{Name: "eg", Type: ttype.NewUserClass("Eg", ttype.NewGenericArgument(ttype.String{}))},
				{Name: "genericIdentifier", Type: ttype.NewUserClass("Eg",
					ttype.NewGenericArgument(ttype.NewUserClass("MockHandler")))},
				{Name: "union", Type: ttype.NewUnion(ttype.String{}, ttype.Number{})},
				{Name: "intersection", Type: ttype.NewIntersection(ttype.Number{}, ttype.String{})},
				{Name: "fun", Type: fn(ttype.String{})},
				{Name: "gun", Type: fn(ttype.Number{})},
			},
			Methods: []Method{
				{
					Name:              "info",
					GenericParameters: []ttype.GenericParameter{},
					Params:            []ttype.Param{{Name: "s", Type: tParam}},
					Result:            ttype.Void{},
				},
				{
					Name:              "error",
					GenericParameters: []ttype.GenericParameter{},
					Params:            []ttype.Param{{Name: "s", Type: ttype.String{}}},
					Result:            ttype.Void{},
				},
			},
		},
		Interface{
			Name:              "MockHandler",
			GenericParameters: []ttype.GenericParameter{},
			Fields:            []Field{},
			Methods:           []Method{},
		},
	}
	assert.Equal(t, want, decls)
}

func TestExtract_Classes(t *testing.T) {
	decls := extract(t, `
export class Account<T, U> {
    constructor(id: string, balance?: number) {}
    constructor(other: Account<T, U>) {}
    deposit(amount: number) {}
}
export class NoConstructor { x = 1 }
class Hidden { constructor(a: string) {} }
export default class { constructor(a: string) {} }
`, EmptyTables())

	require.Len(t, decls, 3)
	generics := []ttype.GenericParameter{{Name: "T"}, {Name: "U"}}
	assert.Equal(t, Class{
		Name:              "Account",
		GenericParameters: generics,
		ConstructorParams: []ttype.Param{
			{Name: "id", Type: ttype.String{}},
			{Name: "balance", Type: ttype.Number{}},
		},
	}, decls[0])
	assert.Equal(t, Class{
		Name:              "Account",
		GenericParameters: generics,
		ConstructorParams: []ttype.Param{{Name: "other", Type: ttype.NewUserClass("Account",
			ttype.NewGenericArgument(ttype.NewUserClass("T")),
			ttype.NewGenericArgument(ttype.NewUserClass("U")))}},
	}, decls[1])
	assert.Equal(t, "unknown", decls[2].DeclName())
}

func TestExtract_Functions(t *testing.T) {
	decls := extract(t, `
export const fn = (a: number, b) => a
export const fe = function (s: string) { return s }
export const value = 3, later = () => 1
const hidden = (a: number) => a
export let first = (x: Date) => x, second = 4
export function declared(a: number) {}
`, EmptyTables())

	require.Len(t, decls, 3)
	assert.Equal(t, Function{
		Name:   "fn",
		Params: []ttype.Param{{Name: "a", Type: ttype.Number{}}, {Name: "b", Type: ttype.Unknown{}}},
		Result: ttype.Unknown{},
	}, decls[0])
	assert.Equal(t, "fe", decls[1].DeclName())
	assert.Equal(t, KindFunction, decls[1].DeclKind())
	assert.Equal(t, Function{
		Name:   "first",
		Params: []ttype.Param{{Name: "x", Type: ttype.NewBuiltInClass("Date")}},
		Result: ttype.Unknown{},
	}, decls[2])
}

func TestExtract_InterfaceMembers(t *testing.T) {
	decls := extract(t, `
interface Shape {
    (x: number): string
    new (x: number): Shape
    [key: string]: unknown
    get area(): number
    'quoted': string
    id
    map<K>(f: (k: K) => K): Shape
}
`, EmptyTables())

	require.Len(t, decls, 1)
	shape := decls[0].(Interface)
	assert.Equal(t, []Field{
		{Name: "unknown", Type: ttype.String{}},
		{Name: "id", Type: ttype.Unknown{}},
	}, shape.Fields)
	require.Len(t, shape.Methods, 1)
	assert.Equal(t, []ttype.GenericParameter{{Name: "K"}}, shape.Methods[0].GenericParameters)
	assert.Equal(t, ttype.NewUserClass("Shape"), shape.Methods[0].Result)
}

func TestExtract_EmptyFile(t *testing.T) {
	assert.Empty(t, extract(t, "", EmptyTables()))
	assert.Empty(t, extract(t, "import x from 'y'\nconsole.log(x)\n", EmptyTables()))
}

func TestDescribe(t *testing.T) {
	decls := extract(t, egSource, colourTables())
	raw, err := json.Marshal(DescribeAll(decls))
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "InterfaceType", got[0]["type"])
	assert.Equal(t, "Logger", got[0]["name"])

	fields := got[0]["fields"].([]any)
	color := fields[2].(map[string]any)["resultType"].(map[string]any)
	assert.Equal(t, "Enum", color["kind"])
	assert.Equal(t, []any{"Colour.red", "Colour.green"}, color["resolvedValueNames"])

	fn := Describe(Function{Name: "f", Params: []ttype.Param{}, Result: ttype.Unknown{}})
	assert.Equal(t, "FunctionType", fn["type"])
}
