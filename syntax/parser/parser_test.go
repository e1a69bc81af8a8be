package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/fixturegen/syntax"
)

func parse(t *testing.T, src string) *syntax.SourceFile {
	t.Helper()
	f, err := ParseFile("test.ts", []byte(src))
	require.NoError(t, err)
	return f
}

func TestParseFile_Interface(t *testing.T) {
	f := parse(t, `
export interface Logger<T> extends Base<T>, Other {
    ttt: T;
    i?: number,
    readonly tags: string[]
    log(message: string, ...rest: any[]): void;
    'quoted-key': boolean;
    get size(): number;
    [key: string]: unknown;
    (x: number): string;
    new (x: number): Logger<T>;
}
`)
	require.Len(t, f.Statements, 1)
	decl, ok := f.Statements[0].(*syntax.InterfaceDeclaration)
	require.True(t, ok)

	assert.True(t, decl.Modifiers.IsExported())
	assert.Equal(t, "Logger", decl.Name.Text)
	require.Len(t, decl.TypeParameters, 1)
	assert.Equal(t, "T", decl.TypeParameters[0].Name.Text)
	assert.Len(t, decl.Extends, 2)
	require.Len(t, decl.Members, 9)

	ttt := decl.Members[0].(*syntax.PropertySignature)
	assert.Equal(t, "ttt", ttt.Name.Text)
	assert.Equal(t, "T", ttt.Type.(*syntax.TypeReference).Name.Text)

	i := decl.Members[1].(*syntax.PropertySignature)
	assert.True(t, i.Optional)
	assert.Equal(t, "number", i.Type.(*syntax.KeywordType).Keyword)

	tags := decl.Members[2].(*syntax.PropertySignature)
	assert.True(t, tags.Modifiers.Has(syntax.ModifierReadonly))
	assert.IsType(t, &syntax.ArrayType{}, tags.Type)

	log := decl.Members[3].(*syntax.MethodSignature)
	assert.Equal(t, "log", log.Name.Text)
	require.Len(t, log.Parameters, 2)
	assert.True(t, log.Parameters[1].Rest)

	quoted := decl.Members[4].(*syntax.PropertySignature)
	assert.Nil(t, quoted.Name)

	assert.IsType(t, &syntax.AccessorSignature{}, decl.Members[5])
	assert.IsType(t, &syntax.IndexSignature{}, decl.Members[6])
	assert.False(t, decl.Members[7].(*syntax.CallSignature).Construct)
	assert.True(t, decl.Members[8].(*syntax.CallSignature).Construct)
}

func TestParseFile_Class(t *testing.T) {
	f := parse(t, `
@Component({selector: 'x'})
export abstract class Service<T> extends Base<T> implements A, B {
    static instances = 0;
    private readonly cache = new Map<string, T>()
    #secret?: string;
    static { Service.instances = 1 }

    constructor(private readonly http: Http, @Inject(TOKEN) name: string = 'n') {
        super();
    }
    constructor(other: Service<T>);

    get value(): T { return this._value }
    async load<K>(key: K): Promise<T> {
        const x = { a: 1 };
        return x as any;
    }
    abstract dispose(): void;
    [key: string]: any;
}
`)
	require.Len(t, f.Statements, 1)
	decl := f.Statements[0].(*syntax.ClassDeclaration)
	assert.Equal(t, "Service", decl.Name.Text)
	assert.True(t, decl.Modifiers.Has(syntax.ModifierExport|syntax.ModifierAbstract))
	assert.NotNil(t, decl.Extends)
	assert.Len(t, decl.Implements, 2)

	var ctors []*syntax.Constructor
	for _, m := range decl.Members {
		if c, ok := m.(*syntax.Constructor); ok {
			ctors = append(ctors, c)
		}
	}
	require.Len(t, ctors, 2)
	require.Len(t, ctors[0].Parameters, 2)
	assert.Equal(t, "http", ctors[0].Parameters[0].Name.Text)
	assert.True(t, ctors[0].Parameters[0].Modifiers.Has(syntax.ModifierPrivate|syntax.ModifierReadonly))
	assert.Equal(t, "name", ctors[0].Parameters[1].Name.Text)
	assert.Equal(t, "Service", ctors[1].Parameters[0].Type.(*syntax.TypeReference).Name.Text)
}

func TestParseFile_VariableStatements(t *testing.T) {
	f := parse(t, `
export const fn = (a: number, b?: string): boolean => a > 0
const fx = async function named<T>(x: T) { return x }
let single = x => x * 2, second = 3;
var obj = { f: () => 1 }, arr = [1, 2]
const { a, b } = obj;
const generic = <T,>(x: T): T => x;
const call = make<A, B>(1);
`)
	require.Len(t, f.Statements, 7)

	first := f.Statements[0].(*syntax.VariableStatement)
	assert.True(t, first.Modifiers.IsExported())
	arrow := first.Declarations[0].Initializer.(*syntax.ArrowFunction)
	require.Len(t, arrow.Parameters, 2)
	assert.Equal(t, "boolean", arrow.Type.(*syntax.KeywordType).Keyword)

	fx := f.Statements[1].(*syntax.VariableStatement).Declarations[0]
	fe := fx.Initializer.(*syntax.FunctionExpression)
	assert.True(t, fe.Modifiers.Has(syntax.ModifierAsync))
	assert.Equal(t, "named", fe.Name.Text)

	third := f.Statements[2].(*syntax.VariableStatement)
	assert.Equal(t, "let", third.Keyword)
	require.Len(t, third.Declarations, 2)
	assert.IsType(t, &syntax.ArrowFunction{}, third.Declarations[0].Initializer)
	assert.IsType(t, &syntax.OtherExpression{}, third.Declarations[1].Initializer)

	fourth := f.Statements[3].(*syntax.VariableStatement)
	require.Len(t, fourth.Declarations, 2)
	assert.IsType(t, &syntax.OtherExpression{}, fourth.Declarations[0].Initializer)

	destructured := f.Statements[4].(*syntax.VariableStatement)
	assert.Nil(t, destructured.Declarations[0].Name)

	generic := f.Statements[5].(*syntax.VariableStatement).Declarations[0]
	assert.IsType(t, &syntax.ArrowFunction{}, generic.Initializer)

	call := f.Statements[6].(*syntax.VariableStatement)
	assert.Equal(t, "call", call.Declarations[0].Name.Text)
}

func TestParseFile_OtherStatements(t *testing.T) {
	f := parse(t, `
import { a, b } from './x'
import * as ts from "typescript";
export { a } from './a';
export * from './b'
export default foo
declare module 'm' {
    export interface Hidden {}
}
namespace N { const x = 1 }
if (a) { b() } else { c() }
for (const x of xs) console.log(x)
enum Colour { red = 'RED', green = 'GREEN' }
const enum Flags { A = 1 << 0, B = A | 2 }
type Alias<T> = T | null;
function util(x: number): string;
function util(x: any) { return String(x) }
`)
	var kinds []string
	for _, s := range f.Statements {
		switch s := s.(type) {
		case *syntax.OtherStatement:
			kinds = append(kinds, "other:"+s.Keyword)
		case *syntax.EnumDeclaration:
			kinds = append(kinds, "enum:"+s.Name.Text)
		case *syntax.TypeAliasDeclaration:
			kinds = append(kinds, "type:"+s.Name.Text)
		case *syntax.FunctionDeclaration:
			kinds = append(kinds, "function:"+s.Name.Text)
		default:
			kinds = append(kinds, "unexpected")
		}
	}
	assert.Equal(t, []string{
		"other:import", "other:import", "other:export", "other:export", "other:export",
		"other:declare", "other:namespace", "other:if", "other:for",
		"enum:Colour", "enum:Flags", "type:Alias", "function:util", "function:util",
	}, kinds)

	colour := f.Statements[9].(*syntax.EnumDeclaration)
	require.Len(t, colour.Members, 2)
	assert.Equal(t, "red", colour.Members[0].Name)
	assert.Equal(t, "'RED'", colour.Members[0].Initializer)

	flags := f.Statements[10].(*syntax.EnumDeclaration)
	assert.True(t, flags.Modifiers.Has(syntax.ModifierConst))
	assert.Equal(t, "A | 2", flags.Members[1].Initializer)
}

func TestParseType(t *testing.T) {
	tests := []struct {
		src  string
		want any
	}{
		{"string", &syntax.KeywordType{}},
		{"Map<string, T[]>", &syntax.TypeReference{}},
		{"a.b.C", &syntax.TypeReference{}},
		{"(a: number) => void", &syntax.FunctionType{}},
		{"<T>(a: T) => T", &syntax.FunctionType{}},
		{"new (a: number) => Foo", &syntax.ConstructorType{}},
		{"| A | B", &syntax.UnionType{}},
		{"A & B", &syntax.IntersectionType{}},
		{"(A | B)", &syntax.ParenthesizedType{}},
		{"[number, Colour]", &syntax.TupleType{}},
		{"'a'", &syntax.LiteralType{}},
		{"-1", &syntax.LiteralType{}},
		{"{ a: string; b(): void }", &syntax.TypeLiteral{}},
		{"{ readonly [K in keyof T]?: T[K] }", &syntax.MappedType{}},
		{"T extends string ? A : B", &syntax.ConditionalType{}},
		{"keyof T", &syntax.TypeOperator{}},
		{"T['k']", &syntax.IndexedAccessType{}},
		{"typeof foo.bar", &syntax.TypeQuery{}},
		{"Array<Array<number>>", &syntax.TypeReference{}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := ParseType(tt.src)
			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
		})
	}
}

func TestParseType_Structure(t *testing.T) {
	got, err := ParseType("[a: string, b?: number, ...rest: boolean[]]")
	require.NoError(t, err)
	tuple := got.(*syntax.TupleType)
	require.Len(t, tuple.Elements, 3)
	for _, e := range tuple.Elements {
		assert.IsType(t, &syntax.NamedTupleMember{}, e)
	}
	assert.True(t, tuple.Elements[1].(*syntax.NamedTupleMember).Optional)
	assert.True(t, tuple.Elements[2].(*syntax.NamedTupleMember).Rest)

	got, err = ParseType("Eg<[number, Colour]>")
	require.NoError(t, err)
	ref := got.(*syntax.TypeReference)
	require.Len(t, ref.TypeArguments, 1)
	assert.Len(t, ref.TypeArguments[0].(*syntax.TupleType).Elements, 2)

	got, err = ParseType("Foo")
	require.NoError(t, err)
	assert.Nil(t, got.(*syntax.TypeReference).TypeArguments)

	got, err = ParseType("(x: unknown) => x is string")
	require.NoError(t, err)
	pred := got.(*syntax.FunctionType).Type.(*syntax.TypePredicate)
	assert.Equal(t, "x", pred.ParameterName)
}

func TestParseFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"missing closing brace", "interface A { a: string", "'}' expected"},
		{"bad type", "type A = ;", "type expected"},
		{"missing type alias equals", "type A string", "'=' expected"},
		{"unterminated string", "const a = 'x", "unterminated string literal"},
		{"unbalanced body", "function f() { return (1 }", "unbalanced '}'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFile("bad.ts", []byte(tt.src))
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.msg, perr.Message)
			assert.Equal(t, "bad.ts", perr.FileName)
			assert.NotNil(t, perr.Range)
			assert.Contains(t, err.Error(), "bad.ts:1:")
		})
	}
}

func TestParseError_Format(t *testing.T) {
	err := NewParseError(ErrorKindSyntax, "';' expected").
		WithFile("eg.ts").
		WithRange(syntax.Range{Start: syntax.Position{Line: 3, Character: 4}}).
		WithSuggestion("terminate the statement")

	assert.Equal(t, "eg.ts:3:5: ';' expected (terminate the statement)", err.FormatError(ErrorContextPlain))
	assert.Contains(t, err.FormatError(ErrorContextTerminal), "Suggestions:")
}
