package builder

// Template placeholders are filled by tmpl.Fill.
const (
	builderTemplate = `
export class @{className}Builder {
  @{lowerName}: @{className} = {
@{valuePairs}
  }
@{methods}
  to(): @{className} {
     return this.@{lowerName}
  }
}
`

	mutatorTemplate = `
  with@{upperFieldName}(@{fieldName}: @{fieldType}): this {
     this.@{lowerClassName}.@{fieldName} = @{fieldName}
     return this
  }`

	valuePairTemplate = `    @{fieldName}: @{value},`
)
