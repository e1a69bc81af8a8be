package logger

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// Everforest dark palette
var palette = struct {
	fg, greenBright, greenMid, greenDeep, aqua, orange, yellow, red, redBg, yellowBg string
}{
	fg:          "\x1b[38;5;223m",
	greenBright: "\x1b[38;5;108m",
	greenMid:    "\x1b[38;5;107m",
	greenDeep:   "\x1b[38;5;65m",
	aqua:        "\x1b[38;5;109m",
	orange:      "\x1b[38;5;208m",
	yellow:      "\x1b[38;5;179m",
	red:         "\x1b[38;5;167m",
	redBg:       "\x1b[48;5;52m",
	yellowBg:    "\x1b[48;5;58m",
}

var useColor = true

// SetColor turns ANSI colouring of console output on or off.
func SetColor(on bool) {
	useColor = on
}

func paint(color, s string) string {
	if !useColor || s == "" {
		return s
	}
	return color + s + colorReset
}

var pool = buffer.NewPool()

// minimalEncoder is a compact console encoder.
// Format: "13:04:35  p.watch  Builders written  src/eg.ts 3 builders 12ms kind=InterfaceType"
type minimalEncoder struct {
	zapcore.Encoder // base encoder, used for field accumulation via With
	fields          []zapcore.Field
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{
		Encoder: zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
	}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	return &minimalEncoder{
		Encoder: enc.Encoder.Clone(),
		fields:  append([]zapcore.Field(nil), enc.fields...),
	}
}

// AddString and friends are how zap hands over fields attached with With;
// they are kept so that logger.With(...) context is printed on every entry.
func (enc *minimalEncoder) AddString(key, value string) {
	enc.fields = append(enc.fields, zap.String(key, value))
}

func (enc *minimalEncoder) AddInt64(key string, value int64) {
	enc.fields = append(enc.fields, zap.Int64(key, value))
}

func (enc *minimalEncoder) AddBool(key string, value bool) {
	enc.fields = append(enc.fields, zap.Bool(key, value))
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	final := pool.Get()

	final.AppendString(paint(palette.greenMid, ent.Time.Format("15:04:05")))

	// Level: only shown for WARN and above
	if lvl := levelString(ent.Level); lvl != "" {
		final.AppendString("  ")
		final.AppendString(lvl)
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(paint(colorComponent(ent.LoggerName), abbreviateName(ent.LoggerName)))
	}

	final.AppendString("  ")
	final.AppendString(paint(palette.fg, ent.Message))

	all := append(append([]zapcore.Field(nil), enc.fields...), fields...)
	if values := extractFieldValues(all); values != "" {
		final.AppendString("  ")
		final.AppendString(values)
	}

	final.AppendString("\n")
	return final, nil
}

func colorComponent(name string) string {
	hash := 0
	for _, c := range name {
		hash += int(c)
	}
	switch hash % 3 {
	case 0:
		return palette.greenBright
	case 1:
		return palette.greenDeep
	}
	return palette.orange
}

func levelString(level zapcore.Level) string {
	switch level {
	case zapcore.DebugLevel, zapcore.InfoLevel:
		return ""
	case zapcore.WarnLevel:
		return paint(colorBold+palette.yellowBg+palette.yellow, "WARN")
	default:
		return paint(colorBold+palette.redBg+palette.red, level.CapitalString())
	}
}

// abbreviateName shortens component names: pipeline.watch -> p.watch
func abbreviateName(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) > 1 && parts[0] != "" {
		return string(parts[0][0]) + "." + strings.Join(parts[1:], ".")
	}
	return name
}

// fieldValue renders the value of a zap field.
func fieldValue(field zapcore.Field) string {
	switch field.Type {
	case zapcore.StringType:
		return field.String
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Int16Type, zapcore.Int8Type,
		zapcore.Uint64Type, zapcore.Uint32Type, zapcore.Uint16Type, zapcore.Uint8Type:
		return fmt.Sprintf("%d", field.Integer)
	case zapcore.BoolType:
		return fmt.Sprintf("%t", field.Integer == 1)
	case zapcore.Float64Type:
		return fmt.Sprintf("%g", math.Float64frombits(uint64(field.Integer)))
	case zapcore.Float32Type:
		return fmt.Sprintf("%g", math.Float32frombits(uint32(field.Integer)))
	case zapcore.DurationType:
		return fmt.Sprintf("%dms", field.Integer/1e6)
	case zapcore.ErrorType:
		if err, ok := field.Interface.(error); ok && err != nil {
			return err.Error()
		}
		return ""
	}
	if field.Interface != nil {
		return fmt.Sprintf("%v", field.Interface)
	}
	return ""
}

// extractFieldValues renders every field. Units and files are shown bare,
// counts and durations get a unit suffix, everything else is key=value.
// No field is ever dropped.
func extractFieldValues(fields []zapcore.Field) string {
	var values []string

	for _, field := range fields {
		if field.Type == zapcore.SkipType {
			continue
		}
		val := fieldValue(field)
		switch field.Key {
		case FieldUnit, FieldFile, FieldOutput:
			values = append(values, paint(palette.aqua, val))
		case FieldDurationMS:
			values = append(values, paint(palette.greenBright, val)+"ms")
		case FieldError:
			values = append(values, paint(palette.red, FieldError+"="+val))
		default:
			values = append(values, field.Key+"="+paint(palette.greenBright, val))
		}
	}

	return strings.Join(values, " ")
}
