// Package notification contiene el núcleo del motor de notificaciones:
// el árbol de datos de evento (Value), el resolutor de rutas, el evaluador
// de condiciones declarativas y el renderizador de plantillas.
//
// Los datos del evento se modelan como un árbol explícito de variantes
// (Null | Bool | Number | String | Map | List) en lugar de reflexión:
// el resolutor lo recorre estructuralmente y la ausencia de un campo
// es un resultado normal, nunca un error.
package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifica la variante de un Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindMap
	KindList
)

// Value es un nodo del árbol de datos de evento. Inmutable durante la evaluación.
// Los números usan decimal.Decimal para comparaciones exactas de cantidades y montos.
type Value struct {
	kind Kind
	b    bool
	num  decimal.Decimal
	str  string
	m    map[string]Value
	l    []Value
}

// Constructores de cada variante.

func Null() Value                     { return Value{kind: KindNull} }
func Bool(b bool) Value               { return Value{kind: KindBool, b: b} }
func Number(d decimal.Decimal) Value  { return Value{kind: KindNumber, num: d} }
func Int(n int64) Value               { return Value{kind: KindNumber, num: decimal.NewFromInt(n)} }
func String(s string) Value           { return Value{kind: KindString, str: s} }
func Map(m map[string]Value) Value    { return Value{kind: KindMap, m: m} }
func List(items ...Value) Value       { return Value{kind: KindList, l: items} }

// Kind devuelve la variante del nodo.
func (v Value) Kind() Kind { return v.kind }

// IsNull indica si el nodo es la variante nula.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Field devuelve el campo name si el nodo es un mapa y el campo existe.
// La búsqueda es sensible a mayúsculas: no se normalizan nombres.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	child, ok := v.m[name]
	return child, ok
}

// AsNumber devuelve el valor numérico del nodo, con coerción desde string
// si el texto parsea como decimal. Bool, Null, Map y List no coercionan.
func (v Value) AsNumber() (decimal.Decimal, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		d, err := decimal.NewFromString(v.str)
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	default:
		return decimal.Zero, false
	}
}

// AsBool devuelve el valor booleano si el nodo es Bool.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsString devuelve el texto si el nodo es String.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Render devuelve la forma textual invariante del nodo para sustitución en
// plantillas: números con decimal.String (sin locale), booleanos true/false,
// Null como cadena vacía. Mapas y listas se serializan como JSON compacto.
func (v Value) Render() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return v.num.String()
	case KindString:
		return v.str
	default:
		raw, err := json.Marshal(v.toAny())
		if err != nil {
			return ""
		}
		return string(raw)
	}
}

func (v Value) toAny() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return json.RawMessage(v.num.String())
	case KindString:
		return v.str
	case KindMap:
		out := make(map[string]any, len(v.m))
		for k, child := range v.m {
			out[k] = child.toAny()
		}
		return out
	case KindList:
		out := make([]any, 0, len(v.l))
		for _, child := range v.l {
			out = append(out, child.toAny())
		}
		return out
	}
	return nil
}

// FromAny construye un Value desde estructuras Go comunes: mapas, slices,
// strings, booleanos, enteros, flotantes, decimal.Decimal y time.Time
// (RFC3339). Tipos no reconocidos caen a su representación fmt.Sprint.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case float32:
		return Number(decimal.NewFromFloat32(t))
	case float64:
		return Number(decimal.NewFromFloat(t))
	case decimal.Decimal:
		return Number(t)
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return String(t.String())
		}
		return Number(d)
	case time.Time:
		return String(t.UTC().Format(time.RFC3339))
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, child := range t {
			m[k] = FromAny(child)
		}
		return Map(m)
	case map[string]Value:
		return Map(t)
	case []any:
		items := make([]Value, 0, len(t))
		for _, child := range t {
			items = append(items, FromAny(child))
		}
		return List(items...)
	default:
		return String(fmt.Sprint(t))
	}
}

// FromJSON decodifica un documento JSON en un Value. Los números se
// conservan exactos (json.Number -> decimal), sin pasar por float64.
func FromJSON(raw []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return Value{}, fmt.Errorf("decodificar JSON de evento: %w", err)
	}
	return FromAny(x), nil
}
