package notification

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Operadores soportados en expresiones de condición.
const (
	OpEq = "=="
	OpNe = "!="
	OpLe = "<="
	OpGe = ">="
	OpLt = "<"
	OpGt = ">"
)

// ErrMalformedCondition indica que la expresión no pudo parsearse a triples.
// El motor salta la regla afectada y continúa con las demás.
var ErrMalformedCondition = errors.New("expresión de condición malformada")

// operand es el operando derecho de un triple: un literal o un placeholder
// {{Otra.Ruta}} que se resuelve contra los datos del evento al evaluar.
type operand struct {
	placeholder string // ruta si el valor era "{{...}}"; vacío si es literal
	literal     Value
}

// Triple es una comparación (ruta, operador, operando). Todas deben
// cumplirse (AND) para que la condición matchee.
type Triple struct {
	Path     string
	Operator string
	operand  operand
}

// Condition es la lista de triples parseada, en orden determinista por ruta.
// Una condición vacía matchea incondicionalmente.
type Condition []Triple

type clauseSpec struct {
	Operator *string         `json:"operator"`
	Value    json.RawMessage `json:"value"`
}

// ParseCondition parsea la expresión JSON {ruta: {operator, value}} a triples.
// Devuelve ErrMalformedCondition si la expresión no es un objeto, si una
// cláusula no es un objeto, o si faltan operator (string) o value.
// Un operador sintácticamente string pero desconocido parsea: falla su triple
// en la evaluación, con warning, sin invalidar la regla completa.
// Expresión vacía, "null" o "{}" produce una condición vacía (matchea siempre).
func ParseCondition(raw []byte) (Condition, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Condition{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var spec map[string]clauseSpec
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCondition, err)
	}

	cond := make(Condition, 0, len(spec))
	for path, clause := range spec {
		if path == "" {
			return nil, fmt.Errorf("%w: ruta vacía", ErrMalformedCondition)
		}
		if clause.Operator == nil {
			return nil, fmt.Errorf("%w: cláusula %q sin operator", ErrMalformedCondition, path)
		}
		if len(clause.Value) == 0 {
			return nil, fmt.Errorf("%w: cláusula %q sin value", ErrMalformedCondition, path)
		}
		op, err := parseOperand(clause.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: cláusula %q: %v", ErrMalformedCondition, path, err)
		}
		cond = append(cond, Triple{Path: path, Operator: *clause.Operator, operand: op})
	}

	// Orden determinista: el mapa JSON no lo garantiza.
	sort.Slice(cond, func(i, j int) bool { return cond[i].Path < cond[j].Path })
	return cond, nil
}

func parseOperand(raw json.RawMessage) (operand, error) {
	v, err := FromJSON(raw)
	if err != nil {
		return operand{}, err
	}
	if s, ok := v.AsString(); ok {
		inner, isPlaceholder := placeholderPath(s)
		if isPlaceholder {
			return operand{placeholder: inner}, nil
		}
	}
	switch v.Kind() {
	case KindMap, KindList:
		return operand{}, errors.New("el value debe ser literal escalar o placeholder")
	}
	return operand{literal: v}, nil
}

// placeholderPath reconoce valores con forma exacta "{{Ruta}}".
func placeholderPath(s string) (string, bool) {
	if !strings.HasPrefix(s, "{{") || !strings.HasSuffix(s, "}}") || len(s) < 5 {
		return "", false
	}
	inner := strings.TrimSpace(s[2 : len(s)-2])
	if inner == "" || strings.Contains(inner, "{") || strings.Contains(inner, "}") {
		return "", false
	}
	return inner, true
}

// Eval evalúa la condición contra los datos del evento: AND de todos los
// triples con cortocircuito. Un triple con ruta no resoluble, tipos no
// comparables u operador desconocido evalúa a false (nunca error); los
// operadores desconocidos se reportan como warnings para que el motor los
// registre. Una condición vacía devuelve true.
func (c Condition) Eval(data Value) (bool, []string) {
	var warnings []string
	for _, t := range c {
		left, ok := Resolve(data, t.Path)
		if !ok {
			return false, warnings
		}
		right := t.operand.literal
		if t.operand.placeholder != "" {
			right, ok = Resolve(data, t.operand.placeholder)
			if !ok {
				return false, warnings
			}
		}
		matched, warn := compare(left, t.Operator, right)
		if warn != "" {
			warnings = append(warnings, warn)
		}
		if !matched {
			return false, warnings
		}
	}
	return true, warnings
}

// compare aplica un operador sobre dos Value. Igualdad consciente de tipos:
// textual si ambos son string, booleana si ambos son bool, numérica en los
// demás casos donde ambos coercionan a número (número contra string numérico).
// Los operadores de orden exigen coerción numérica en ambos lados; si no es
// posible el triple es false, no un error.
func compare(left Value, op string, right Value) (bool, string) {
	switch op {
	case OpEq:
		return valuesEqual(left, right), ""
	case OpNe:
		return !valuesEqual(left, right), ""
	case OpLe, OpGe, OpLt, OpGt:
		ln, lok := left.AsNumber()
		rn, rok := right.AsNumber()
		if !lok || !rok {
			return false, ""
		}
		switch op {
		case OpLe:
			return ln.LessThanOrEqual(rn), ""
		case OpGe:
			return ln.GreaterThanOrEqual(rn), ""
		case OpLt:
			return ln.LessThan(rn), ""
		default:
			return ln.GreaterThan(rn), ""
		}
	default:
		return false, fmt.Sprintf("operador desconocido %q", op)
	}
}

func valuesEqual(left, right Value) bool {
	// Dos strings se comparan como texto aunque ambos parseen como número:
	// "7" y "007" son códigos distintos, no el mismo valor.
	if left.kind == KindString && right.kind == KindString {
		return left.str == right.str
	}
	if ln, ok := left.AsNumber(); ok {
		if rn, ok := right.AsNumber(); ok {
			return ln.Equal(rn)
		}
		return false
	}
	if lb, ok := left.AsBool(); ok {
		rb, ok := right.AsBool()
		return ok && lb == rb
	}
	if ls, ok := left.AsString(); ok {
		rs, ok := right.AsString()
		return ok && ls == rs
	}
	// Null == Null; mapas y listas no participan en igualdad.
	return left.IsNull() && right.IsNull()
}
