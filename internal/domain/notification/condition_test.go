package notification_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain/notification"
)

func evaluar(t *testing.T, expr string, data notification.Value) (bool, []string) {
	t.Helper()
	cond, err := notification.ParseCondition([]byte(expr))
	require.NoError(t, err)
	return cond.Eval(data)
}

func datosCantidad(quantity, minStock int64) notification.Value {
	return notification.FromAny(map[string]any{
		"Product": map[string]any{
			"Quantity": quantity,
			"MinStock": minStock,
			"Name":     "Tornillo",
			"IsActive": true,
		},
	})
}

func TestEval_CondicionVacia_MatcheaSiempre(t *testing.T) {
	for _, expr := range []string{"", "{}", "null", "  "} {
		matched, _ := evaluar(t, expr, datosCantidad(1, 1))
		assert.True(t, matched, "expresión %q debe matchear incondicionalmente", expr)
	}
}

func TestEval_PlaceholderComoOperando(t *testing.T) {
	expr := `{"Product.Quantity": {"operator": "<=", "value": "{{Product.MinStock}}"}}`
	cases := []struct {
		quantity, minStock int64
		want               bool
	}{
		{5, 10, true},
		{10, 5, false},
		{10, 10, true},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d<=%d", tc.quantity, tc.minStock), func(t *testing.T) {
			matched, _ := evaluar(t, expr, datosCantidad(tc.quantity, tc.minStock))
			assert.Equal(t, tc.want, matched)
		})
	}
}

func TestEval_IgualdadPorTipos(t *testing.T) {
	data := datosCantidad(5, 10)

	matched, _ := evaluar(t, `{"Product.Name": {"operator": "==", "value": "Tornillo"}}`, data)
	assert.True(t, matched, "igualdad de strings")

	matched, _ = evaluar(t, `{"Product.IsActive": {"operator": "==", "value": true}}`, data)
	assert.True(t, matched, "igualdad de booleanos")

	matched, _ = evaluar(t, `{"Product.Quantity": {"operator": "==", "value": "5"}}`, data)
	assert.True(t, matched, "número contra string numérico compara numéricamente")

	matched, _ = evaluar(t, `{"Product.Name": {"operator": "!=", "value": "Tuerca"}}`, data)
	assert.True(t, matched)
}

func TestEval_IgualdadDeStringsNumericos_EsTextual(t *testing.T) {
	// Dos strings se comparan como texto aunque parseen como número:
	// los SKUs "7" y "007" son códigos distintos.
	data := notification.FromAny(map[string]any{
		"Product": map[string]any{"SKU": "7", "Lote": "5"},
	})

	matched, _ := evaluar(t, `{"Product.SKU": {"operator": "==", "value": "007"}}`, data)
	assert.False(t, matched, `"7" == "007" no debe matchear: comparación textual`)

	matched, _ = evaluar(t, `{"Product.Lote": {"operator": "==", "value": "5.0"}}`, data)
	assert.False(t, matched, `"5" == "5.0" no debe matchear: comparación textual`)

	matched, _ = evaluar(t, `{"Product.SKU": {"operator": "!=", "value": "007"}}`, data)
	assert.True(t, matched)

	matched, _ = evaluar(t, `{"Product.SKU": {"operator": "==", "value": "7"}}`, data)
	assert.True(t, matched, "strings idénticos sí matchean")
}

func TestEval_OrdenConTiposNoNumericos_EsFalse(t *testing.T) {
	// String no numérico con operador de orden: el triple es false, no un error.
	matched, _ := evaluar(t, `{"Product.Name": {"operator": "<=", "value": 10}}`, datosCantidad(5, 10))
	assert.False(t, matched)

	matched, _ = evaluar(t, `{"Product.IsActive": {"operator": ">", "value": 0}}`, datosCantidad(5, 10))
	assert.False(t, matched, "bool no coerciona a número")
}

func TestEval_RutaNoResoluble_FallaCondicion(t *testing.T) {
	matched, _ := evaluar(t, `{"Product.NoExiste": {"operator": "==", "value": 1}}`, datosCantidad(5, 10))
	assert.False(t, matched, "AND con cortocircuito: ruta ausente falla todo")
}

func TestEval_OperadorDesconocido_FalseConWarning(t *testing.T) {
	matched, warnings := evaluar(t, `{"Product.Quantity": {"operator": "~=", "value": 5}}`, datosCantidad(5, 10))
	assert.False(t, matched)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "~=")
}

func TestEval_ANDDeVariosTriples(t *testing.T) {
	expr := `{
		"Product.Quantity": {"operator": "<=", "value": "{{Product.MinStock}}"},
		"Product.IsActive": {"operator": "==", "value": true}
	}`
	matched, _ := evaluar(t, expr, datosCantidad(2, 10))
	assert.True(t, matched)

	inactivo := notification.FromAny(map[string]any{
		"Product": map[string]any{"Quantity": 2, "MinStock": 10, "IsActive": false},
	})
	matched, _ = evaluar(t, expr, inactivo)
	assert.False(t, matched)
}

func TestParseCondition_Malformadas(t *testing.T) {
	cases := []struct {
		name string
		expr string
	}{
		{"no es objeto", `[1,2,3]`},
		{"cláusula escalar", `{"Product.Quantity": 5}`},
		{"sin operator", `{"Product.Quantity": {"value": 5}}`},
		{"operator no string", `{"Product.Quantity": {"operator": 7, "value": 5}}`},
		{"sin value", `{"Product.Quantity": {"operator": "=="}}`},
		{"value compuesto", `{"Product.Quantity": {"operator": "==", "value": {"x": 1}}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := notification.ParseCondition([]byte(tc.expr))
			require.Error(t, err)
			assert.ErrorIs(t, err, notification.ErrMalformedCondition)
		})
	}
}

func TestParseCondition_OperadorDesconocidoParsea(t *testing.T) {
	// Sintácticamente válido: la regla no se invalida al cargar, el triple
	// falla al evaluar (ver TestEval_OperadorDesconocido_FalseConWarning).
	_, err := notification.ParseCondition([]byte(`{"A.B": {"operator": "contains", "value": "x"}}`))
	assert.NoError(t, err)
}
