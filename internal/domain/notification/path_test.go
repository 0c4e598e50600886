package notification_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain/notification"
)

// eventoProducto construye el árbol de evento típico de inventario para los tests.
func eventoProducto() notification.Value {
	return notification.FromAny(map[string]any{
		"Product": map[string]any{
			"Name":     "Tornillo",
			"SKU":      "T-001",
			"Quantity": 5,
			"MinStock": 10,
			"IsActive": true,
			"Detail":   nil,
		},
		"Warehouse": map[string]any{
			"Name": "Bodega Central",
		},
	})
}

func TestResolve_RutaSimple(t *testing.T) {
	v, ok := notification.Resolve(eventoProducto(), "Product.Name")
	require.True(t, ok)
	assert.Equal(t, "Tornillo", v.Render())
}

func TestResolve_RutaNumerica(t *testing.T) {
	v, ok := notification.Resolve(eventoProducto(), "Product.MinStock")
	require.True(t, ok)
	n, ok := v.AsNumber()
	require.True(t, ok)
	assert.True(t, n.Equal(decimal.NewFromInt(10)))
}

func TestResolve_RutaVacia_NoEncontrada(t *testing.T) {
	_, ok := notification.Resolve(eventoProducto(), "")
	assert.False(t, ok, "ruta vacía debe resolver a no-encontrado, nunca lanzar")
}

func TestResolve_PrimerSegmentoAusente(t *testing.T) {
	_, ok := notification.Resolve(eventoProducto(), "Inexistente.Campo")
	assert.False(t, ok)
}

func TestResolve_SegmentoIntermedioEscalar(t *testing.T) {
	// Product.Name es un string: no es recorrible, la ruta más profunda no resuelve.
	_, ok := notification.Resolve(eventoProducto(), "Product.Name.Length")
	assert.False(t, ok)
}

func TestResolve_SensibleAMayusculas(t *testing.T) {
	_, ok := notification.Resolve(eventoProducto(), "product.name")
	assert.False(t, ok, "no se normalizan nombres de campo")
}

func TestResolve_NuloFinal_ResuelveVacio(t *testing.T) {
	v, ok := notification.Resolve(eventoProducto(), "Product.Detail")
	require.True(t, ok)
	assert.True(t, v.IsNull())
	assert.Equal(t, "", v.Render())
}

func TestResolve_NuloIntermedio_NoEncontrado(t *testing.T) {
	_, ok := notification.Resolve(eventoProducto(), "Product.Detail.Algo")
	assert.False(t, ok)
}

func TestResolve_SobreEscalar_NoEncontrado(t *testing.T) {
	_, ok := notification.Resolve(notification.String("plano"), "Cualquier.Ruta")
	assert.False(t, ok)
}

func TestFromJSON_ConservaNumerosExactos(t *testing.T) {
	v, err := notification.FromJSON([]byte(`{"Product":{"Price":19.99}}`))
	require.NoError(t, err)
	price, ok := notification.Resolve(v, "Product.Price")
	require.True(t, ok)
	assert.Equal(t, "19.99", price.Render(), "sin paso por float64")
}

func TestValue_RenderInvariante(t *testing.T) {
	assert.Equal(t, "true", notification.Bool(true).Render())
	assert.Equal(t, "false", notification.Bool(false).Render())
	assert.Equal(t, "2.5", notification.Number(decimal.RequireFromString("2.5")).Render())
	assert.Equal(t, "", notification.Null().Render())
}
