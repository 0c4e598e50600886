package notification_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/internal/domain/notification"
)

func TestRender_SustituyePlaceholders(t *testing.T) {
	data := notification.FromAny(map[string]any{
		"Product": map[string]any{"Name": "Widget", "SKU": "W1"},
	})
	out := notification.Render("Product '{{Product.Name}}' SKU {{Product.SKU}}", data)
	assert.Equal(t, "Product 'Widget' SKU W1", out)
}

func TestRender_PlaceholderNoResoluble_CadenaVacia(t *testing.T) {
	data := notification.FromAny(map[string]any{"Product": map[string]any{"Name": "Widget"}})
	out := notification.Render("Stock de {{Product.Quantity}} unidades", data)
	assert.Equal(t, "Stock de  unidades", out, "la estructura del mensaje se conserva")
}

func TestRender_TextoSinPlaceholders_PasaIgual(t *testing.T) {
	out := notification.Render("sin tokens aquí", notification.Null())
	assert.Equal(t, "sin tokens aquí", out)
}

func TestRender_Idempotente(t *testing.T) {
	data := notification.FromAny(map[string]any{"Product": map[string]any{"Name": "Widget"}})
	once := notification.Render("Producto {{Product.Name}} listo", data)
	assert.Equal(t, once, notification.Render(once, data))
}

func TestRender_NumerosInvariantes(t *testing.T) {
	data, err := notification.FromJSON([]byte(`{"Product":{"Quantity":2,"MinStock":10}}`))
	assert.NoError(t, err)
	out := notification.Render("{{Product.Quantity}}/{{Product.MinStock}}", data)
	assert.Equal(t, "2/10", out)
}

func TestRender_PlaceholderSinCerrar(t *testing.T) {
	data := notification.FromAny(map[string]any{"A": "x"})
	out := notification.Render("inicio {{A sin cierre", data)
	assert.Equal(t, "inicio {{A sin cierre", out, "token abierto se emite tal cual")
}

func TestRender_LlavesAnidadas_Determinista(t *testing.T) {
	data := notification.FromAny(map[string]any{"A": "x"})
	// El contenido "{A" no resuelve; la llave sobrante pasa como texto.
	assert.Equal(t, "}", notification.Render("{{{A}}}", data))
}

func TestRender_EspaciosDentroDelPlaceholder(t *testing.T) {
	data := notification.FromAny(map[string]any{"A": "x"})
	assert.Equal(t, "x", notification.Render("{{ A }}", data))
}
