package notification

import "strings"

// Resolve navega una ruta con puntos (ej. "Product.MinStock") sobre el árbol
// de datos del evento. Devuelve found=false si la ruta está vacía, si algún
// segmento intermedio no existe, es nulo o no es recorrible (escalar antes de
// agotar la ruta). La comparación de nombres es sensible a mayúsculas.
// Nunca lanza: la ausencia es un resultado normal que el caller consume como
// "la condición no puede satisfacerse".
func Resolve(root Value, path string) (Value, bool) {
	if path == "" {
		return Value{}, false
	}
	segments := strings.Split(path, ".")
	current := root
	for i, segment := range segments {
		if segment == "" {
			return Value{}, false
		}
		next, ok := current.Field(segment)
		if !ok {
			return Value{}, false
		}
		// Un nulo intermedio corta la navegación; un nulo final sí resuelve
		// (se renderiza como cadena vacía).
		if next.IsNull() && i < len(segments)-1 {
			return Value{}, false
		}
		current = next
	}
	return current, true
}
