package notification

import "strings"

// Render sustituye los placeholders {{Ruta.Con.Puntos}} de la plantilla por
// los valores resueltos contra los datos del evento, con un escáner explícito
// de dos estados (texto / dentro de placeholder) en lugar de regex.
// Un placeholder no resoluble se sustituye por cadena vacía; el texto fuera
// de placeholders pasa sin cambios. Nunca falla, y es idempotente sobre un
// texto ya renderizado (sin tokens {{}} restantes).
func Render(template string, data Value) string {
	const (
		stateText = iota
		statePlaceholder
	)

	var out strings.Builder
	out.Grow(len(template))

	state := stateText
	start := 0 // inicio del contenido del placeholder actual

	i := 0
	for i < len(template) {
		switch state {
		case stateText:
			if template[i] == '{' && i+1 < len(template) && template[i+1] == '{' {
				state = statePlaceholder
				start = i + 2
				i += 2
				continue
			}
			out.WriteByte(template[i])
			i++
		case statePlaceholder:
			if template[i] == '}' && i+1 < len(template) && template[i+1] == '}' {
				path := strings.TrimSpace(template[start:i])
				if value, ok := Resolve(data, path); ok {
					out.WriteString(value.Render())
				}
				state = stateText
				i += 2
				continue
			}
			i++
		}
	}

	// Placeholder sin cerrar: se emite tal cual, sin sustitución.
	if state == statePlaceholder {
		out.WriteString(template[start-2:])
	}

	return out.String()
}
