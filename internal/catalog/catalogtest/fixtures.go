// Package catalogtest provides a small fixed catalog for tests.
package catalogtest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/hyperjump/darkseeker/internal/models"
)

// JSON is a ten-item catalog. Three titles contain "arduino"; dates use mixed formats.
const JSON = `[
  {"id": 1, "title": "Kit Arduino Uno para principiantes", "description": "Placa de desarrollo con sensores y cables", "category": "Electrónica", "price": 450, "tags": ["arduino", "hardware", "iot"], "date": "2024-03-15"},
  {"id": 2, "title": "Curso de Arduino avanzado", "description": "Aprende a programar microcontroladores", "category": "Educación", "price": 120, "tags": ["arduino", "programación"], "date": "2024-05-02T10:00:00Z"},
  {"id": 3, "title": "Raspberry Pi 4 Model B", "description": "Mini computadora para proyectos con Linux", "category": "Electrónica", "price": 1500, "tags": ["raspberry", "linux", "hardware"], "date": "2023-11-20"},
  {"id": 4, "title": "Sensor ultrasónico para Arduino", "description": "Mide distancias de 2 a 400 cm", "category": "Electrónica", "price": 80, "tags": ["sensores", "hardware"], "date": "2024/01/10"},
  {"id": 5, "title": "Curso de desarrollo web", "description": "HTML, CSS y JavaScript desde cero", "category": "Educación", "price": 300, "tags": ["web", "programación"], "date": "2024-06-01"},
  {"id": 6, "title": "Introducción a la IA", "description": "Fundamentos de inteligencia artificial y aprendizaje automático", "category": "Educación", "price": 500, "tags": ["ia", "python"], "date": "Jan 5, 2025"},
  {"id": 7, "title": "Auditoría de seguridad web", "description": "Pruebas de penetración para aplicaciones web", "category": "Servicios", "price": 2500, "tags": ["seguridad", "web"], "date": "2024-09-30 14:30:00"},
  {"id": 8, "title": "Cámara de vigilancia IP", "description": "Vigilancia remota con visión nocturna", "category": "Electrónica", "price": 100, "tags": ["seguridad", "iot"], "date": "2023-07-04"},
  {"id": 9, "title": "Libro de Python", "description": "Guía práctica de programación", "category": "Libros", "price": 45.5, "tags": ["python", "programación"], "date": "2022-12-25"},
  {"id": 10, "title": "Servidor doméstico NAS", "description": "Almacenamiento en red para tu hogar", "category": "Electrónica", "price": 3200, "tags": ["hardware", "linux"], "date": "2025-02-14"}
]
`

// Items returns a fresh copy of the fixture items.
func Items() []models.Item {
	var items []models.Item
	if err := json.Unmarshal([]byte(JSON), &items); err != nil {
		panic(err)
	}
	return items
}

// IDs returns the ids of scored items in order.
func IDs(items []models.ScoredItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID.String()
	}
	return ids
}

// WriteFile writes content to name inside dir and returns the path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
