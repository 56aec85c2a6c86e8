package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeReport_SpanishKeys(t *testing.T) {
	rec := map[string]any{
		"id_reporte":   float64(7),
		"titulo":       "Fuga de agua",
		"descripcion":  "Fuga en el pasillo",
		"ubicacion":    "Edificio A",
		"id_categoria": float64(3),
		"id_usuario":   float64(2),
		"id_area":      float64(1),
		"id_estado":    float64(4),
		"creado_en":    "2024-05-01T10:00:00",
	}

	r, ok := normalizeReport(rec)
	require.True(t, ok)
	assert.Equal(t, "7", r.ID)
	assert.Equal(t, "Fuga de agua", r.Title)
	assert.Equal(t, "Fuga en el pasillo", r.Description)
	assert.Equal(t, "Edificio A", r.Location)
	assert.Equal(t, "3", r.CategoryID)
	assert.Equal(t, "2", r.UserID)
	assert.Equal(t, "1", r.AreaID)
	assert.Equal(t, "4", r.StateID)
	assert.Equal(t, "2024-05-01T10:00:00", r.CreatedAt)
}

func TestNormalizeReport_CanonicalKeysIdentity(t *testing.T) {
	rec := map[string]any{
		"id":          "abc-1",
		"title":       "Broken light",
		"description": "Hall light out",
		"location":    "Building B",
		"status":      "Abierto",
		"priority":    "Media",
		"category_id": float64(2),
		"user_id":     "9",
		"created_at":  "2024-06-01T00:00:00Z",
	}

	r, ok := normalizeReport(rec)
	require.True(t, ok)
	assert.Equal(t, "abc-1", r.ID)
	assert.Equal(t, "Broken light", r.Title)
	assert.Equal(t, "Hall light out", r.Description)
	assert.Equal(t, "Building B", r.Location)
	assert.Equal(t, "Abierto", r.Status)
	assert.Equal(t, "Media", r.Priority)
	assert.Equal(t, "2", r.CategoryID)
	assert.Equal(t, "9", r.UserID)
}

func TestNormalizeReport_CanonicalWinsOverAlias(t *testing.T) {
	rec := map[string]any{
		"id":         float64(1),
		"title":      "canonical",
		"titulo":     "alias",
		"id_reporte": float64(99),
	}

	r, ok := normalizeReport(rec)
	require.True(t, ok)
	assert.Equal(t, "1", r.ID)
	assert.Equal(t, "canonical", r.Title)
}

func TestNormalizeReport_MissingIDDropped(t *testing.T) {
	_, ok := normalizeReport(map[string]any{"title": "sin id"})
	assert.False(t, ok)
}

func TestNormalizeRating_ValueClampedAndDefaulted(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  float64
	}{
		{"absent", nil, 0},
		{"non-numeric", "muy bueno", 0},
		{"negative", float64(-1), 0},
		{"above range", float64(9), 5},
		{"in range", float64(4), 4},
		{"numeric string", "3", 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := map[string]any{"id_puntuacion": float64(1), "id_reporte": float64(5)}
			if tc.value != nil {
				rec["valor"] = tc.value
			}
			r, ok := normalizeRating(rec)
			require.True(t, ok)
			assert.Equal(t, tc.want, r.Value)
			assert.Equal(t, "5", r.ReportID)
		})
	}
}

func TestNormalizeState_BooleanSpellings(t *testing.T) {
	cases := []struct {
		value any
		want  bool
	}{
		{true, true},
		{"true", true},
		{"1", true},
		{"si", true},
		{"sí", true},
		{float64(1), true},
		{false, false},
		{"no", false},
		{"0", false},
		{nil, false},
	}

	for _, tc := range cases {
		rec := map[string]any{"id_estado": float64(1), "nombre": "Cerrado"}
		if tc.value != nil {
			rec["es_final"] = tc.value
		}
		s, ok := normalizeState(rec)
		require.True(t, ok)
		assert.Equal(t, tc.want, s.Final, "value %v", tc.value)
	}
}

func TestNormalizeAttachment_NameAliases(t *testing.T) {
	for _, key := range []string{"name", "nombre_archivo", "filename"} {
		rec := map[string]any{"id_archivo": float64(1), key: "foto.png"}
		a, ok := normalizeAttachment(rec)
		require.True(t, ok)
		assert.Equal(t, "foto.png", a.Name)
	}
}

func TestNormalizeUser_SpanishKeys(t *testing.T) {
	u, ok := normalizeUser(map[string]any{
		"id_usuario": float64(2),
		"nombre":     "Ana",
		"email":      "ana@example.com",
		"estado":     "Activo",
		"id_rol":     float64(1),
	})
	require.True(t, ok)
	assert.Equal(t, User{ID: "2", Name: "Ana", Email: "ana@example.com", Status: "Activo", RoleID: "1"}, u)
}

func TestSameID(t *testing.T) {
	assert.True(t, SameID("5", "5"))
	assert.True(t, SameID("5", "5.0"))
	assert.True(t, SameID("05", "5"))
	assert.False(t, SameID("5", "6"))
	assert.False(t, SameID("abc", "abd"))
	assert.True(t, SameID("abc", "abc"))
	assert.False(t, SameID("", ""))
}
