package source

import (
	"strconv"
	"strings"
)

// The REST backend serves every entity under two naming conventions: the
// canonical /api/v1 paths emit English snake_case keys, the legacy aliases
// emit the Spanish column names of the underlying schema. Each canonical
// field resolves from an ordered list of acceptable source keys; the first
// present, non-null value wins. A record already in canonical form passes
// through unchanged.

// pick returns the first present, non-null value among the given keys.
func pick(rec map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// coerceID renders an id-like value as an opaque string. JSON numbers keep
// their integer form ("5", not "5.0"); non-numeric ids pass through as-is.
func coerceID(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func coerceFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f
		}
	}
	return 0
}

func coerceInt(v any) int {
	return int(coerceFloat(v))
}

// coerceBool accepts the textual truthy/falsy spellings seen across both
// naming conventions, including Spanish "si"/"no".
func coerceBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "si", "sí", "yes":
			return true
		}
	}
	return false
}

func pickID(rec map[string]any, keys ...string) (string, bool) {
	v, ok := pick(rec, keys...)
	if !ok {
		return "", false
	}
	id := coerceID(v)
	return id, id != ""
}

func pickString(rec map[string]any, keys ...string) string {
	if v, ok := pick(rec, keys...); ok {
		return coerceString(v)
	}
	return ""
}

func pickInt(rec map[string]any, keys ...string) int {
	if v, ok := pick(rec, keys...); ok {
		return coerceInt(v)
	}
	return 0
}

func pickBool(rec map[string]any, keys ...string) bool {
	if v, ok := pick(rec, keys...); ok {
		return coerceBool(v)
	}
	return false
}

// normalizeReport maps a raw report record to its canonical form. The second
// return value is false when the record carries no resolvable id; such
// records are dropped at the fetch boundary.
func normalizeReport(rec map[string]any) (Report, bool) {
	id, ok := pickID(rec, "id", "id_reporte")
	if !ok {
		return Report{}, false
	}
	return Report{
		ID:          id,
		Title:       pickString(rec, "title", "titulo"),
		Description: pickString(rec, "description", "descripcion"),
		Location:    pickString(rec, "location", "ubicacion"),
		Status:      pickString(rec, "status", "estado"),
		Priority:    pickString(rec, "priority", "prioridad"),
		CategoryID:  idOrEmpty(rec, "category_id", "id_categoria"),
		UserID:      idOrEmpty(rec, "user_id", "id_usuario"),
		AreaID:      idOrEmpty(rec, "area_id", "id_area"),
		StateID:     idOrEmpty(rec, "state_id", "id_estado"),
		CreatedAt:   pickString(rec, "created_at", "creado_en"),
		UpdatedAt:   pickString(rec, "updated_at", "actualizado_en"),
	}, true
}

func normalizeCategory(rec map[string]any) (Category, bool) {
	id, ok := pickID(rec, "id", "id_categoria")
	if !ok {
		return Category{}, false
	}
	return Category{
		ID:          id,
		Name:        pickString(rec, "name", "nombre"),
		Description: pickString(rec, "description", "descripcion"),
		Priority:    pickString(rec, "priority", "prioridad"),
		Status:      pickString(rec, "status", "estado"),
	}, true
}

func normalizeArea(rec map[string]any) (Area, bool) {
	id, ok := pickID(rec, "id", "id_area")
	if !ok {
		return Area{}, false
	}
	return Area{
		ID:          id,
		Name:        pickString(rec, "name", "nombre_area", "nombre"),
		Location:    pickString(rec, "location", "ubicacion"),
		Responsible: pickString(rec, "responsible", "responsable"),
		Description: pickString(rec, "description", "descripcion"),
	}, true
}

func normalizeState(rec map[string]any) (State, bool) {
	id, ok := pickID(rec, "id", "id_estado")
	if !ok {
		return State{}, false
	}
	return State{
		ID:          id,
		Name:        pickString(rec, "name", "nombre"),
		Description: pickString(rec, "description", "descripcion"),
		Color:       pickString(rec, "color"),
		Order:       pickInt(rec, "order", "orden"),
		Final:       pickBool(rec, "final", "es_final", "is_final"),
	}, true
}

func normalizeRole(rec map[string]any) (Role, bool) {
	id, ok := pickID(rec, "id", "id_rol")
	if !ok {
		return Role{}, false
	}
	return Role{
		ID:          id,
		Name:        pickString(rec, "name", "nombre_rol", "nombre"),
		Description: pickString(rec, "description", "descripcion"),
		Permissions: pickString(rec, "permissions", "permisos"),
	}, true
}

func normalizeUser(rec map[string]any) (User, bool) {
	id, ok := pickID(rec, "id", "id_usuario")
	if !ok {
		return User{}, false
	}
	return User{
		ID:     id,
		Name:   pickString(rec, "name", "nombre"),
		Email:  pickString(rec, "email"),
		Status: pickString(rec, "status", "estado"),
		RoleID: idOrEmpty(rec, "role_id", "id_rol"),
	}, true
}

func normalizeComment(rec map[string]any) (Comment, bool) {
	id, ok := pickID(rec, "id", "id_comentario")
	if !ok {
		return Comment{}, false
	}
	return Comment{
		ID:       id,
		ReportID: idOrEmpty(rec, "report_id", "id_reporte"),
		UserID:   idOrEmpty(rec, "user_id", "id_usuario"),
		Content:  pickString(rec, "content", "contenido"),
		Date:     pickString(rec, "date", "fecha"),
	}, true
}

func normalizeRating(rec map[string]any) (Rating, bool) {
	id, ok := pickID(rec, "id", "id_puntuacion")
	if !ok {
		return Rating{}, false
	}
	value := 0.0
	if v, present := pick(rec, "value", "valor"); present {
		value = coerceFloat(v)
	}
	if value < 0 {
		value = 0
	}
	if value > 5 {
		value = 5
	}
	return Rating{
		ID:       id,
		ReportID: idOrEmpty(rec, "report_id", "id_reporte"),
		UserID:   idOrEmpty(rec, "user_id", "id_usuario"),
		Value:    value,
		Date:     pickString(rec, "date", "fecha"),
	}, true
}

func normalizeAttachment(rec map[string]any) (Attachment, bool) {
	id, ok := pickID(rec, "id", "id_archivo")
	if !ok {
		return Attachment{}, false
	}
	return Attachment{
		ID:       id,
		ReportID: idOrEmpty(rec, "report_id", "id_reporte"),
		Name:     pickString(rec, "name", "nombre_archivo", "filename", "nombre"),
		Type:     pickString(rec, "type", "tipo"),
		URL:      pickString(rec, "url"),
	}, true
}

func normalizeTag(rec map[string]any) (Tag, bool) {
	id, ok := pickID(rec, "id", "id_etiqueta")
	if !ok {
		return Tag{}, false
	}
	return Tag{
		ID:    id,
		Name:  pickString(rec, "name", "nombre"),
		Color: pickString(rec, "color"),
	}, true
}

// idOrEmpty resolves a foreign-key field, tolerating both id types.
func idOrEmpty(rec map[string]any, keys ...string) string {
	id, _ := pickID(rec, keys...)
	return id
}

// SameID compares two opaque ids, tolerating mixed numeric and string
// representations across sources ("5" equals "5.0" but not "05x"). All join
// logic goes through this helper so id-type mismatches stay in one place.
func SameID(a, b string) bool {
	if a == b {
		return a != ""
	}
	fa, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	fb, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	return errA == nil && errB == nil && fa == fb
}
