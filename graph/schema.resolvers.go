// Package graph provides GraphQL resolvers for the reports gateway.
// This file contains the per-entity query resolvers; every lookup delegates
// to the resilient source client, so a dead backend degrades to empty lists
// instead of failing the query.
package graph

import (
	"context"
	"strings"

	"github.com/sistema-informes/reports-gateway/internal/analytics"
	"github.com/sistema-informes/reports-gateway/internal/source"
)

// Query returns the QueryResolver implementation.
func (r *Resolver) Query() QueryResolver {
	return &queryResolver{r}
}

type queryResolver struct{ *Resolver }

func asPtrs[T any](in []T) []*T {
	out := make([]*T, len(in))
	for i := range in {
		out[i] = &in[i]
	}
	return out
}

// Health returns the service health status.
func (r *queryResolver) Health(ctx context.Context) (*Health, error) {
	return &Health{
		Status:  "ok",
		Version: "0.1.0",
	}, nil
}

// =============================================================================
// USUARIOS
// =============================================================================

// Usuarios lists all users.
func (r *queryResolver) Usuarios(ctx context.Context) ([]*source.User, error) {
	return asPtrs(r.src.Users(ctx)), nil
}

// Usuario returns a single user by id, nil when unknown.
func (r *queryResolver) Usuario(ctx context.Context, id string) (*source.User, error) {
	for _, u := range r.src.Users(ctx) {
		if source.SameID(u.ID, id) {
			return &u, nil
		}
	}
	return nil, nil
}

// UsuariosByStatus filters users by exact status.
func (r *queryResolver) UsuariosByStatus(ctx context.Context, status string) ([]*source.User, error) {
	return asPtrs(analytics.UsersByStatus(r.src.Users(ctx), status)), nil
}

// Users is the English alias for Usuarios.
func (r *queryResolver) Users(ctx context.Context) ([]*source.User, error) {
	return r.Usuarios(ctx)
}

// =============================================================================
// ROLES
// =============================================================================

// Roles lists all roles.
func (r *queryResolver) Roles(ctx context.Context) ([]*source.Role, error) {
	return asPtrs(r.src.Roles(ctx)), nil
}

// Rol returns a single role by id, nil when unknown.
func (r *queryResolver) Rol(ctx context.Context, id string) (*source.Role, error) {
	for _, rol := range r.src.Roles(ctx) {
		if source.SameID(rol.ID, id) {
			return &rol, nil
		}
	}
	return nil, nil
}

// =============================================================================
// CATEGORIAS
// =============================================================================

// Categorias lists all categories.
func (r *queryResolver) Categorias(ctx context.Context) ([]*source.Category, error) {
	return asPtrs(r.src.Categories(ctx)), nil
}

// Categoria returns a single category by id, nil when unknown.
func (r *queryResolver) Categoria(ctx context.Context, id string) (*source.Category, error) {
	for _, c := range r.src.Categories(ctx) {
		if source.SameID(c.ID, id) {
			return &c, nil
		}
	}
	return nil, nil
}

// CategoriasByPriority filters categories by case-folded priority.
func (r *queryResolver) CategoriasByPriority(ctx context.Context, priority string) ([]*source.Category, error) {
	out := []*source.Category{}
	for _, c := range r.src.Categories(ctx) {
		if strings.EqualFold(c.Priority, priority) {
			out = append(out, &c)
		}
	}
	return out, nil
}

// Categories is the English alias for Categorias.
func (r *queryResolver) Categories(ctx context.Context) ([]*source.Category, error) {
	return r.Categorias(ctx)
}

// =============================================================================
// AREAS
// =============================================================================

// Areas lists all areas.
func (r *queryResolver) Areas(ctx context.Context) ([]*source.Area, error) {
	return asPtrs(r.src.Areas(ctx)), nil
}

// Area returns a single area by id, nil when unknown.
func (r *queryResolver) Area(ctx context.Context, id string) (*source.Area, error) {
	for _, a := range r.src.Areas(ctx) {
		if source.SameID(a.ID, id) {
			return &a, nil
		}
	}
	return nil, nil
}

// AreasByResponsable filters areas by responsible person, case-insensitive
// substring.
func (r *queryResolver) AreasByResponsable(ctx context.Context, responsable string) ([]*source.Area, error) {
	needle := strings.ToLower(responsable)
	out := []*source.Area{}
	for _, a := range r.src.Areas(ctx) {
		if strings.Contains(strings.ToLower(a.Responsible), needle) {
			out = append(out, &a)
		}
	}
	return out, nil
}

// =============================================================================
// ESTADOS
// =============================================================================

// Estados lists all report states.
func (r *queryResolver) Estados(ctx context.Context) ([]*source.State, error) {
	return asPtrs(r.src.States(ctx)), nil
}

// Estado returns a single state by id, nil when unknown.
func (r *queryResolver) Estado(ctx context.Context, id string) (*source.State, error) {
	for _, s := range r.src.States(ctx) {
		if source.SameID(s.ID, id) {
			return &s, nil
		}
	}
	return nil, nil
}

// EstadosFinal lists the terminal states.
func (r *queryResolver) EstadosFinal(ctx context.Context) ([]*source.State, error) {
	out := []*source.State{}
	for _, s := range r.src.States(ctx) {
		if s.Final {
			out = append(out, &s)
		}
	}
	return out, nil
}

// States is the English alias for Estados.
func (r *queryResolver) States(ctx context.Context) ([]*source.State, error) {
	return r.Estados(ctx)
}

// =============================================================================
// COMENTARIOS
// =============================================================================

// Comentarios lists all comments.
func (r *queryResolver) Comentarios(ctx context.Context) ([]*source.Comment, error) {
	return asPtrs(r.src.Comments(ctx)), nil
}

// Comentario returns a single comment by id, nil when unknown.
func (r *queryResolver) Comentario(ctx context.Context, id string) (*source.Comment, error) {
	for _, c := range r.src.Comments(ctx) {
		if source.SameID(c.ID, id) {
			return &c, nil
		}
	}
	return nil, nil
}

// ComentariosByReporte filters comments by report id.
func (r *queryResolver) ComentariosByReporte(ctx context.Context, reportID string) ([]*source.Comment, error) {
	return asPtrs(analytics.CommentsByReport(r.src.Comments(ctx), reportID)), nil
}

// ComentariosByUsuario filters comments by author id.
func (r *queryResolver) ComentariosByUsuario(ctx context.Context, userID string) ([]*source.Comment, error) {
	return asPtrs(analytics.CommentsByUser(r.src.Comments(ctx), userID)), nil
}

// Comments is the English alias for Comentarios.
func (r *queryResolver) Comments(ctx context.Context) ([]*source.Comment, error) {
	return r.Comentarios(ctx)
}

// =============================================================================
// PUNTUACIONES
// =============================================================================

// Puntuaciones lists all ratings.
func (r *queryResolver) Puntuaciones(ctx context.Context) ([]*source.Rating, error) {
	return asPtrs(r.src.Ratings(ctx)), nil
}

// Puntuacion returns a single rating by id, nil when unknown.
func (r *queryResolver) Puntuacion(ctx context.Context, id string) (*source.Rating, error) {
	for _, p := range r.src.Ratings(ctx) {
		if source.SameID(p.ID, id) {
			return &p, nil
		}
	}
	return nil, nil
}

// PuntuacionesByReporte filters ratings by report id.
func (r *queryResolver) PuntuacionesByReporte(ctx context.Context, reportID string) ([]*source.Rating, error) {
	return asPtrs(analytics.RatingsByReport(r.src.Ratings(ctx), reportID)), nil
}

// PuntuacionesByUsuario filters ratings by the user who cast them.
func (r *queryResolver) PuntuacionesByUsuario(ctx context.Context, userID string) ([]*source.Rating, error) {
	return asPtrs(analytics.RatingsByUser(r.src.Ratings(ctx), userID)), nil
}

// Ratings is the English alias for Puntuaciones.
func (r *queryResolver) Ratings(ctx context.Context) ([]*source.Rating, error) {
	return r.Puntuaciones(ctx)
}

// =============================================================================
// ARCHIVOS ADJUNTOS
// =============================================================================

// ArchivosAdjuntos lists all attachments.
func (r *queryResolver) ArchivosAdjuntos(ctx context.Context) ([]*source.Attachment, error) {
	return asPtrs(r.src.Attachments(ctx)), nil
}

// ArchivoAdjunto returns a single attachment by id, nil when unknown.
func (r *queryResolver) ArchivoAdjunto(ctx context.Context, id string) (*source.Attachment, error) {
	for _, a := range r.src.Attachments(ctx) {
		if source.SameID(a.ID, id) {
			return &a, nil
		}
	}
	return nil, nil
}

// ArchivosByReporte filters attachments by report id.
func (r *queryResolver) ArchivosByReporte(ctx context.Context, reportID string) ([]*source.Attachment, error) {
	return asPtrs(analytics.AttachmentsByReport(r.src.Attachments(ctx), reportID)), nil
}

// Files is the English alias listing plain file records.
func (r *queryResolver) Files(ctx context.Context) ([]*source.Attachment, error) {
	return asPtrs(r.src.Files(ctx)), nil
}

// =============================================================================
// ETIQUETAS
// =============================================================================

// Etiquetas lists all tags.
func (r *queryResolver) Etiquetas(ctx context.Context) ([]*source.Tag, error) {
	return asPtrs(r.src.Tags(ctx)), nil
}

// Etiqueta returns a single tag by id, nil when unknown.
func (r *queryResolver) Etiqueta(ctx context.Context, id string) (*source.Tag, error) {
	for _, t := range r.src.Tags(ctx) {
		if source.SameID(t.ID, id) {
			return &t, nil
		}
	}
	return nil, nil
}

// Tags is the English alias for Etiquetas.
func (r *queryResolver) Tags(ctx context.Context) ([]*source.Tag, error) {
	return r.Etiquetas(ctx)
}

// =============================================================================
// REPORTES
// =============================================================================

// Reportes lists all reports.
func (r *queryResolver) Reportes(ctx context.Context) ([]*source.Report, error) {
	return asPtrs(r.src.Reports(ctx)), nil
}

// Reporte returns a single report by id, nil when unknown.
func (r *queryResolver) Reporte(ctx context.Context, id string) (*source.Report, error) {
	for _, rep := range r.src.Reports(ctx) {
		if source.SameID(rep.ID, id) {
			return &rep, nil
		}
	}
	return nil, nil
}

// ReportesByStatus filters reports by case-folded status.
func (r *queryResolver) ReportesByStatus(ctx context.Context, status string) ([]*source.Report, error) {
	return asPtrs(analytics.FilterByStatus(r.src.Reports(ctx), status)), nil
}

// ReportesByPriority filters reports by case-folded priority.
func (r *queryResolver) ReportesByPriority(ctx context.Context, priority string) ([]*source.Report, error) {
	return asPtrs(analytics.FilterByPriority(r.src.Reports(ctx), priority)), nil
}

// Reports is the English alias returning a connection object.
func (r *queryResolver) Reports(ctx context.Context) (*ReportConnection, error) {
	items := r.src.Reports(ctx)
	return &ReportConnection{
		Items:  asPtrs(items),
		Total:  len(items),
		Limit:  len(items),
		Offset: 0,
	}, nil
}
