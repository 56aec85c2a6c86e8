// Package analytics provides pure aggregation functions over normalized
// entity collections. All functions are deterministic given identical input:
// no I/O, no randomness, no wall clock.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sistema-informes/reports-gateway/internal/source"
)

// UnknownArea is the grouping bucket for reports with an empty location.
const UnknownArea = "Sin área"

// Tally partitions reports into the three recognized status buckets.
// Unmatched statuses count toward Total only, so
// Open+InProgress+Closed <= Total always holds.
type Tally struct {
	Total      int
	Open       int
	InProgress int
	Closed     int
}

// AreaCount is one entry of the area ranking.
type AreaCount struct {
	Area  string
	Count int
}

// KPI is a generic key/count ranking entry.
type KPI struct {
	Key   string
	Value int
}

var (
	openSynonyms   = map[string]bool{"abierto": true, "abiertos": true, "open": true}
	closedSynonyms = map[string]bool{"cerrado": true, "cerrados": true, "closed": true}
)

func isInProgress(status string) bool {
	return strings.Contains(status, "proceso") || strings.Contains(status, "progress")
}

// StatusTally counts reports per status bucket by case-insensitive synonym
// match ("Abierto"/"open", "Cerrado"/"closed", anything containing a
// "proceso"/"progress" token).
func StatusTally(reports []source.Report) Tally {
	t := Tally{Total: len(reports)}
	for _, r := range reports {
		status := strings.ToLower(strings.TrimSpace(r.Status))
		switch {
		case openSynonyms[status]:
			t.Open++
		case closedSynonyms[status]:
			t.Closed++
		case isInProgress(status):
			t.InProgress++
		}
	}
	return t
}

// TopAreas groups reports by location (empty locations fall into the
// UnknownArea bucket), sorted descending by count. Ties keep first-seen
// order. limit <= 0 falls back to 5.
func TopAreas(reports []source.Report, limit int) []AreaCount {
	if limit <= 0 {
		limit = 5
	}
	counts := map[string]int{}
	order := []string{}
	for _, r := range reports {
		area := r.Location
		if area == "" {
			area = UnknownArea
		}
		if _, seen := counts[area]; !seen {
			order = append(order, area)
		}
		counts[area]++
	}
	ranking := make([]AreaCount, 0, len(order))
	for _, area := range order {
		ranking = append(ranking, AreaCount{Area: area, Count: counts[area]})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})
	if len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking
}

// TopUsers ranks users by number of authored reports. User ids that do not
// resolve against the users collection render as "User #<id>".
func TopUsers(reports []source.Report, users []source.User, limit int) []KPI {
	if limit <= 0 {
		limit = 5
	}
	counts := map[string]int{}
	order := []string{}
	for _, r := range reports {
		id := r.UserID
		if id == "" {
			id = "0"
		}
		if _, seen := counts[id]; !seen {
			order = append(order, id)
		}
		counts[id]++
	}
	ranking := make([]KPI, 0, len(order))
	for _, id := range order {
		name := fmt.Sprintf("User #%s", id)
		for _, u := range users {
			if source.SameID(u.ID, id) {
				name = u.Name
				break
			}
		}
		ranking = append(ranking, KPI{Key: name, Value: counts[id]})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Value > ranking[j].Value
	})
	if len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking
}

// TopTags ranks tags by list position: older tags (lower in the list) score
// higher. This is a placeholder heuristic, not real usage data — the source
// exposes no tag-to-report relation to count against.
func TopTags(tags []source.Tag, limit int) []KPI {
	if limit <= 0 {
		limit = 5
	}
	ranking := make([]KPI, 0, len(tags))
	for i, t := range tags {
		ranking = append(ranking, KPI{Key: t.Name, Value: len(tags) - i})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Value > ranking[j].Value
	})
	if len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking
}

// AverageRating is the arithmetic mean of all rating values, 0 when the
// collection is empty.
func AverageRating(ratings []source.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range ratings {
		sum += r.Value
	}
	return sum / float64(len(ratings))
}

// AverageRatingFor is the mean rating of a single report, 0 when it has none.
func AverageRatingFor(ratings []source.Rating, reportID string) float64 {
	return AverageRating(RatingsByReport(ratings, reportID))
}

// FilterByArea keeps reports whose location contains the given text,
// case-insensitively.
func FilterByArea(reports []source.Report, area string) []source.Report {
	needle := strings.ToLower(area)
	out := []source.Report{}
	for _, r := range reports {
		if strings.Contains(strings.ToLower(r.Location), needle) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByCategory resolves the category name (case-fold exact match) to its
// id and keeps reports referencing it. An unknown category yields an empty
// result.
func FilterByCategory(reports []source.Report, categories []source.Category, name string) []source.Report {
	var categoryID string
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			categoryID = c.ID
			break
		}
	}
	out := []source.Report{}
	if categoryID == "" {
		return out
	}
	for _, r := range reports {
		if source.SameID(r.CategoryID, categoryID) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByStatus keeps reports whose status equals the given one after
// case-folding.
func FilterByStatus(reports []source.Report, status string) []source.Report {
	out := []source.Report{}
	for _, r := range reports {
		if strings.EqualFold(r.Status, status) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByPriority keeps reports whose priority equals the given one after
// case-folding.
func FilterByPriority(reports []source.Report, priority string) []source.Report {
	out := []source.Report{}
	for _, r := range reports {
		if strings.EqualFold(r.Priority, priority) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByUser keeps reports authored by the given user id.
func FilterByUser(reports []source.Report, userID string) []source.Report {
	out := []source.Report{}
	for _, r := range reports {
		if source.SameID(r.UserID, userID) {
			out = append(out, r)
		}
	}
	return out
}

// The backend emits naive ISO timestamps (Python isoformat, with or without
// microseconds); the canonical path emits RFC3339.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FilterByDateRange keeps reports created within [from, to], inclusive.
// Reports with malformed creation timestamps are excluded rather than
// raising; malformed bounds yield an empty result.
func FilterByDateRange(reports []source.Report, from, to string) []source.Report {
	out := []source.Report{}
	start, okFrom := parseDate(from)
	end, okTo := parseDate(to)
	if !okFrom || !okTo {
		return out
	}
	for _, r := range reports {
		created, ok := parseDate(r.CreatedAt)
		if !ok {
			continue
		}
		if !created.Before(start) && !created.After(end) {
			out = append(out, r)
		}
	}
	return out
}

// RecentActivity merges report creations and comments into one feed sorted
// by date descending. On equal dates encounter order is kept: reports before
// comments. Comment bodies are cut at 50 characters.
func RecentActivity(reports []source.Report, comments []source.Comment, limit int) []string {
	if limit <= 0 {
		limit = 10
	}
	type entry struct {
		date time.Time
		text string
	}
	entries := []entry{}
	for _, r := range reports {
		date, _ := parseDate(r.CreatedAt)
		entries = append(entries, entry{date: date, text: "Reporte creado: " + r.Title})
	}
	for _, c := range comments {
		date, _ := parseDate(c.Date)
		content := c.Content
		if len(content) > 50 {
			content = content[:50]
		}
		entries = append(entries, entry{
			date: date,
			text: fmt.Sprintf("Comentario en reporte #%s: %s...", c.ReportID, content),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].date.After(entries[j].date)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.text
	}
	return out
}

// UsersByStatus keeps users with the exact given status.
func UsersByStatus(users []source.User, status string) []source.User {
	out := []source.User{}
	for _, u := range users {
		if u.Status == status {
			out = append(out, u)
		}
	}
	return out
}

// CommentsByReport keeps comments belonging to the given report.
func CommentsByReport(comments []source.Comment, reportID string) []source.Comment {
	out := []source.Comment{}
	for _, c := range comments {
		if source.SameID(c.ReportID, reportID) {
			out = append(out, c)
		}
	}
	return out
}

// CommentsByUser keeps comments authored by the given user.
func CommentsByUser(comments []source.Comment, userID string) []source.Comment {
	out := []source.Comment{}
	for _, c := range comments {
		if source.SameID(c.UserID, userID) {
			out = append(out, c)
		}
	}
	return out
}

// RatingsByReport keeps ratings belonging to the given report.
func RatingsByReport(ratings []source.Rating, reportID string) []source.Rating {
	out := []source.Rating{}
	for _, r := range ratings {
		if source.SameID(r.ReportID, reportID) {
			out = append(out, r)
		}
	}
	return out
}

// RatingsByUser keeps ratings cast by the given user.
func RatingsByUser(ratings []source.Rating, userID string) []source.Rating {
	out := []source.Rating{}
	for _, r := range ratings {
		if source.SameID(r.UserID, userID) {
			out = append(out, r)
		}
	}
	return out
}

// AttachmentsByReport keeps attachments belonging to the given report.
func AttachmentsByReport(attachments []source.Attachment, reportID string) []source.Attachment {
	out := []source.Attachment{}
	for _, a := range attachments {
		if source.SameID(a.ReportID, reportID) {
			out = append(out, a)
		}
	}
	return out
}
