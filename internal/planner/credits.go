package planner

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/yigit/courseplanner/internal/app/models"
)

// TotalCreditsFunc returns completed plus planned credits for a student.
type TotalCreditsFunc func(plan models.Plan, completed models.CompletedRecord) float64

// ParseCredits turns a catalog credit value into a number. Numbers pass
// through, "L-T-S" strings such as "3-0-6" yield their first token, and
// anything unreadable yields 0.
func ParseCredits(value interface{}) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case models.CreditValue:
		return ParseCredits(v.Raw())
	case *models.CreditValue:
		if v == nil {
			return 0
		}
		return ParseCredits(v.Raw())
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return finite(f)
	case string:
		return parseCreditString(v)
	default:
		return 0
	}
}

func parseCreditString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	token := s
	if i := strings.Index(s, "-"); i > 0 {
		token = s[:i]
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// NormalizeCredits is the integer credit count stored on a planned course.
func NormalizeCredits(value interface{}) int {
	return int(ParseCredits(value))
}

// CreditAggregator sums credits across a student's history and plan.
type CreditAggregator struct {
	catalog *Catalog
}

// NewCreditAggregator creates an aggregator that reads completed-course
// credits from the catalog.
func NewCreditAggregator(catalog *Catalog) *CreditAggregator {
	return &CreditAggregator{catalog: catalog}
}

// CompletedCredits sums catalog credits of courses with status completed.
// Codes missing from the catalog count as 0.
func (a *CreditAggregator) CompletedCredits(completed models.CompletedRecord) float64 {
	var total float64
	for _, code := range completed.CompletedCodes() {
		if course, ok := a.catalog.Lookup(code); ok {
			total += ParseCredits(course.Credits)
		}
	}
	return total
}

// PlannedCredits sums the credits of every plan entry.
func PlannedCredits(plan models.Plan) float64 {
	var total float64
	for _, pc := range plan.Courses {
		total += float64(pc.Credits)
	}
	return total
}

// Total is completed plus planned credits. It satisfies TotalCreditsFunc.
func (a *CreditAggregator) Total(plan models.Plan, completed models.CompletedRecord) float64 {
	return a.CompletedCredits(completed) + PlannedCredits(plan)
}

// CreditsBySemester groups planned credits by semester tag.
func CreditsBySemester(plan models.Plan) map[models.Term]float64 {
	out := make(map[models.Term]float64)
	for _, pc := range plan.Courses {
		out[pc.Semester] += float64(pc.Credits)
	}
	return out
}

func formatCredits(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
