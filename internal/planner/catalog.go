package planner

import "github.com/yigit/courseplanner/internal/app/models"

// Catalog is a read-only index of the courses offered under a curriculum.
type Catalog struct {
	courses []models.Course
	index   map[string]int
}

// NewCatalog indexes courses by code. When a code repeats, the first entry wins.
func NewCatalog(courses []models.Course) *Catalog {
	c := &Catalog{
		courses: make([]models.Course, 0, len(courses)),
		index:   make(map[string]int, len(courses)),
	}
	for _, course := range courses {
		if _, dup := c.index[course.Code]; dup {
			continue
		}
		c.index[course.Code] = len(c.courses)
		c.courses = append(c.courses, course)
	}
	return c
}

// Lookup returns the course with the given code.
func (c *Catalog) Lookup(code string) (models.Course, bool) {
	if c == nil {
		return models.Course{}, false
	}
	i, ok := c.index[code]
	if !ok {
		return models.Course{}, false
	}
	return c.courses[i], true
}

// Courses returns the catalog in its original order.
func (c *Catalog) Courses() []models.Course {
	if c == nil {
		return nil
	}
	out := make([]models.Course, len(c.courses))
	copy(out, c.courses)
	return out
}

// Len is the number of distinct courses.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.courses)
}

// AddableCourses lists catalog courses that are neither on the plan nor
// already completed or in progress. The order follows the catalog.
func AddableCourses(catalog *Catalog, plan models.Plan, completed models.CompletedRecord) []models.Course {
	var out []models.Course
	for _, course := range catalog.Courses() {
		if plan.Contains(course.Code) || completed.IsTaken(course.Code) {
			continue
		}
		out = append(out, course)
	}
	return out
}
