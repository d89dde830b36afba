package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aimldept/deptbot-go/internal/content"
	domerrors "github.com/aimldept/deptbot-go/internal/errors"
	"github.com/aimldept/deptbot-go/internal/search"
	"github.com/aimldept/deptbot-go/internal/storage"
)

// ListFaculty returns all faculty, optionally filtered by designation,
// specialization and a BM25 search query.
func (h *Handlers) ListFaculty(c *gin.Context) {
	records, err := h.db.ListFaculty(c.Request.Context(), storage.FacultyFilter{
		Designation:    c.Query("designation"),
		Specialization: c.Query("specialization"),
	})
	if err != nil {
		h.recordRead("faculty", "error")
		h.log.WithError(err).Error("Faculty list query failed")
		internalError(c)
		return
	}

	if query := c.Query("search"); query != "" && h.index != nil {
		matches, err := h.index.MatchSet(query, search.DomainFaculty)
		if err != nil {
			h.recordRead("faculty", "error")
			internalError(c)
			return
		}
		filtered := records[:0]
		for _, f := range records {
			if matches[f.ID] {
				filtered = append(filtered, f)
			}
		}
		records = filtered
	}

	h.recordRead("faculty", "ok")
	c.JSON(http.StatusOK, gin.H{"data": records})
}

// GetFaculty returns one faculty record by id.
func (h *Handlers) GetFaculty(c *gin.Context) {
	record, err := h.db.GetFacultyByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLookupError(c, "faculty", err)
		return
	}
	h.recordRead("faculty", "ok")
	c.JSON(http.StatusOK, gin.H{"data": record})
}

// ListCourses returns all courses, optionally filtered by semester,
// instructor, credits and a BM25 search query.
func (h *Handlers) ListCourses(c *gin.Context) {
	filter := storage.CourseFilter{
		Semester:   c.Query("semester"),
		Instructor: c.Query("instructor"),
	}
	if raw := c.Query("credits"); raw != "" {
		credits, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "credits must be a number"})
			return
		}
		filter.Credits = credits
	}

	records, err := h.db.ListCourses(c.Request.Context(), filter)
	if err != nil {
		h.recordRead("courses", "error")
		h.log.WithError(err).Error("Course list query failed")
		internalError(c)
		return
	}

	if query := c.Query("search"); query != "" && h.index != nil {
		matches, err := h.index.MatchSet(query, search.DomainCourse)
		if err != nil {
			h.recordRead("courses", "error")
			internalError(c)
			return
		}
		filtered := records[:0]
		for _, course := range records {
			if matches[course.Code] {
				filtered = append(filtered, course)
			}
		}
		records = filtered
	}

	h.recordRead("courses", "ok")
	c.JSON(http.StatusOK, gin.H{"data": records})
}

// GetCourse returns one course by id or code.
func (h *Handlers) GetCourse(c *gin.Context) {
	record, err := h.db.GetCourseByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondLookupError(c, "courses", err)
		return
	}
	h.recordRead("courses", "ok")
	c.JSON(http.StatusOK, gin.H{"data": record})
}

// ListCalendar returns every academic year's calendar.
func (h *Handlers) ListCalendar(c *gin.Context) {
	records, err := h.db.ListCalendar(c.Request.Context())
	if err != nil {
		h.recordRead("calendar", "error")
		h.log.WithError(err).Error("Calendar list query failed")
		internalError(c)
		return
	}
	h.recordRead("calendar", "ok")
	c.JSON(http.StatusOK, gin.H{"data": records})
}

// GetCalendar returns the calendar for one academic year.
func (h *Handlers) GetCalendar(c *gin.Context) {
	record, err := h.db.GetCalendar(c.Request.Context(), c.Param("year"))
	if err != nil {
		h.respondLookupError(c, "calendar", err)
		return
	}
	h.recordRead("calendar", "ok")
	c.JSON(http.StatusOK, gin.H{"data": record})
}

// ListInfrastructure returns every department's infrastructure record.
func (h *Handlers) ListInfrastructure(c *gin.Context) {
	records, err := h.db.ListInfrastructure(c.Request.Context())
	if err != nil {
		h.recordRead("infrastructure", "error")
		h.log.WithError(err).Error("Infrastructure list query failed")
		internalError(c)
		return
	}

	// The lab search narrows each record to its matching labs.
	if query := c.Query("search"); query != "" && h.index != nil {
		matches, err := h.index.MatchSet(query, search.DomainLab)
		if err != nil {
			h.recordRead("infrastructure", "error")
			internalError(c)
			return
		}
		for i := range records {
			var labs []content.Lab
			for _, lab := range records[i].Labs {
				if matches[lab.Name] {
					labs = append(labs, lab)
				}
			}
			records[i].Labs = labs
		}
	}

	h.recordRead("infrastructure", "ok")
	c.JSON(http.StatusOK, gin.H{"data": records})
}

// GetInfrastructure returns one department's infrastructure record.
func (h *Handlers) GetInfrastructure(c *gin.Context) {
	record, err := h.db.GetInfrastructure(c.Request.Context(), c.Param("department"))
	if err != nil {
		h.respondLookupError(c, "infrastructure", err)
		return
	}
	h.recordRead("infrastructure", "ok")
	c.JSON(http.StatusOK, gin.H{"data": record})
}

func (h *Handlers) respondLookupError(c *gin.Context, domain string, err error) {
	if errors.Is(err, domerrors.ErrNotFound) {
		h.recordRead(domain, "not_found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	h.recordRead(domain, "error")
	h.log.WithError(err).Error("Content lookup failed")
	internalError(c)
}
