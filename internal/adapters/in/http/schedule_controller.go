package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yusched/schedule-generator/internal/config"
	"github.com/yusched/schedule-generator/internal/core/domain"
	"github.com/yusched/schedule-generator/internal/core/ports/in"
	"github.com/yusched/schedule-generator/internal/core/ports/out"
)

// Справочные константы для отрисовки сетки на фронтенде
var (
	displayTimeSlots = []string{
		"08:40-09:30", "09:40-10:30", "10:40-11:30", "11:40-12:30",
		"12:40-13:30", "13:40-14:30", "14:40-15:30", "15:40-16:30",
		"16:40-17:30", "17:40-18:30", "18:40-19:30", "19:40-20:30",
		"20:40-21:30", "21:40-22:30",
	}
	displayDaysOfWeek = []string{
		"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
	}
)

type ScheduleController struct {
	useCase in.ScheduleGeneratorUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewScheduleController(useCase in.ScheduleGeneratorUseCase, cfg *config.Config, logger out.LoggerPort) *ScheduleController {
	return &ScheduleController{
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}
}

func (c *ScheduleController) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", c.health)

	api := router.Group("/api")
	api.Use(c.requestID())
	{
		api.GET("/terms", c.listTerms)
		api.GET("/courses", c.listCourses)
		api.GET("/sections", c.listSections)
		api.POST("/generate_schedule", c.generateSchedule)
	}
}

type GenerateScheduleRequest struct {
	Term         string                   `json:"term"`
	Courses      []domain.CourseSelection `json:"courses" binding:"required,min=1"`
	BlockedHours []domain.BlockedSlot     `json:"blocked_hours"`
}

func (c *ScheduleController) requestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := uuid.NewString()
		ctx.Set("requestId", requestID)
		ctx.Header("X-Request-Id", requestID)
		ctx.Next()
	}
}

func (c *ScheduleController) requestLogger(ctx *gin.Context) out.LoggerPort {
	return c.logger.WithFields(out.LogFields{
		"requestId": ctx.GetString("requestId"),
	})
}

func (c *ScheduleController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (c *ScheduleController) listTerms(ctx *gin.Context) {
	terms, err := c.useCase.ListTerms(ctx.Request.Context())
	if err != nil {
		c.requestLogger(ctx).Error("http.terms.failed", out.LogFields{
			"error": err.Error(),
		})
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, terms)
}

func (c *ScheduleController) listCourses(ctx *gin.Context) {
	term := ctx.Query("term")

	courses, err := c.useCase.ListCourses(ctx.Request.Context(), term)
	if err != nil {
		c.respondCatalogError(ctx, "http.courses.failed", term, err)
		return
	}

	ctx.JSON(http.StatusOK, courses)
}

func (c *ScheduleController) listSections(ctx *gin.Context) {
	term := ctx.Query("term")

	sections, err := c.useCase.ListSections(ctx.Request.Context(), term)
	if err != nil {
		c.respondCatalogError(ctx, "http.sections.failed", term, err)
		return
	}

	ctx.JSON(http.StatusOK, sections)
}

func (c *ScheduleController) generateSchedule(ctx *gin.Context) {
	var req GenerateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := c.useCase.GenerateSchedules(ctx.Request.Context(), req.Term, req.Courses, req.BlockedHours)
	if err != nil {
		c.respondCatalogError(ctx, "http.generate.failed", req.Term, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"term":         result.Term,
		"schedules":    result.Schedules,
		"warnings":     result.Warnings,
		"time_slots":   displayTimeSlots,
		"days_of_week": displayDaysOfWeek,
	})
}

func (c *ScheduleController) respondCatalogError(ctx *gin.Context, event, term string, err error) {
	c.requestLogger(ctx).Error(event, out.LogFields{
		"term":  term,
		"error": err.Error(),
	})

	if errors.Is(err, out.ErrCatalogNotFound) {
		message := "No course data available"
		if term != "" {
			message = "Course data for term '" + term + "' not found"
		}
		ctx.JSON(http.StatusNotFound, gin.H{"error": message})
		return
	}

	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
