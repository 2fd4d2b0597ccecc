package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appAuth "github.com/yigit/courseplanner/internal/app/auth"
	"github.com/yigit/courseplanner/internal/app/models"
	"github.com/yigit/courseplanner/internal/app/models/dto"
	"github.com/yigit/courseplanner/internal/app/services"
	"github.com/yigit/courseplanner/internal/middleware"
	"github.com/yigit/courseplanner/internal/pkg/helpers"
)

// PlanController exposes the course planner over HTTP
type PlanController struct {
	planService *services.PlanService
	authz       *appAuth.AuthorizationService
}

// NewPlanController creates a new PlanController
func NewPlanController(planService *services.PlanService, authz *appAuth.AuthorizationService) *PlanController {
	return &PlanController{
		planService: planService,
		authz:       authz,
	}
}

// planKey builds the plan key from the path and the authenticated caller.
// Advisors may act on another student's plan through ?studentId=.
func (c *PlanController) planKey(ctx *gin.Context) (models.PlanKey, bool) {
	curriculumID, err := helpers.ParseIDParam(ctx, "curriculumId")
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest,
			dto.Fail(dto.ErrorCodeValidationFailed, "Invalid curriculum ID", "Curriculum ID must be a positive number"))
		return models.PlanKey{}, false
	}
	departmentID, err := helpers.ParseIDParam(ctx, "departmentId")
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest,
			dto.Fail(dto.ErrorCodeValidationFailed, "Invalid department ID", "Department ID must be a positive number"))
		return models.PlanKey{}, false
	}

	studentID, err := c.authz.ResolvePlanOwner(
		ctx.GetString(middleware.ContextStudentID),
		ctx.GetString(middleware.ContextRole),
		ctx.Query("studentId"),
	)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return models.PlanKey{}, false
	}

	return models.PlanKey{
		StudentID:    studentID,
		CurriculumID: curriculumID,
		DepartmentID: departmentID,
	}, true
}

// GetPlan returns the student's plan
// @Summary Get plan
// @Description Returns the plan for a curriculum and department with its credit summary
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param curriculumId path int true "Curriculum ID"
// @Param departmentId path int true "Department ID"
// @Success 200 {object} dto.APIResponse{data=dto.PlanResponse} "Plan retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Catalog not found"
// @Router /plans/{curriculumId}/{departmentId} [get]
func (c *PlanController) GetPlan(ctx *gin.Context) {
	key, ok := c.planKey(ctx)
	if !ok {
		return
	}

	resp, err := c.planService.GetPlan(ctx.Request.Context(), key)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// ListAddable lists courses that can still be put on the plan
// @Summary List addable courses
// @Description Lists catalog courses not planned, completed or in progress, each with its add decision for the term
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param curriculumId path int true "Curriculum ID"
// @Param departmentId path int true "Department ID"
// @Param term query string false "Term the courses would be added to"
// @Success 200 {object} dto.APIResponse{data=[]planner.AddableCourse} "Addable courses"
// @Router /plans/{curriculumId}/{departmentId}/addable [get]
func (c *PlanController) ListAddable(ctx *gin.Context) {
	key, ok := c.planKey(ctx)
	if !ok {
		return
	}

	list, err := c.planService.ListAddable(ctx.Request.Context(), key, models.Term(ctx.Query("term")))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(list, ""))
}

// CheckCourse reports whether a course can be added
// @Summary Check a course
// @Description Runs the add checks without changing the plan
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CheckCourseRequest true "Course and term"
// @Success 200 {object} dto.APIResponse{data=planner.CheckResult} "Add decision"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /plans/{curriculumId}/{departmentId}/check [post]
func (c *PlanController) CheckCourse(ctx *gin.Context) {
	key, ok := c.planKey(ctx)
	if !ok {
		return
	}

	var req dto.CheckCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	res, err := c.planService.CheckCourse(ctx.Request.Context(), key, req.Code, models.Term(req.Term))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(res, ""))
}

// AddCourse adds a course and its corequisites to the plan
// @Summary Add a course
// @Description Validates the course and adds it together with its corequisites
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddCourseRequest true "Course, term and status"
// @Success 201 {object} dto.APIResponse{data=dto.AddCourseResponse} "Course added"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course already planned"
// @Failure 422 {object} dto.ErrorResponse "Course cannot be added"
// @Router /plans/{curriculumId}/{departmentId}/courses [post]
func (c *PlanController) AddCourse(ctx *gin.Context) {
	key, ok := c.planKey(ctx)
	if !ok {
		return
	}

	var req dto.AddCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.planService.AddCourse(ctx.Request.Context(), key, req.Code, models.Term(req.Term), models.PlanStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp, "Course added to plan"))
}

// GetDependents previews what removing an entry would take with it
// @Summary Preview removal
// @Description Lists the plan entries that depend on the given entry
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param entryId path string true "Plan entry ID"
// @Success 200 {object} dto.APIResponse{data=planner.RemovalPreview} "Removal preview"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Router /plans/{curriculumId}/{departmentId}/courses/{entryId}/dependents [get]
func (c *PlanController) GetDependents(ctx *gin.Context) {
	key, ok := c.planKey(ctx)
	if !ok {
		return
	}

	preview, err := c.planService.PreviewRemoval(ctx.Request.Context(), key, ctx.Param("entryId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(preview, ""))
}

// RemoveCourse removes an entry from the plan
// @Summary Remove a course
// @Description Removes the entry. If other entries depend on it, confirm=true is required and they are removed too
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param entryId path string true "Plan entry ID"
// @Param confirm query bool false "Confirm removal of dependent entries"
// @Success 200 {object} dto.APIResponse{data=dto.RemovalResponse} "Course removed"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 409 {object} dto.ErrorResponse "Removal must be confirmed"
// @Router /plans/{curriculumId}/{departmentId}/courses/{entryId} [delete]
func (c *PlanController) RemoveCourse(ctx *gin.Context) {
	key, ok := c.planKey(ctx)
	if !ok {
		return
	}

	resp, err := c.planService.RemoveCourse(ctx.Request.Context(), key, ctx.Param("entryId"), helpers.QueryBool(ctx, "confirm"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, "Course removed from plan"))
}

// UpdateStatus changes an entry's status
// @Summary Update entry status
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entryId path string true "Plan entry ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Plan} "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Router /plans/{curriculumId}/{departmentId}/courses/{entryId}/status [patch]
func (c *PlanController) UpdateStatus(ctx *gin.Context) {
	key, ok := c.planKey(ctx)
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	plan, err := c.planService.UpdateStatus(ctx.Request.Context(), key, ctx.Param("entryId"), models.PlanStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(plan, ""))
}

// AnalyzeConcentrations reports concentration progress
// @Summary Concentration progress
// @Description Progress toward the selected concentration, or all of them when none or "general" is selected
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param concentration query string false "Concentration id or name"
// @Success 200 {object} dto.APIResponse{data=dto.ConcentrationReport} "Concentration progress"
// @Router /plans/{curriculumId}/{departmentId}/concentrations [get]
func (c *PlanController) AnalyzeConcentrations(ctx *gin.Context) {
	key, ok := c.planKey(ctx)
	if !ok {
		return
	}

	report, err := c.planService.AnalyzeConcentrations(ctx.Request.Context(), key, ctx.Query("concentration"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(report, ""))
}
