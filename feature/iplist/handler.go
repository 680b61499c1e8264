package iplist

import (
	"errors"
	"io"
	"mime/multipart"

	"iplist-automanage/core/logger"
	"iplist-automanage/core/utils"
	"iplist-automanage/feature/iplist/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for IP list reconciliation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = models.Run{}
	return &Handler{service: service}
}

// RegisterRoutes registers the iplist routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/iplists")
	group.Post("/plan", h.HandlePlan)
	group.Get("/runs", h.HandleListRuns)
	group.Get("/runs/:id", h.HandleGetRun)
}

// HandlePlan computes a plan from uploaded exports.
// @Summary Compute Reconciliation Plan
// @Description Computes the IP list plan from a traffic export and an IP list export. Nothing is applied.
// @Tags iplists
// @Accept multipart/form-data
// @Produce json
// @Param flows formData file true "Traffic export (CSV)"
// @Param iplists formData file true "IP list export (CSV)"
// @Param evidence formData file false "Longer-window traffic export (CSV)"
// @Param report query boolean false "Include the text report"
// @Success 200 {object} iplist.PlanResult "Plan"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /iplists/plan [post]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	flows, err := openForm(c, "flows", true)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	defer closeForm(flows)

	lists, err := openForm(c, "iplists", true)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	defer closeForm(lists)

	evidence, err := openForm(c, "evidence", false)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	defer closeForm(evidence)

	in := PlanInput{Flows: flows, Lists: lists}
	if evidence != nil {
		in.Evidence = evidence
	}

	result, err := h.service.Plan(c.UserContext(), in)
	if err != nil {
		l.Error("Plan failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !utils.ToBool(c.Query("report")) {
		return c.JSON(result)
	}

	report, err := h.service.Report(&RunResult{PlanResult: result}, true)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"result": result,
		"report": string(report),
	})
}

// HandleListRuns lists recorded runs.
// @Summary List Runs
// @Description Lists recorded reconciliation runs, most recent first.
// @Tags iplists
// @Produce json
// @Param limit query int false "Maximum number of runs" default(20)
// @Success 200 {array} models.Run "Runs"
// @Failure 503 {object} map[string]string "History Disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /iplists/runs [get]
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	runs, err := h.service.Runs(c.UserContext(), utils.ToInt(c.Query("limit")))
	if err != nil {
		return h.historyError(c, l, err)
	}
	return c.JSON(runs)
}

// HandleGetRun returns one recorded run.
// @Summary Get Run
// @Description Returns a recorded reconciliation run with its ordered change events.
// @Tags iplists
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} models.Run "Run"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 503 {object} map[string]string "History Disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /iplists/runs/{id} [get]
func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	run, err := h.service.Run(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.historyError(c, l, err)
	}
	return c.JSON(run)
}

func (h *Handler) historyError(c *fiber.Ctx, l *zap.Logger, err error) error {
	switch {
	case errors.Is(err, ErrRunNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrHistoryDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Error("History query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// openForm opens an uploaded file. Optional missing files return nil.
func openForm(c *fiber.Ctx, key string, required bool) (multipart.File, error) {
	fh, err := c.FormFile(key)
	if err != nil {
		if required {
			return nil, errors.New("missing file: " + key)
		}
		return nil, nil
	}
	return fh.Open()
}

func closeForm(f io.Closer) {
	if f != nil {
		_ = f.Close()
	}
}
