package api

import (
	"time"

	models "TrendML/internal/domain/models"
	domrepo "TrendML/internal/domain/repository"
	"TrendML/internal/indicators"
	"TrendML/internal/usecase"
	xhttp "TrendML/pkg/http"
	xlogger "TrendML/pkg/logger"
	xutil "TrendML/pkg/util"

	"github.com/labstack/echo/v4"
)

// DatasetsEchoHandler exposes the dataset preparation API over Echo.
type DatasetsEchoHandler struct {
	logger *xlogger.Logger
	uc     *usecase.DatasetUseCase
	store  domrepo.CandleStore
	indCfg indicators.Config
}

func NewDatasetsEchoHandler(logger *xlogger.Logger, uc *usecase.DatasetUseCase, store domrepo.CandleStore, indCfg indicators.Config) *DatasetsEchoHandler {
	return &DatasetsEchoHandler{logger: logger, uc: uc, store: store, indCfg: indCfg}
}

func (h *DatasetsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/datasets", h.PrepareDataset)
	g.GET("/datasets/:id", h.GetRun)
	g.GET("/indicators", h.Indicators)
	e.GET("/healthz", h.Health)
}

// PrepareDataset runs the full pipeline for a symbol and returns the run
// summary with dataset metadata. Feature matrices stay server side; the
// training collaborator picks them up via the published event.
func (h *DatasetsEchoHandler) PrepareDataset(c echo.Context) error {
	req := &models.PrepareDatasetRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	tf := domrepo.NormalizeTimeframe(req.TF)

	applyBalancing := true
	if req.ApplyBalancing != nil {
		applyBalancing = *req.ApplyBalancing
	}

	res, err := h.uc.PrepareDataset(c.Request().Context(), usecase.PrepareDatasetParams{
		Symbol:         req.Symbol,
		From:           xutil.ParseTimeDefault(req.From, time.Time{}),
		To:             xutil.ParseTimeDefault(req.To, time.Time{}),
		Timeframe:      tf,
		ApplyBalancing: applyBalancing,
	})
	if err != nil {
		h.logger.Error("prepare dataset usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	return xhttp.CreatedResponse(c, map[string]interface{}{
		"run":      res.Run,
		"metadata": res.Metadata,
	})
}

// GetRun returns the stored summary of a past preparation run.
func (h *DatasetsEchoHandler) GetRun(c echo.Context) error {
	req := &models.GetRunRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	run, err := h.uc.GetRun(c.Request().Context(), req.RunID)
	if err != nil {
		h.logger.Error("get run usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if run == nil {
		return xhttp.NotFoundResponse(c, "run not found")
	}
	return xhttp.SuccessResponse(c, run)
}

// Health reports storage reachability.
func (h *DatasetsEchoHandler) Health(c echo.Context) error {
	if err := h.store.Health(c.Request().Context()); err != nil {
		h.logger.Error("health check failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// Indicators lists the canonical feature columns and configured periods.
func (h *DatasetsEchoHandler) Indicators(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"columns": indicators.IndicatorColumns(),
		"config":  h.indCfg,
	})
}
