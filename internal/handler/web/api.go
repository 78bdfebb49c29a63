package web

import (
	"context"

	"RiskView/internal/domain/models"
	"RiskView/internal/services/render"
	"RiskView/internal/usecase"
	xhttp "RiskView/pkg/http"

	"github.com/labstack/echo/v4"
)

// LoadView loads a view and returns its render tree.
func (h *ViewHandler) LoadView(c echo.Context) error {
	req := &models.ViewRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	_, tree, err := h.load(c, "api_load", req)
	return h.apiResult(c, "api_load", tree, err)
}

// SortView re-sorts the session's category table.
func (h *ViewHandler) SortView(c echo.Context) error {
	req := &models.SortRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	_, tree, err := h.run(c, "api_sort", func(_ context.Context, ctrl *usecase.Controller) (*render.RenderTree, error) {
		return ctrl.Sort(req.Column)
	})
	return h.apiResult(c, "api_sort", tree, err)
}

// YearView filters the session's heatmap to one year.
func (h *ViewHandler) YearView(c echo.Context) error {
	req := &models.YearRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	_, tree, err := h.run(c, "api_year", func(_ context.Context, ctrl *usecase.Controller) (*render.RenderTree, error) {
		return ctrl.FilterYear(req.Year)
	})
	return h.apiResult(c, "api_year", tree, err)
}

func (h *ViewHandler) apiResult(c echo.Context, endpoint string, tree *render.RenderTree, err error) error {
	xhttp.NoStore(c)
	if err != nil {
		appErr := toAppError(err)
		h.logFailure(endpoint, err, appErr)
		return xhttp.AppErrorResponse(c, appErr)
	}
	return xhttp.SuccessResponse(c, tree)
}
