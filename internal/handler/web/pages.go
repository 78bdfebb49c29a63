package web

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"RiskView/internal/adapter/htmlview"
	"RiskView/internal/domain/models"
	"RiskView/internal/services/render"
	"RiskView/internal/usecase"
	xhttp "RiskView/pkg/http"
	"RiskView/pkg/http/middleware"
	applogger "RiskView/pkg/logger"

	"github.com/labstack/echo/v4"
)

// HeatmapPage loads an index heatmap or a category table and renders it as a page.
func (h *ViewHandler) HeatmapPage(c echo.Context) error {
	req := &models.ViewRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.page(c, http.StatusBadRequest, nil, render.Error("", validationMessage(verr)))
	}
	ctrl, tree, err := h.load(c, "page_load", req)
	return h.pageResult(c, "page_load", ctrl, tree, err)
}

// SortPage re-sorts the session's category table.
func (h *ViewHandler) SortPage(c echo.Context) error {
	req := &models.SortRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.page(c, http.StatusBadRequest, nil, render.Error("", validationMessage(verr)))
	}
	ctrl, tree, err := h.run(c, "page_sort", func(_ context.Context, ctrl *usecase.Controller) (*render.RenderTree, error) {
		return ctrl.Sort(req.Column)
	})
	return h.pageResult(c, "page_sort", ctrl, tree, err)
}

// YearPage filters the session's heatmap to one year.
func (h *ViewHandler) YearPage(c echo.Context) error {
	req := &models.YearRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.page(c, http.StatusBadRequest, nil, render.Error("", validationMessage(verr)))
	}
	ctrl, tree, err := h.run(c, "page_year", func(_ context.Context, ctrl *usecase.Controller) (*render.RenderTree, error) {
		return ctrl.FilterYear(req.Year)
	})
	return h.pageResult(c, "page_year", ctrl, tree, err)
}

// pageResult renders tree, or the error in its place. A rejected sort or year filter keeps
// showing the current view.
func (h *ViewHandler) pageResult(c echo.Context, endpoint string, ctrl *usecase.Controller, tree *render.RenderTree, err error) error {
	if err == nil {
		return h.page(c, http.StatusOK, ctrl, tree)
	}
	appErr := toAppError(err)
	h.logFailure(endpoint, err, appErr)
	if tree == nil {
		tree = render.Error("", appErr.Message)
	}
	return h.page(c, appErr.Status, ctrl, tree)
}

func (h *ViewHandler) page(c echo.Context, status int, ctrl *usecase.Controller, tree *render.RenderTree) error {
	p := htmlview.Page{
		BasePath:   middleware.BasePath(c),
		Categories: h.views.Loader().Categories(),
		Tree:       tree,
	}
	if ctrl != nil {
		p.Target = ctrl.Snapshot().Target
	}

	var buf bytes.Buffer
	if err := h.pages.Render(&buf, p); err != nil {
		h.logger.Error("render page failed", applogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	xhttp.NoStore(c)
	return c.HTMLBlob(status, buf.Bytes())
}

func validationMessage(verr interface{}) string {
	if errs, ok := verr.([]xhttp.ValidationError); ok && len(errs) > 0 {
		return errs[0].Message
	}
	return fmt.Sprint(verr)
}
