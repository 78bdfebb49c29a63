package main

import (
	"errors"
	"testing"

	"RiskView/internal/services/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingController struct {
	sorts []string
	years []string
	fail  error
}

func (r *recordingController) Sort(column string) (*render.RenderTree, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	r.sorts = append(r.sorts, column)
	return &render.RenderTree{Title: "sorted " + column}, nil
}

func (r *recordingController) FilterYear(year string) (*render.RenderTree, error) {
	r.years = append(r.years, year)
	return &render.RenderTree{Title: "year " + year}, nil
}

func (r *recordingController) Tree() *render.RenderTree {
	return &render.RenderTree{Title: "loaded"}
}

func TestApplyViewReplaysSortClicks(t *testing.T) {
	ctrl := &recordingController{}
	tree, err := applyView(ctrl, options{sort: "ret, ret ,risk"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ret", "ret", "risk"}, ctrl.sorts)
	assert.Equal(t, "sorted risk", tree.Title)
	assert.Empty(t, ctrl.years)
}

func TestApplyViewYearAndErrors(t *testing.T) {
	ctrl := &recordingController{}
	tree, err := applyView(ctrl, options{year: "2022"})
	require.NoError(t, err)
	assert.Equal(t, "year 2022", tree.Title)

	ctrl = &recordingController{fail: errors.New("wrong view")}
	tree, err = applyView(ctrl, options{sort: "ret"})
	assert.Error(t, err)
	assert.Equal(t, "loaded", tree.Title)
}

func TestLoadConfigRequiresBackend(t *testing.T) {
	t.Setenv("RISKVIEW_BACKEND_URL", "")
	_, err := loadConfig(options{})
	assert.Error(t, err)

	cfg, err := loadConfig(options{baseURL: "http://localhost:5000", policy: "fixed"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.Backend.BaseURL)
	assert.Equal(t, "fixed", cfg.View.ColorPolicy)
}
