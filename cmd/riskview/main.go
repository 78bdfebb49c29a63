// Command riskview renders one index heatmap or category table in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"RiskView/internal/adapter/termview"
	"RiskView/internal/di"
	"RiskView/internal/domain/models"
	"RiskView/internal/services/render"
	"RiskView/pkg/config"
	"RiskView/pkg/util"
)

type options struct {
	configPath string
	baseURL    string
	basePath   string
	policy     string
	req        models.ViewRequest
	sort       string
	year       string
}

func main() {
	var o options
	flag.StringVar(&o.req.Index, "index", "", "index to show as a monthly heatmap")
	flag.StringVar(&o.req.Category, "category", "", "category to show as a metrics table")
	flag.StringVar(&o.req.Mode, "mode", "", "return mode: trailing or rolling")
	flag.StringVar(&o.req.Timeline, "timeline", "", "window in years, e.g. 3 or 3.5")
	flag.StringVar(&o.sort, "sort", "", "comma separated columns to sort by, in click order")
	flag.StringVar(&o.year, "year", "", "show only this year of the heatmap")
	flag.StringVar(&o.configPath, "config", "", "config file path")
	flag.StringVar(&o.baseURL, "base-url", "", "backend base URL")
	flag.StringVar(&o.basePath, "base-path", "", "mount prefix of the backend API, e.g. /risk-reward")
	flag.StringVar(&o.policy, "policy", "", "heatmap color policy: dynamic or fixed")
	flag.Parse()

	if err := run(context.Background(), o); err != nil {
		fmt.Fprintln(os.Stderr, "riskview:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options) error {
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}

	cli, err := di.InitializeCLI(cfg)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}

	ctrl := cli.Views.New("")
	tree, err := ctrl.LoadRequest(ctx, o.basePath, o.req)
	if err == nil {
		tree, err = applyView(ctrl, o)
	}

	out := termview.New(cli.Out)
	if tree != nil {
		if werr := out.Write(cli.Out, tree); werr != nil {
			return werr
		}
	}
	return err
}

type viewController interface {
	Sort(column string) (*render.RenderTree, error)
	FilterYear(year string) (*render.RenderTree, error)
	Tree() *render.RenderTree
}

// applyView replays the requested sort clicks and year filter on the loaded view.
func applyView(ctrl viewController, o options) (*render.RenderTree, error) {
	tree := ctrl.Tree()
	for _, col := range util.SplitList(o.sort) {
		t, err := ctrl.Sort(col)
		if err != nil {
			return tree, fmt.Errorf("sort %s: %w", col, err)
		}
		tree = t
	}
	if o.year != "" {
		t, err := ctrl.FilterYear(o.year)
		if err != nil {
			return tree, fmt.Errorf("year %s: %w", o.year, err)
		}
		tree = t
	}
	return tree, nil
}

func loadConfig(o options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		if cfg, err = config.LoadWithEnv(o.configPath); err != nil {
			return nil, err
		}
	} else {
		cfg = config.Default()
		if v := os.Getenv("RISKVIEW_BACKEND_URL"); v != "" {
			cfg.Backend.BaseURL = v
		}
	}
	if o.baseURL != "" {
		cfg.Backend.BaseURL = o.baseURL
	}
	if o.policy != "" {
		cfg.View.ColorPolicy = o.policy
	}
	if cfg.Backend.BaseURL == "" {
		return nil, errors.New("backend URL required: use -base-url or RISKVIEW_BACKEND_URL")
	}
	return cfg, nil
}
