package di

import (
	"io"

	"RiskView/internal/usecase"
	applogger "RiskView/pkg/logger"
)

// CLI is the object graph of the riskview command.
type CLI struct {
	Views  *usecase.Views
	Logger *applogger.Logger
	Out    io.Writer
}
