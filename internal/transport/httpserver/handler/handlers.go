package handler

import (
	"hr-interviews-go/internal/transport/httpserver/handler/common"
	"hr-interviews-go/internal/transport/httpserver/handler/employees"
	"hr-interviews-go/internal/transport/httpserver/handler/interviews"
	"hr-interviews-go/pkg/logger"
)

type Handlers struct {
	Common     *common.Handlers
	Employees  *employees.Handlers
	Interviews *interviews.Handlers
}

func New(db common.Pinger, employeeService employees.Service, interviewService interviews.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Common:     common.New(db, log),
		Employees:  employees.New(employeeService, log),
		Interviews: interviews.New(interviewService, log),
	}
}
