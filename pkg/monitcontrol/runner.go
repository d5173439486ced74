package monitcontrol

import (
	"context"
	"fmt"

	"github.com/core-tools/hsu-monit-go/pkg/cmdrunner"
	"github.com/core-tools/hsu-monit-go/pkg/errors"
	"github.com/core-tools/hsu-monit-go/pkg/logging"
	"github.com/core-tools/hsu-monit-go/pkg/monit"
)

const (
	CommandSummary = "summary"
	CommandStatus  = "status"
)

// Request names one proxy operation. Service is required for verbs and is
// the optional filter for summary and status.
type Request struct {
	Command string
	Service string
}

type Result struct {
	Request Request
	// Available is false when the monit binary could not be found
	Available bool
	OK        bool
	Summary   *monit.SummaryReport
	Status    *monit.StatusReport
}

// Success reports whether the operation produced a positive outcome
func (r *Result) Success() bool {
	if !r.Available {
		return false
	}
	switch {
	case r.Summary != nil:
		return !r.Summary.DaemonDown
	case r.Status != nil:
		return !r.Status.NoSuchService
	default:
		return r.OK
	}
}

// Value is the renderable payload: a bool for verbs, a report otherwise
func (r *Result) Value() interface{} {
	switch {
	case r.Summary != nil:
		return r.Summary
	case r.Status != nil:
		return r.Status
	default:
		return r.OK
	}
}

func ValidateRequest(request Request) error {
	switch request.Command {
	case CommandSummary, CommandStatus:
		return nil
	}

	if _, err := monit.ParseVerb(request.Command); err != nil {
		return errors.NewValidationError("unsupported command", err).WithContext("command", request.Command)
	}
	if request.Service == "" {
		return errors.NewValidationError(fmt.Sprintf("%s requires a service name", request.Command), nil)
	}
	return nil
}

// Run executes one request against the local monit binary
func Run(ctx context.Context, config *Config, request Request, metrics *monit.Metrics, logger logging.Logger) (*Result, error) {
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}
	runner := cmdrunner.NewExecRunner(config.RunnerOptions(), logger)
	return RunWith(ctx, runner, runner, config, request, metrics, logger)
}

// RunWith is Run with injected runner and locator
func RunWith(
	ctx context.Context,
	runner monit.CmdRunner,
	locator monit.BinaryLocator,
	config *Config,
	request Request,
	metrics *monit.Metrics,
	logger logging.Logger,
) (*Result, error) {
	if err := ValidateRequest(request); err != nil {
		return nil, err
	}

	result := &Result{Request: request}

	proxy, ok := monit.Load(runner, locator, config.ProxyOptions(metrics), logger)
	if !ok {
		return result, nil
	}
	result.Available = true

	switch request.Command {
	case CommandSummary:
		report, err := proxy.Summary(ctx, request.Service)
		if err != nil {
			return nil, err
		}
		result.Summary = &report

	case CommandStatus:
		report, err := proxy.Status(ctx, request.Service)
		if err != nil {
			return nil, err
		}
		result.Status = &report

	default:
		verbOK, err := proxy.Do(ctx, monit.Verb(request.Command), request.Service)
		if err != nil {
			return nil, err
		}
		result.OK = verbOK
	}

	logger.Debugf("Command %s %s completed, success: %t", request.Command, request.Service, result.Success())
	return result, nil
}
