// Package monit drives the monit supervisor through its command-line interface.
//
// Every operation formats one fixed-shape command line, hands it to a CmdRunner
// and turns the outcome into a boolean or a parsed report. The proxy keeps no
// state between calls.
package monit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/core-tools/hsu-monit-go/pkg/cmdrunner"
	"github.com/core-tools/hsu-monit-go/pkg/errors"
	"github.com/core-tools/hsu-monit-go/pkg/logging"
)

const DefaultBinary = "monit"

// CmdRunner executes command lines. A non-zero exit status must not be
// reported as an error; errors mean the command could not be run at all.
type CmdRunner interface {
	Run(ctx context.Context, cmd string) (stdout string, err error)
	RetCode(ctx context.Context, cmd string) (exitStatus int, err error)
}

// BinaryLocator reports whether a binary can be found
type BinaryLocator interface {
	Which(name string) (path string, found bool)
}

// Verb is an imperative action sent to monit for a named service
type Verb string

const (
	VerbStart     Verb = "start"
	VerbStop      Verb = "stop"
	VerbRestart   Verb = "restart"
	VerbMonitor   Verb = "monitor"
	VerbUnmonitor Verb = "unmonitor"
)

var serviceVerbs = []Verb{VerbStart, VerbStop, VerbRestart, VerbMonitor, VerbUnmonitor}

// ServiceVerbs lists the verbs accepted by Do
func ServiceVerbs() []Verb {
	verbs := make([]Verb, len(serviceVerbs))
	copy(verbs, serviceVerbs)
	return verbs
}

func ParseVerb(s string) (Verb, error) {
	for _, verb := range serviceVerbs {
		if string(verb) == s {
			return verb, nil
		}
	}
	names := make([]string, 0, len(serviceVerbs))
	for _, verb := range serviceVerbs {
		names = append(names, string(verb))
	}
	return "", errors.NewValidationError(fmt.Sprintf("unknown verb: %s", s), nil).
		WithContext("supported_verbs", strings.Join(names, ", "))
}

type Options struct {
	// Binary is the monit executable name or path, "monit" when empty
	Binary string
	// Metrics is optional
	Metrics *Metrics
}

type Proxy struct {
	runner  CmdRunner
	binary  string
	metrics *Metrics
	logger  logging.Logger
}

func NewProxy(runner CmdRunner, options Options, logger logging.Logger) *Proxy {
	binary := options.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	return &Proxy{
		runner:  runner,
		binary:  binary,
		metrics: options.Metrics,
		logger:  logger,
	}
}

// Load returns a proxy only when the monit binary can be located.
// An absent binary is not an error: the capability is simply not offered.
func Load(runner CmdRunner, locator BinaryLocator, options Options, logger logging.Logger) (*Proxy, bool) {
	binary := options.Binary
	if binary == "" {
		binary = DefaultBinary
	}

	path, found := locator.Which(binary)
	if !found {
		logger.Infof("Binary %s not found, monit proxy is not available", binary)
		return nil, false
	}
	logger.Debugf("Using monit binary %s (%s)", binary, path)

	return NewProxy(runner, options, logger), true
}

func (p *Proxy) Binary() string {
	return p.binary
}

func (p *Proxy) Start(ctx context.Context, name string) (bool, error) {
	return p.runVerb(ctx, VerbStart, name)
}

func (p *Proxy) Stop(ctx context.Context, name string) (bool, error) {
	return p.runVerb(ctx, VerbStop, name)
}

func (p *Proxy) Restart(ctx context.Context, name string) (bool, error) {
	return p.runVerb(ctx, VerbRestart, name)
}

func (p *Proxy) Monitor(ctx context.Context, name string) (bool, error) {
	return p.runVerb(ctx, VerbMonitor, name)
}

func (p *Proxy) Unmonitor(ctx context.Context, name string) (bool, error) {
	return p.runVerb(ctx, VerbUnmonitor, name)
}

// Do runs any service verb, for callers that dispatch by name
func (p *Proxy) Do(ctx context.Context, verb Verb, name string) (bool, error) {
	if _, err := ParseVerb(string(verb)); err != nil {
		return false, err
	}
	return p.runVerb(ctx, verb, name)
}

// Summary runs "monit summary" and groups services by resource kind.
// Only lines containing filter are considered; an empty filter keeps all.
func (p *Proxy) Summary(ctx context.Context, filter string) (SummaryReport, error) {
	stdout, err := p.capture(ctx, "summary")
	if err != nil {
		return SummaryReport{}, err
	}

	report := ParseSummary(stdout, filter)
	if report.DaemonDown {
		p.logger.Warnf("Monit daemon is not running")
		p.metrics.countOutcome("summary", outcomeFailure)
		return report, nil
	}

	p.metrics.countOutcome("summary", outcomeSuccess)
	return report, nil
}

// Status runs "monit status" and returns per-service attributes.
// With a non-empty filter only that service is kept.
func (p *Proxy) Status(ctx context.Context, filter string) (StatusReport, error) {
	stdout, err := p.capture(ctx, "status")
	if err != nil {
		return StatusReport{}, err
	}

	report := FilterStatus(ParseStatus(stdout), filter)
	if report.NoSuchService {
		p.logger.Warnf("Service %s not found in monit status", filter)
		p.metrics.countOutcome("status", outcomeFailure)
		return report, nil
	}

	p.metrics.countOutcome("status", outcomeSuccess)
	return report, nil
}

func (p *Proxy) command(words ...string) string {
	return cmdrunner.FormatCommand(append([]string{p.binary}, words...)...)
}

func (p *Proxy) runVerb(ctx context.Context, verb Verb, name string) (bool, error) {
	cmd := p.command(string(verb), name)
	p.logger.Debugf("Running %s", cmd)

	startTime := time.Now()
	exitStatus, err := p.runner.RetCode(ctx, cmd)
	p.metrics.observeDuration(string(verb), time.Since(startTime))
	if err != nil {
		p.logger.Errorf("Failed to run %s: %v", cmd, err)
		p.metrics.countOutcome(string(verb), outcomeError)
		return false, err
	}

	if exitStatus != 0 {
		p.logger.Debugf("%s exited with status %d", cmd, exitStatus)
		p.metrics.countOutcome(string(verb), outcomeFailure)
		return false, nil
	}

	p.metrics.countOutcome(string(verb), outcomeSuccess)
	return true, nil
}

func (p *Proxy) capture(ctx context.Context, report string) (string, error) {
	cmd := p.command(report)
	p.logger.Debugf("Running %s", cmd)

	startTime := time.Now()
	stdout, err := p.runner.Run(ctx, cmd)
	p.metrics.observeDuration(report, time.Since(startTime))
	if err != nil {
		p.logger.Errorf("Failed to run %s: %v", cmd, err)
		p.metrics.countOutcome(report, outcomeError)
		return "", err
	}
	return stdout, nil
}
