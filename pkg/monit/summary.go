package monit

import (
	"encoding/json"
	"strings"
)

const (
	// DaemonNotRunning is the text monit prints when its daemon is down
	DaemonNotRunning = "daemon is not running"

	summaryBanner = "The Monit daemon"
)

// SummaryReport maps resource kind ("Process", "File", ...) to service name to status.
// When DaemonDown is set the summary could not be produced and Resources is empty.
type SummaryReport struct {
	DaemonDown bool
	Resources  map[string]map[string]string
}

// ParseSummary parses "monit summary" output of the form
//
//	Process 'nginx'                     Running
//
// Lines that do not split into exactly three parts on the single quote are dropped.
func ParseSummary(output, filter string) SummaryReport {
	resources := make(map[string]map[string]string)

	for _, line := range splitLines(output) {
		if strings.Contains(line, DaemonNotRunning) {
			return SummaryReport{DaemonDown: true, Resources: make(map[string]map[string]string)}
		}
		if line == "" || !strings.Contains(line, filter) || strings.Contains(line, summaryBanner) {
			continue
		}

		parts := strings.Split(line, "'")
		if len(parts) != 3 {
			continue
		}

		kind, name, status := strings.TrimSpace(parts[0]), parts[1], strings.TrimSpace(parts[2])
		if _, ok := resources[kind]; !ok {
			resources[kind] = make(map[string]string)
		}
		resources[kind][name] = status
	}

	return SummaryReport{Resources: resources}
}

// Service looks a service up across all resource kinds
func (r SummaryReport) Service(name string) (kind, status string, found bool) {
	for kind, services := range r.Resources {
		if status, ok := services[name]; ok {
			return kind, status, true
		}
	}
	return "", "", false
}

func (r SummaryReport) value() interface{} {
	if r.DaemonDown {
		return map[string]interface{}{
			"monit":  DaemonNotRunning,
			"result": false,
		}
	}
	if r.Resources == nil {
		return map[string]map[string]string{}
	}
	return r.Resources
}

func (r SummaryReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.value())
}

func (r SummaryReport) MarshalYAML() (interface{}, error) {
	return r.value(), nil
}
