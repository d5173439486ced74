package monit

import (
	"encoding/json"
	"strings"
)

// NoSuchService is reported when a filtered status names an unknown service
const NoSuchService = "No such service"

// Column layout of "monit status". "Process" headers are padded so the
// service name lands in the value column. The key window ends at rune 36
// while the value window starts at rune 35; the shared column is kept as is
// so field boundaries stay compatible with existing consumers.
const (
	processLabel   = "Process"
	processPadding = 28
	keyWindowEnd   = 36
	valueWindowPos = 35
)

// ServiceStatus maps attribute labels ("status", "pid", ...) to values
type ServiceStatus map[string]string

// StatusReport holds parsed "monit status" output. With a Filter, Services
// holds at most that one entry and NoSuchService tells whether it was missing.
type StatusReport struct {
	Filter        string
	Services      map[string]ServiceStatus
	NoSuchService bool
}

// ParseStatus parses "monit status" output into per-service attributes.
// The first and last blank-line separated blocks are treated as header and trailer.
func ParseStatus(output string) map[string]ServiceStatus {
	entries := make(map[string]ServiceStatus)

	padded := strings.ReplaceAll(output, processLabel, processLabel+strings.Repeat(" ", processPadding))
	padded = strings.ReplaceAll(padded, "'", "")

	blocks := strings.Split(padded, "\n\n")
	if len(blocks) < 3 {
		return entries
	}

	for _, block := range blocks[1 : len(blocks)-1] {
		lines := splitLines(block)
		if len(lines) == 0 {
			continue
		}
		heading := strings.Fields(lines[0])
		if len(heading) < 2 {
			continue
		}

		attributes := make(ServiceStatus, len(lines))
		for _, line := range lines {
			key := strings.TrimSpace(runeWindow(line, 0, keyWindowEnd))
			attributes[key] = strings.TrimSpace(runeWindow(line, valueWindowPos, -1))
		}
		entries[heading[1]] = attributes
	}

	return entries
}

// FilterStatus narrows parsed entries to filter; an empty filter keeps everything
func FilterStatus(entries map[string]ServiceStatus, filter string) StatusReport {
	if filter == "" {
		return StatusReport{Services: entries}
	}

	entry, ok := entries[filter]
	if !ok {
		return StatusReport{
			Filter:        filter,
			Services:      map[string]ServiceStatus{},
			NoSuchService: true,
		}
	}
	return StatusReport{
		Filter:   filter,
		Services: map[string]ServiceStatus{filter: entry},
	}
}

func (r StatusReport) Service(name string) (ServiceStatus, bool) {
	entry, ok := r.Services[name]
	return entry, ok
}

func (r StatusReport) value() interface{} {
	if r.NoSuchService {
		return NoSuchService
	}
	if r.Filter != "" {
		return r.Services[r.Filter]
	}
	if r.Services == nil {
		return map[string]ServiceStatus{}
	}
	return r.Services
}

func (r StatusReport) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.value())
}

func (r StatusReport) MarshalYAML() (interface{}, error) {
	return r.value(), nil
}
