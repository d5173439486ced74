package monit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseSummary(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		filter   string
		expected map[string]map[string]string
	}{
		{
			name:     "single_process",
			output:   "Process 'nginx' running",
			expected: map[string]map[string]string{"Process": {"nginx": "running"}},
		},
		{
			name:     "banner_and_blank_lines_skipped",
			output:   "The Monit daemon 5.26.0 uptime: 3m\n\nProcess 'nginx'   Running\n\n",
			expected: map[string]map[string]string{"Process": {"nginx": "Running"}},
		},
		{
			name:     "missing_quotes_dropped",
			output:   "Process nginx running\nProcess 'cron' Running",
			expected: map[string]map[string]string{"Process": {"cron": "Running"}},
		},
		{
			name:     "extra_quotes_dropped",
			output:   "Process 'it's' running",
			expected: map[string]map[string]string{},
		},
		{
			name:     "whitespace_only_line_dropped",
			output:   "   \nFile 'motd' Accessible",
			expected: map[string]map[string]string{"File": {"motd": "Accessible"}},
		},
		{
			name:     "name_kept_verbatim",
			output:   "Process ' nginx ' running",
			expected: map[string]map[string]string{"Process": {" nginx ": "running"}},
		},
		{
			name:     "crlf_line_endings",
			output:   "Process 'nginx' Running\r\nFile 'conf' Accessible\r\n",
			expected: map[string]map[string]string{"Process": {"nginx": "Running"}, "File": {"conf": "Accessible"}},
		},
		{
			name:     "filter",
			output:   "Process 'nginx' Running\nProcess 'cron' Running",
			filter:   "cron",
			expected: map[string]map[string]string{"Process": {"cron": "Running"}},
		},
		{
			name:     "filter_matches_nothing",
			output:   "Process 'nginx' Running",
			filter:   "postgres",
			expected: map[string]map[string]string{},
		},
		{
			name:     "table_format_is_not_understood",
			output:   "┌─────────────┬──────────┬─────────┐\n│ nginx       │ OK       │ Process │\n",
			expected: map[string]map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := ParseSummary(tt.output, tt.filter)
			assert.False(t, report.DaemonDown)
			assert.Equal(t, tt.expected, report.Resources)
		})
	}
}

func TestParseSummary_DaemonDown(t *testing.T) {
	output := "Process 'nginx' Running\nthe Monit daemon is not running\nProcess 'cron' Running\n"

	for _, filter := range []string{"", "nginx", "postgres"} {
		report := ParseSummary(output, filter)
		assert.True(t, report.DaemonDown, "filter %q", filter)
		assert.Empty(t, report.Resources)
	}
}

func TestParseSummary_Idempotent(t *testing.T) {
	output := "Process 'nginx' Running\nFile 'conf' Accessible\n"

	first, err := json.Marshal(ParseSummary(output, ""))
	require.NoError(t, err)
	second, err := json.Marshal(ParseSummary(output, ""))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSummaryReport_Service(t *testing.T) {
	report := ParseSummary("Process 'nginx' Running\nFile 'conf' Accessible", "")

	kind, status, found := report.Service("conf")
	assert.True(t, found)
	assert.Equal(t, "File", kind)
	assert.Equal(t, "Accessible", status)

	_, _, found = report.Service("cron")
	assert.False(t, found)
}

func TestSummaryReport_Encoding(t *testing.T) {
	t.Run("daemon_down_json", func(t *testing.T) {
		data, err := json.Marshal(SummaryReport{DaemonDown: true})
		require.NoError(t, err)
		assert.JSONEq(t, `{"monit":"daemon is not running","result":false}`, string(data))
	})

	t.Run("resources_json", func(t *testing.T) {
		data, err := json.Marshal(ParseSummary("Process 'nginx' running", ""))
		require.NoError(t, err)
		assert.JSONEq(t, `{"Process":{"nginx":"running"}}`, string(data))
	})

	t.Run("zero_value_json", func(t *testing.T) {
		data, err := json.Marshal(SummaryReport{})
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(data))
	})

	t.Run("daemon_down_yaml", func(t *testing.T) {
		data, err := yaml.Marshal(SummaryReport{DaemonDown: true})
		require.NoError(t, err)

		var decoded map[string]interface{}
		require.NoError(t, yaml.Unmarshal(data, &decoded))
		assert.Equal(t, map[string]interface{}{"monit": "daemon is not running", "result": false}, decoded)
	})
}
