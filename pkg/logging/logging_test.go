package logging

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	lines []string
}

func (r *recorder) hook(level string) func(format string, args ...interface{}) {
	return func(format string, args ...interface{}) {
		r.lines = append(r.lines, level+" "+fmt.Sprintf(format, args...))
	}
}

func TestLogger_PrefixAndLevels(t *testing.T) {
	rec := &recorder{}
	logger := NewLogger("[monit] ", LogFuncs{
		Debugf: rec.hook("D"),
		Infof:  rec.hook("I"),
		Warnf:  rec.hook("W"),
		Errorf: rec.hook("E"),
	})

	logger.Debugf("running %s", "monit summary")
	logger.Infof("done")
	logger.Warnf("daemon down")
	logger.Errorf("failed: %v", "boom")
	logger.LogLevelf(WarnLevel, "via level %d", WarnLevel)
	logger.LogLevelf(42, "odd")

	assert.Equal(t, []string{
		"D [monit] running monit summary",
		"I [monit] done",
		"W [monit] daemon down",
		"E [monit] failed: boom",
		"W [monit] via level 2",
		"I [monit] [level 42] odd",
	}, rec.lines)
}

func TestLogger_NilHooksAreSkipped(t *testing.T) {
	rec := &recorder{}
	logger := NewLogger("", LogFuncs{Errorf: rec.hook("E")})

	logger.Debugf("quiet")
	logger.Infof("quiet")
	logger.Errorf("loud")

	assert.Equal(t, []string{"E loud"}, rec.lines)
}

func TestNullLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		l := NewNullLogger()
		l.Debugf("x")
		l.Infof("x")
		l.Warnf("x")
		l.Errorf("x")
		l.LogLevelf(ErrorLevel, "x")
	})
}
