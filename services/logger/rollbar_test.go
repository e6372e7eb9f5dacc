package logsvc

import (
	"bytes"
	"log"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/ekta-foundation/casebook/core"
)

func TestRollbarLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewRollbarLogger(log.New(&buf, "", 0), &core.Config{Env: "TEST", Debug: true})

	logger.Error(
		"report pipeline failed",
		errors.New("bucket unavailable"),
		map[string]interface{}{"stage": "publish"},
		core.Person{ID: "emp-1", Name: "Ravi", Email: "ravi@example.org"},
	)
	out := buf.String()
	assert.Contains(t, out, "ERROR: report pipeline failed")
	assert.Contains(t, out, "error=bucket unavailable")
	assert.Contains(t, out, "map[stage:publish]")
	assert.NotContains(t, out, "ravi@example.org")

	buf.Reset()
	logger.Info("server started")
	assert.Equal(t, "INFO: server started\n", buf.String())
}

func Test_rollbarArgs(t *testing.T) {
	first := core.Person{ID: "1"}
	err := errors.New("boom")
	items, person := rollbarArgs("msg", []interface{}{err, first, core.Person{ID: "2"}})
	assert.Equal(t, []interface{}{"msg", err}, items)
	if assert.NotNil(t, person) {
		assert.Equal(t, "1", person.ID)
	}

	_, person = rollbarArgs("msg", nil)
	assert.Nil(t, person)
}
