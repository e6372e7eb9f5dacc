package logsvc

import (
	"fmt"
	"log"
	"strings"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/ekta-foundation/casebook/core"
)

// RollbarLogger reports to Rollbar and echoes every entry to a std logger.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetServerRoot(conf.WorkDir)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetEnabled(!conf.Debug && conf.RollbarToken != "")
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// Wait blocks until queued Rollbar items are sent.
func (l RollbarLogger) Wait() {
	rollbar.Wait()
}

// rollbarArgs extracts the core.Person (first one wins) and returns the remaining args prefixed by msg.
// expected args: error, map[string]interface{}, core.Person
func rollbarArgs(msg string, args []interface{}) ([]interface{}, *core.Person) {
	var person *core.Person
	out := make([]interface{}, 0, len(args)+1)
	out = append(out, msg)
	for _, arg := range args {
		if p, ok := arg.(core.Person); ok {
			if person == nil {
				person = &p
			}
			continue
		}
		out = append(out, arg)
	}
	return out, person
}

func (l RollbarLogger) report(level, msg string, args []interface{}) {
	items, person := rollbarArgs(msg, args)
	if person != nil {
		rollbar.SetPerson(person.ID, person.Name, person.Email)
	} else {
		rollbar.ClearPerson()
	}
	rollbar.Log(level, items...)
	l.print(level, msg, items[1:])
}

func (l RollbarLogger) print(level, msg string, args []interface{}) {
	var b strings.Builder
	b.WriteString(strings.ToUpper(level))
	b.WriteString(": ")
	b.WriteString(msg)
	for _, arg := range args {
		switch v := arg.(type) {
		case error:
			fmt.Fprintf(&b, " | error=%+v", v)
		case map[string]interface{}:
			fmt.Fprintf(&b, " | %v", v)
		default:
			fmt.Fprintf(&b, " | %+v", v)
		}
	}
	l.std.Println(b.String())
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	l.report(rollbar.DEBUG, msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	l.report(rollbar.INFO, msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	l.report(rollbar.WARN, msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	l.report(rollbar.ERR, msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.report(rollbar.CRIT, msg, args)
	rollbar.Wait()
	l.std.Fatal(msg)
}
