package cmd

import (
	"log"
	"os"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/sensorsdata/sensorsgen/parser"
)

const (
	telemetryAppName     = "sensorsgen"
	telemetryLicenseEnv  = "NEW_RELIC_LICENSE_KEY"
	telemetryConnectWait = 5 * time.Second
	telemetryShutdown    = 10 * time.Second
)

// telemetry reports each run as a transaction when a New Relic license key is
// present in the environment. The zero value reports nothing.
type telemetry struct {
	app *newrelic.Application
	txn *newrelic.Transaction
}

func startTelemetry() *telemetry {
	if os.Getenv(telemetryLicenseEnv) == "" {
		return &telemetry{}
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(telemetryAppName),
		newrelic.ConfigFromEnvironment(),
	)
	if err != nil {
		log.Printf("telemetry disabled: %v", err)
		return &telemetry{}
	}
	if err := app.WaitForConnection(telemetryConnectWait); err != nil {
		log.Printf("telemetry may be incomplete: %v", err)
	}

	return &telemetry{
		app: app,
		txn: app.StartTransaction("instrument"),
	}
}

func (t *telemetry) record(result parser.Result) {
	if t.txn == nil {
		return
	}
	t.txn.AddAttribute("instrumentedFunctions", result.Instrumented)
	t.txn.AddAttribute("skippedFunctions", result.Skipped)
	t.txn.AddAttribute("failed", result.Err != nil)
	if result.Err != nil {
		t.txn.NoticeError(result.Err)
	}
}

func (t *telemetry) end() {
	if t.app == nil {
		return
	}
	t.txn.End()
	t.app.Shutdown(telemetryShutdown)
}
