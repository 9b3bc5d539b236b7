package probe

import (
	"fmt"

	"github.com/vpbank/ups_probe/models"
	"github.com/vpbank/ups_probe/snmp/upsmib"
)

// selfTest reads the upsTest group and contributes the self-test fragment.
// Result codes outside the known set produce no fragment; failed and aborted
// results can be suppressed by configuration, but a passed, running, or absent
// test is always reported.
func (e *evaluation) selfTest() error {
	id, err := e.store.OID(upsmib.TestID, "self-test identifier")
	if err != nil {
		return err
	}
	summary, err := e.store.Int(upsmib.TestResultsSummary, "self-test result summary")
	if err != nil {
		return err
	}
	startTime, err := e.store.Int(upsmib.TestStartTime, "self-test start time")
	if err != nil {
		return err
	}

	name := upsmib.TestName(id)

	if summary == upsmib.TestNoTestsInitiated || upsmib.IsNoTestsInitiated(id) {
		e.report.Add(models.OK, "no test")
		return nil
	}

	switch summary {
	case upsmib.TestInProgress:
		e.report.Add(models.OK, fmt.Sprintf("test running: %s (%s)",
			name, FormatTicks(e.uptime-startTime)))
	case upsmib.TestDonePass:
		e.report.Add(models.OK, "test passed: "+name)
	case upsmib.TestDoneWarning:
		if !e.suppressTestResults {
			e.report.Add(models.Warning, "test warning: "+name)
		}
	case upsmib.TestDoneError:
		if !e.suppressTestResults {
			e.report.Add(models.Critical, "test failed: "+name)
		}
	case upsmib.TestAborted:
		if !e.suppressTestResults {
			e.report.Add(models.Warning, "test aborted: "+name)
		}
	}
	return nil
}
