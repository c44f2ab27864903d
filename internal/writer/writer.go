// internal/writer/writer.go
package writer

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// endpointClient is the exact contract the writer uses.
type endpointClient interface {
	WriteRegisters(start uint16, values []uint16, unit uint8) error
}

type registerWriter struct {
	client endpointClient
	unitID uint8
	log    logrus.FieldLogger
}

// New returns a Writer that sends one write transaction per optimized run.
func New(client endpointClient, unitID uint8, log logrus.FieldLogger) Writer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &registerWriter{
		client: client,
		unitID: unitID,
		log:    log.WithField("unit", unitID),
	}
}

// Apply writes every run in order. The first failed run stops dispatch;
// runs already written stay written.
func (w *registerWriter) Apply(req Request) error {
	for _, run := range Optimize(req) {
		w.log.WithFields(logrus.Fields{
			"base":  run.Base,
			"count": len(run.Values),
		}).Debugf("Writing %d register(s) %v at base %d", len(run.Values), run.Values, run.Base)

		if err := w.client.WriteRegisters(run.Base, run.Values, w.unitID); err != nil {
			return fmt.Errorf("writer: unit=%d base=%d count=%d: %w", w.unitID, run.Base, len(run.Values), err)
		}
	}
	return nil
}
