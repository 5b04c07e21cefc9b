package events

import "github.com/atomicstack/treemenu/internal/logging"

type SessionTracer struct{}

var Session = SessionTracer{}

func (SessionTracer) Start(root string, anchorRow, anchorCol int) {
	logging.Trace("session.start", map[string]interface{}{"root": root, "row": anchorRow, "col": anchorCol})
}

func (SessionTracer) Stop(root string, err error) {
	payload := map[string]interface{}{"root": root}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("session.stop", payload)
}
