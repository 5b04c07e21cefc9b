package events

import "github.com/atomicstack/treemenu/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) TreeLoaded(source string, entries int) {
	logging.Trace("app.tree", map[string]interface{}{"source": source, "entries": entries})
}
