package events

import "github.com/atomicstack/treemenu/internal/logging"

type MenuTracer struct{}

type ActionTracer struct{}

var (
	Menu   = MenuTracer{}
	Action = ActionTracer{}
)

func (MenuTracer) Display(dir string, items, previousLines int) {
	logging.Trace("menu.display", map[string]interface{}{"dir": dir, "items": items, "previous": previousLines})
}

func (MenuTracer) Key(dir, key, command string) {
	logging.Trace("menu.key", map[string]interface{}{"dir": dir, "key": key, "command": command})
}

func (MenuTracer) Cursor(dir string, cursor int) {
	logging.Trace("menu.cursor", map[string]interface{}{"dir": dir, "cursor": cursor})
}

func (MenuTracer) Dispatch(dir string, index int, caption string) {
	logging.Trace("menu.dispatch", map[string]interface{}{"dir": dir, "index": index, "caption": caption})
}

func (MenuTracer) Exit(dir, command string) {
	logging.Trace("menu.exit", map[string]interface{}{"dir": dir, "command": command})
}

func (MenuTracer) Directory(dir string) {
	logging.Trace("menu.directory", map[string]interface{}{"dir": dir})
}

func (MenuTracer) Rejected(dir, caption string) {
	logging.Trace("menu.rejected", map[string]interface{}{"dir": dir, "caption": caption})
}

func (ActionTracer) Performing(dir string, args int) {
	logging.Trace("action.performing", map[string]interface{}{"dir": dir, "args": args})
}

func (ActionTracer) Performed(dir string) {
	logging.Trace("action.performed", map[string]interface{}{"dir": dir})
}

func (ActionTracer) Error(dir string, err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"dir": dir, "error": err.Error()})
}

func (ActionTracer) Success(dir, info string) {
	logging.Trace("action.success", map[string]interface{}{"dir": dir, "info": info})
}
