package item

import "fmt"

// Visit decodes whatever lives at ptr, which is always inside a raw item,
// and returns the follow-up tasks its references produced.
type Visit func(ptr Pointer) ([]Task, error)

// Task asks the Worklist to visit the target of Label.
type Task struct {
	Label *Label
	Visit Visit
}

// Worklist drives reference-following discovery. Targets already parsed
// are skipped, so each region is decoded at most once and the loop ends
// once no queued label points into raw bytes.
type Worklist struct {
	ctx   *Context
	queue []Task
	seen  map[*Label]struct{}
}

// NewWorklist returns an empty work-list over ctx.
func NewWorklist(ctx *Context) *Worklist {
	return &Worklist{ctx: ctx, seen: make(map[*Label]struct{})}
}

// Push queues tasks. A label is queued at most once.
func (w *Worklist) Push(tasks ...Task) {
	for _, t := range tasks {
		if _, dup := w.seen[t.Label]; dup {
			continue
		}
		w.seen[t.Label] = struct{}{}
		w.queue = append(w.queue, t)
	}
}

// Len reports how many tasks are waiting.
func (w *Worklist) Len() int { return len(w.queue) }

// Run processes tasks in FIFO order until the queue is empty or a visit
// fails.
func (w *Worklist) Run() error {
	for len(w.queue) > 0 {
		t := w.queue[0]
		w.queue = w.queue[1:]

		ptr := t.Label.Ptr()
		if _, raw := ptr.Item.(*RawItem); !raw {
			if ptr.Offset != 0 {
				w.ctx.log.Debug("worklist: target inside parsed item",
					"label", t.Label.Name(), "item", ptr.Item.Kind(), "key", ptr.Item.Key())
			}
			continue
		}
		next, err := t.Visit(ptr)
		if err != nil {
			return fmt.Errorf("following %s: %w", t.Label, err)
		}
		w.Push(next...)
	}
	return nil
}
