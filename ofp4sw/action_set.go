package ofp4sw

import (
	"github.com/floodlight/oftest-sub002/ofp4"
)

// ActionSet holds at most one action per Kind. It is filled by write-actions
// instructions and consumed once at the end of the pipeline.
type ActionSet struct {
	actions map[Kind]ofp4.Action
}

func NewActionSet() *ActionSet {
	return &ActionSet{actions: make(map[Kind]ofp4.Action)}
}

// Write merges actions into the set, the last one of each kind wins. Nothing
// is written if any action cannot be classified.
func (self *ActionSet) Write(actions ...ofp4.Action) error {
	kinds := make([]Kind, len(actions))
	for i, a := range actions {
		k, err := KindOf(a)
		if err != nil {
			return err
		}
		kinds[i] = k
	}
	if self.actions == nil {
		self.actions = make(map[Kind]ofp4.Action)
	}
	for i, a := range actions {
		self.actions[kinds[i]] = a
	}
	return nil
}

func (self *ActionSet) Get(k Kind) (ofp4.Action, bool) {
	a, ok := self.actions[k]
	return a, ok
}

func (self *ActionSet) Len() int {
	return len(self.actions)
}

func (self *ActionSet) Clear() {
	self.actions = make(map[Kind]ofp4.Action)
}

// Actions lists the set in execution order.
func (self *ActionSet) Actions() ofp4.ActionList {
	var ret ofp4.ActionList
	for k := Kind(0); k < kindCount; k++ {
		if a, ok := self.actions[k]; ok {
			ret = append(ret, a)
		}
	}
	return ret
}

func (self *ActionSet) String() string {
	return self.Actions().String()
}
