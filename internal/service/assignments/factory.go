package assignments

import (
	"context"
	"strings"
)

type actionFunc func(context.Context, Event) (string, error)

type actionFactory struct {
	byAction map[string]actionFunc
}

func newActionFactory(onAssigned, onUnassigned actionFunc) *actionFactory {
	return &actionFactory{
		byAction: map[string]actionFunc{
			"":               onAssigned,
			ActionAssigned:   onAssigned,
			ActionUnassigned: onUnassigned,
		},
	}
}

func (f *actionFactory) get(action string) (actionFunc, bool) {
	action = strings.ToLower(strings.TrimSpace(action))
	fn, ok := f.byAction[action]
	return fn, ok
}
