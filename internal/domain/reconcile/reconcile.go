// Package reconcile merges the immutable seed collections with local
// overrides into the single logical view the rest of the application
// reads. It is pure: fixed inputs always produce the same output and
// the inputs are never mutated.
package reconcile

import (
	"github.com/ehsandc/Event-App-on-render/internal/domain/model"
)

// Events merges seed events with local overrides.
//
// Precedence, applied in order:
//  1. locally added events come first, in the order given (newest first),
//     followed by seed events in their original order;
//  2. a record whose id has an entry in edited is substituted by the
//     edited version, keeping its position and origin;
//  3. any record whose id is tombstoned in deletedIDs is dropped.
//
// The output contains at most one event per id: an edit never duplicates
// its base record, it replaces it.
func Events(seed, localAdded []model.Event, edited map[int64]model.Event, deletedIDs []int64) []model.Event {
	dead := make(map[int64]struct{}, len(deletedIDs))
	for _, id := range deletedIDs {
		dead[id] = struct{}{}
	}

	out := make([]model.Event, 0, len(localAdded)+len(seed))
	for _, e := range localAdded {
		if _, gone := dead[e.ID]; gone {
			continue
		}
		out = append(out, substitute(e, model.OriginLocal, edited))
	}
	for _, e := range seed {
		if _, gone := dead[e.ID]; gone {
			continue
		}
		out = append(out, substitute(e, model.OriginSeed, edited))
	}
	return out
}

func substitute(base model.Event, origin model.Origin, edited map[int64]model.Event) model.Event {
	if repl, ok := edited[base.ID]; ok {
		repl.ID = base.ID
		repl.Origin = origin
		return repl
	}
	base.Origin = origin
	return base
}

// Categories concatenates seed categories and locally added ones,
// seed first, dropping tombstoned ids. Name collisions are rejected at
// creation time, so no dedup happens here.
func Categories(seed, local []model.Category, deletedIDs []int64) []model.Category {
	dead := make(map[int64]struct{}, len(deletedIDs))
	for _, id := range deletedIDs {
		dead[id] = struct{}{}
	}

	out := make([]model.Category, 0, len(seed)+len(local))
	for _, c := range seed {
		if _, gone := dead[c.ID]; !gone {
			out = append(out, c)
		}
	}
	for _, c := range local {
		if _, gone := dead[c.ID]; !gone {
			out = append(out, c)
		}
	}
	return out
}
