package scrollsync

import (
	"context"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/KevinMartinezC/GridScrollSynchronizerExample/pkg/reactive"
)

// registration ties one container to its coordinator. Its subscriptions
// live in scope and die with it.
type registration struct {
	id    string
	c     *Coordinator
	ct    Container
	scope *reactive.Owner

	closed atomic.Bool
	once   sync.Once

	// Touched only by the goroutine draining the coordinator.
	last      Position
	hasLast   bool
	lastCount int
	hasCount  bool
}

// watchLeadership starts a scroll episode every time the container starts
// scrolling. The episode is torn down as soon as the flag changes again.
func (r *registration) watchLeadership() {
	reactive.CreateEffect(func() reactive.Cleanup {
		if !r.ct.IsScrolling() {
			return nil
		}
		return r.startEpisode()
	})
}

func (r *registration) startEpisode() reactive.Cleanup {
	// Suppression is per episode; a new gesture always claims the slot.
	r.hasLast = false
	r.c.episodes.Add(1)
	r.c.metrics.episode()

	_, span := r.c.tracer.Start(context.Background(), "scrollsync.episode",
		trace.WithAttributes(
			attribute.String("scrollsync.group", r.c.group),
			attribute.String("scrollsync.registration", r.id),
		))

	published := 0
	episode := reactive.NewOwner(r.scope)
	reactive.WithOwner(episode, func() {
		reactive.CreateEffect(func() reactive.Cleanup {
			if r.publish(r.ct.Position()) {
				published++
			}
			return nil
		})
	})

	return func() {
		episode.Dispose()
		span.SetAttributes(attribute.Int("scrollsync.published", published))
		span.End()
	}
}

// publish forwards pos to the leader slot unless this container already
// published it last.
func (r *registration) publish(pos Position) bool {
	if r.closed.Load() {
		return false
	}
	if r.hasLast && r.last == pos {
		r.c.duplicates.Add(1)
		r.c.metrics.duplicate()
		return false
	}
	r.last, r.hasLast = pos, true
	return r.c.publish(pos, r.id)
}

// follow re-applies the leader position whenever it or the container's
// item count changes.
func (r *registration) follow() {
	reactive.CreateEffect(func() reactive.Cleanup {
		slot := r.c.leader.Get()
		count := r.ct.ItemCount()
		r.apply(slot, count)
		return nil
	})
}

func (r *registration) apply(slot leaderSlot, count int) {
	r.c.followerEvaluations.Add(1)

	if count < 0 {
		r.c.invalidCounts.Add(1)
		r.c.metrics.invalidCount()
		r.c.logger.Warn("discarding invalid item count", "registration", r.id, "count", count)
		if !r.hasCount {
			r.c.metrics.skip(skipNoValidCount)
			return
		}
		count = r.lastCount
	} else {
		r.lastCount, r.hasCount = count, true
	}

	if !slot.ok {
		return
	}

	target, ok := Clamp(slot.pos, count)
	if !ok {
		r.c.metrics.skip(skipNoItems)
		return
	}

	var current Position
	reactive.Untracked(func() {
		current = r.ct.Position()
	})
	if current == target {
		r.c.metrics.skip(skipAlreadyThere)
		return
	}

	if r.closed.Load() {
		r.c.metrics.skip(skipUnregistered)
		return
	}
	r.ct.ScrollTo(target.Index, target.Offset)
	r.c.followerScrolls.Add(1)
	r.c.metrics.followerScroll()
}

func (r *registration) unregister() {
	r.once.Do(func() {
		r.closed.Store(true)
		r.scope.Dispose()
		r.c.forget(r)
		r.c.metrics.registered(-1)
		r.c.logger.Debug("container unregistered", "registration", r.id)
	})
}
