package tui

import (
	"time"

	"gridmux/internal/anim"
	"gridmux/internal/grid"
	"gridmux/internal/surface"
	"gridmux/internal/tui/theme"
)

// Timing for the three canonical sequences. All run on the scheduler's
// single timeline; none of them blocks input.
const (
	fadeDuration      = 100 * time.Millisecond
	crossfadeDuration = 80 * time.Millisecond
	crossfadeBuffer   = 20 * time.Millisecond
	pulseDuration     = 220 * time.Millisecond
)

// setGroupAlpha applies one alpha to a set of primitives. The delete mask
// keeps its translucency factor so a fade never turns it opaque.
func (s *Session) setGroupAlpha(keys []string, a float64) {
	for _, k := range keys {
		if k == keyDeleteMask {
			s.canvas.SetAlpha(k, a*deleteMaskAlpha)
			continue
		}
		s.canvas.SetAlpha(k, a)
	}
}

// fadeOpen runs the overlay's entrance: primitives exist at alpha 0 and step
// up to full over the fade duration.
func (s *Session) fadeOpen() {
	keys := s.allKeys()
	s.sched.Schedule("fade",
		anim.Step{After: 0, Apply: func() { s.alpha = 0.45; s.setGroupAlpha(keys, 0.45) }},
		anim.Step{After: fadeDuration / 2, Apply: func() { s.alpha = 0.8; s.setGroupAlpha(keys, 0.8) }},
		anim.Step{After: fadeDuration, Apply: func() { s.alpha = 1; s.setGroupAlpha(keys, 1) }},
	)
}

// fadeClose reverses the entrance and tears the session down once the fade
// has finished. Teardown deletes every primitive; any animation step still
// pending after that is a no-op by construction.
func (s *Session) fadeClose() {
	if s.closing {
		return
	}
	s.closing = true
	keys := s.allKeys()
	s.sched.Schedule("fade",
		anim.Step{After: 0, Apply: func() { s.alpha = 0.6; s.setGroupAlpha(keys, 0.6) }},
		anim.Step{After: fadeDuration / 2, Apply: func() { s.alpha = 0.25; s.setGroupAlpha(keys, 0.25) }},
		anim.Step{After: fadeDuration, Apply: s.teardown},
	)
}

// crossfade hides the page content, swaps it while invisible, and shows it
// again. Panel and footer chrome stay put.
func (s *Session) crossfade() {
	keys := s.contentKeys()
	rebuildAt := crossfadeDuration + crossfadeBuffer
	s.sched.Schedule("crossfade",
		anim.Step{After: 0, Apply: func() { s.setGroupAlpha(keys, 0.4) }},
		anim.Step{After: crossfadeDuration, Apply: func() { s.setGroupAlpha(keys, 0) }},
		anim.Step{After: rebuildAt, Apply: func() {
			s.pageMap = s.sel.PageMap()
			s.refreshTexts(0)
			s.refreshFooter(s.alpha)
		}},
		anim.Step{After: rebuildAt + crossfadeDuration/2, Apply: func() { s.setGroupAlpha(keys, 0.5) }},
		anim.Step{After: rebuildAt + crossfadeDuration, Apply: func() { s.setGroupAlpha(keys, s.alpha) }},
	)
}

// pulseFlash is the sole feedback for a delete: the cell flashes the accent
// color and the flash primitive removes itself at the end.
func (s *Session) pulseFlash(cell grid.Cell) {
	key := pulseKey(cell)
	rect := s.cellInner(cell)
	s.canvas.Apply(key, surface.Primitive{
		Kind:  surface.KindRect,
		Rect:  rect,
		Fill:  theme.Peach,
		Alpha: 0,
	})
	s.sched.Schedule(key,
		anim.Step{After: 40 * time.Millisecond, Apply: func() { s.canvas.SetAlpha(key, 0.85) }},
		anim.Step{After: 140 * time.Millisecond, Apply: func() { s.canvas.SetAlpha(key, 0) }},
		anim.Step{After: pulseDuration, Apply: func() { s.canvas.Delete(key) }},
	)
}
