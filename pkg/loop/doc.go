// Package loop provides the single execution context hooks run on.
//
// Every hook transition (a client event, an inbound re-render, a timer
// firing) runs to completion as one task. Tasks never overlap, and they run
// in the order they were queued.
//
// Timers are scheduled through the Scheduler interface so that tests can
// drive time explicitly with Manual:
//
//	m := loop.NewManual()
//	m.AfterFunc(100*time.Millisecond, func() { fired = true })
//	m.Advance(100 * time.Millisecond) // fired == true
package loop
