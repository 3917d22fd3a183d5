// Package marbletest provides deterministic virtual-time testing for
// stream pipelines using marble diagrams.
//
// A marble string encodes a timeline one frame per character: '-'
// passes a frame, any other rune emits a value, '|' completes, '#'
// errors, '^' marks the subscription point of a hot source, and
// '(...)' pins several events to one frame.
//
// Tests build sources and expectations against a shared virtual
// Scheduler, then drain it with Flush. No goroutines and no wall-clock
// time are involved, so recorded frames are exact.
//
// # Usage
//
//	s := marbletest.NewScheduler()
//	src := marbletest.ColdRunes(s, "-a-b-|")
//	upper := stream.Map(src, strings.ToUpper)
//	rec := marbletest.Record(s, upper)
//	s.Flush()
//	marbletest.ExpectRunes(t, rec, "-A-B-|")
package marbletest
