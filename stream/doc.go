// Package stream provides a minimal, generic push-based stream
// abstraction with composable operators.
//
// An Observable is lazy: constructing a pipeline does no work, and each
// Subscribe creates an independent instance whose parameters are read
// at that moment. Observers receive Next values until a single terminal
// Error or Complete; unsubscribing tears down upstream work
// transitively.
//
// # Sources
//
//   - Just, FromSlice: emit fixed values synchronously
//   - FromChannel: emit values read from a channel
//   - Empty, Never, Throw: degenerate streams
//   - Defer: build the stream at subscription time
//   - Timer, Interval: scheduler-driven timing sources
//
// # Operators
//
//   - Map, MapErr, Filter, Tap, Take, Skip, Reduce
//   - Concat, Merge, CombineLatest2
//   - PipeIf: choose between two transformations per subscription
//   - WaitUntil: hold back values until every gate stream has fired
//
// # Time
//
// Nothing in this package reads the wall clock directly. Time-based
// sources take a Scheduler; Realtime() supplies production timing and
// the marbletest package supplies a deterministic virtual clock for
// tests.
//
// # Usage
//
//	evens := stream.Filter(stream.Just(1, 2, 3, 4), func(n int) bool { return n%2 == 0 })
//	doubled := stream.Map(evens, func(n int) int { return n * 2 })
//	doubled.SubscribeFunc(
//	    func(n int) { fmt.Println(n) },
//	    nil,
//	    func() { fmt.Println("done") },
//	)
//
// Observers are not synchronized by the package except where an
// operator merges multiple sources; a single source must deliver its
// events from one goroutine at a time.
package stream
