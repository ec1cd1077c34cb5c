// Package stream schedules block processing against a double-buffered
// transfer engine.
//
// The transfer engine fills and drains two halves of a [TransferBuffer] in
// turn and reports each finished half with an [Event]. [Scheduler.Notify]
// records the event in a single-slot [Mailbox] and returns at once; it is
// safe to call from the engine's goroutine. The processing goroutine runs
// [Scheduler.Run] (or calls [Scheduler.Poll] itself), which converts,
// processes and writes back the half that is ready, then releases the slot.
//
// A notification that arrives while the slot is still occupied is an
// overrun. What happens then is an explicit [Policy]: reject the new event,
// overwrite the pending one, or stop the scheduler. Overruns are counted in
// every case.
//
// Transfer errors and missed deadlines are fatal: [Scheduler.Fault] records
// the error and Run returns it.
//
// [Engine] is a software transfer engine that moves frames between a
// [FrameSource], the scheduler and a [FrameSink], for offline rendering and
// tests.
package stream
