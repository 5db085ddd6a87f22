// Package inventory provides an inventory ledger with password-based
// authentication (JWT issuance, bun-backed repositories) and a booking
// lifecycle for the items it tracks.
//
// Item lifecycle:
//   - Items carry an InStock flag plus the email of the current booker. The
//     two fields move together: an item in stock never names a booker, a
//     booked item always does.
//   - ItemStateMachine centralizes the transition graph. Booking and returning
//     are conditional writes so two callers racing for the same item resolve
//     in storage, not in application code.
//
// Activity sinks:
//   - ActivitySink is a light-weight audit emitter used by Auther and the
//     state machine to describe login and booking events. Sinks run
//     best-effort (errors are logged) so you can forward to a database or
//     queue without blocking requests.
package inventory
