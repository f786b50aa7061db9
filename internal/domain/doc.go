// Package domain models a single airport and the planes that land at it.
//
// # Movements
//
// A plane is either in the air or parked at exactly one airport:
//
//	in_air ──Land──▶ at_airport(name) ──TakeOff──▶ in_air
//
// Both transitions are guarded. Land refuses, in this order, a plane already
// parked here, a plane that is not airborne, a full airport and stormy
// weather. TakeOff refuses a plane that is not parked here and stormy
// weather. A refused movement leaves the plane and the airport untouched.
//
// # Messages
//
// Successful movements and forecasts write a fixed operator-facing message to
// the airport's output (stdout unless WithOutput is given):
//
//	The <name> landed succesfully
//	The <name> took off succesfully
//	Clear | Stormy
//
// Refusals are returned as *OperationError whose Error() is the operator
// message, e.g. "Can't land due to stormy weather". Match them with
// errors.Is against the Err* sentinels.
//
// # Weather
//
// Weather is injected through the Weather interface so callers choose between
// a random source in production and a fixed one in tests.
package domain
