// Package route holds the Route aggregate: an ordered chain of steps that
// moves one packet from its sender to its recipient, together with the step
// status state machine and the events recorded when steps change.
package route
