// Package packet holds the Packet aggregate and the derivation of its
// delivery status from the current route.
package packet
