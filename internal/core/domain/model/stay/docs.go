// Package stay models the declared presences of users at locations. Stays are
// the vertices of the route search graph: a packet can travel from one stay to
// another when the two holders can meet.
package stay
