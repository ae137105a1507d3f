// Package events defines the notification events emitted by the task
// lifecycle service and consumed by the connection fan-out layer.
//
// Events are serialized at creation so that emitting and delivering are
// decoupled: the service builds an Event after its store write commits,
// hands it to a dispatcher, and moves on. Delivery failures never reach
// the mutation path.
package events
