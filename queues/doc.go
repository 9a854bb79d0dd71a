// Package queues subscribes to live vehicle snapshots published on AMQP.
//
// A publisher sends one JSON message per feed tick to a fanout exchange,
// either as a tracking.Tick object or as a bare array of vehicle records.
// Consumer keeps the subscription alive across connection and channel
// failures and hands each decoded tick to a handler.
package queues
