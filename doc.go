// Package tramline wires the routing and tracking packages into a running
// service.
//
// Service holds one loaded network together with the live marker
// collection. The HTTP shell in server.go exposes it, and RunFeed keeps
// the marker collection current from a GTFS-Realtime poller or an AMQP
// queue. LoadNetwork picks the network source named in the configuration.
package tramline
