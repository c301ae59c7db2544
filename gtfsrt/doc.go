/*
Package gtfsrt turns GTFS-Realtime TripUpdates and VehiclePositions
feeds into the live half of a network snapshot: tracked vehicles with
per-stop arrival predictions, grouped by route.

The provider is deliberately dumb about topology. Route stop sequences
come from a static source (see pgstatic); this package only maps feed
entities to vehicles and converts absolute arrival epochs into
seconds-to-arrival relative to the fetch time. A stop time update with
no arrival time becomes an unusable prediction (negative seconds), which
downstream code skips rather than treats as "due now".

Feeds are fetched over HTTP as raw protobuf and decoded with the
official MobilityData bindings.
*/
package gtfsrt
