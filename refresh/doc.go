/*
Package refresh owns all mutation of the network snapshot. A Refresher
periodically combines a static topology source (route stop sequences)
with a live vehicle source (per-route vehicles and predictions) into a
fresh network.Snapshot and publishes it with a single atomic pointer
swap. Planning calls read whatever snapshot handle is current at the
moment they start and are never exposed to a newer one mid-computation,
so no locking exists on the read path.

Topology and vehicle fetches run concurrently; a vehicle-source failure
degrades to a snapshot with the routes but no vehicles, and a topology
failure keeps the previous snapshot rather than tearing service down.
One bad route never aborts the rest.
*/
package refresh
