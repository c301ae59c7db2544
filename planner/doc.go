/*
Package planner implements the trip-planning engine: given an origin, a
destination and an immutable network snapshot, it finds the fastest
walk–wait–ride–walk trip on a single route and ranks the alternatives.

# Pipeline

PlanTrip runs a pure, synchronous pipeline over one snapshot handle:

 1. Direct walk time origin->destination, computed unconditionally so
    the caller can always offer a walking fallback.
 2. Nearby-stop search around both endpoints (network.FindNearbyStops).
 3. For every same-route (start, end) stop pair: topology check
    (Route.CheckDirection), live arrival match
    (FindNextBoardableVehicle), ride estimate from the matched
    vehicle's own prediction timeline (EstimateRideTime).
 4. Scoring by total time with a closeness tie-break: when two trips'
    totals are within the similarity threshold, the one whose start
    stop is the shorter walk wins. Live predictions are noisy; the
    walk distance is not.

Expected "no trip" conditions (no nearby stops, no boardable vehicle,
no usable ride estimate) are first-class result variants, never errors.
Only missing required inputs produce the error recommendation without
any candidate enumeration.

# Live-data corroboration

CheckDirection is a topology check only. The ride estimator re-validates
the pair against the matched vehicle's own timeline: the end stop must
be predicted after the start stop and before the vehicle loops back to
the start. A pair with no such prediction is discarded even though the
topology allowed it, which is how wrong-direction and no-live-data trips
are filtered.

The assembler (AssembleItinerary) is the only impure step: it fetches
walking-segment detail from a directions provider and reshapes the
result into ordered segments, propagating every numeric field unchanged.
*/
package planner
