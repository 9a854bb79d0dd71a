package tramline

import (
	"errors"
	"fmt"
	"time"

	"github.com/theoremus-urban-solutions/tramline/config"
	"github.com/theoremus-urban-solutions/tramline/geo"
	"github.com/theoremus-urban-solutions/tramline/network"
	"github.com/theoremus-urban-solutions/tramline/routing"
	"github.com/theoremus-urban-solutions/tramline/siri"
	"github.com/theoremus-urban-solutions/tramline/tracking"
)

var (
	// ErrUnknownStation means a request names a station the network does not have.
	ErrUnknownStation = errors.New("unknown station")
	// ErrInvalidRequest means a journey request is missing its origin or destination.
	ErrInvalidRequest = errors.New("invalid journey request")
)

// JourneyRequest names the destination and either an origin station or the
// rider's current location.
type JourneyRequest struct {
	FromID   string
	Location *geo.Point
	ToID     string
}

// ServiceOptions configures a Service. Zero values fall back to defaults.
type ServiceOptions struct {
	Routing          routing.Options
	Tracking         tracking.Options
	SIRI             siri.Options
	JournalSize      int
	JourneyCacheSize int
	NearestCacheSize int
	NearestCacheTTL  time.Duration
	Now              func() time.Time
}

// OptionsFromConfig derives service options from the application configuration.
func OptionsFromConfig(cfg config.AppConfig) ServiceOptions {
	return ServiceOptions{
		Routing:  cfg.Routing.Options(),
		Tracking: tracking.Options{PlaceholderIDs: cfg.Feed.PlaceholderIDs},
		SIRI: siri.Options{
			Codespace:      cfg.Codespace,
			ReadIntervalMS: cfg.Feed.ReadIntervalMS,
		},
		NearestCacheTTL: time.Hour,
	}
}

// Service answers journey requests against one network and keeps the
// committed collection of live vehicle markers.
type Service struct {
	net      *network.Network
	composer *routing.Composer
	nearest  *routing.NearestFinder
	journeys *journeyCache
	markers  *tracking.Reconciler
	journal  *tracking.Journal
	siri     siri.Options
	now      func() time.Time
}

// NewService creates a service over n.
func NewService(n *network.Network, opts ServiceOptions) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if opts.SIRI.Codespace == "" {
		opts.SIRI.Codespace = "UNKNOWN"
	}
	return &Service{
		net:      n,
		composer: routing.NewComposer(n, opts.Routing),
		nearest:  routing.NewNearestFinder(n.Stations(), opts.NearestCacheSize, opts.NearestCacheTTL),
		journeys: newJourneyCache(opts.JourneyCacheSize),
		markers:  tracking.NewReconciler(opts.Tracking),
		journal:  tracking.NewJournal(opts.JournalSize, func() int64 { return now().Unix() }),
		siri:     opts.SIRI,
		now:      now,
	}
}

// Network returns the network the service routes on.
func (s *Service) Network() *network.Network { return s.net }

// Stations returns every station sorted by id.
func (s *Service) Stations() []network.Station { return s.net.Stations() }

// Journey composes the journey described by req. Journeys from a station
// are cached; the returned value must not be modified.
func (s *Service) Journey(req JourneyRequest) (*routing.Journey, error) {
	if req.ToID == "" {
		return nil, fmt.Errorf("%w: destination is required", ErrInvalidRequest)
	}
	to, ok := s.net.Station(req.ToID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStation, req.ToID)
	}

	if req.Location != nil {
		if !req.Location.Valid() {
			return nil, fmt.Errorf("%w: location out of range", ErrInvalidRequest)
		}
		nearest, _, ok := s.nearest.Nearest(*req.Location)
		if !ok {
			return nil, fmt.Errorf("%w: network has no stations", ErrUnknownStation)
		}
		return s.composer.Compose(routing.LocationOrigin(*req.Location, nearest), to)
	}

	if req.FromID == "" {
		return nil, fmt.Errorf("%w: origin station or location is required", ErrInvalidRequest)
	}
	from, ok := s.net.Station(req.FromID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStation, req.FromID)
	}
	key := memoKey(from.ID, to.ID)
	if j, ok := s.journeys.get(key); ok {
		return j, nil
	}
	j, err := s.composer.Compose(routing.StationOrigin(from), to)
	if err != nil {
		return nil, err
	}
	s.journeys.set(key, j)
	return j, nil
}

// ApplyTick reconciles a vehicle snapshot into the marker collection and
// records the resulting operations in the change journal.
func (s *Service) ApplyTick(tick tracking.Tick) ([]tracking.Operation, error) {
	return s.markers.Apply(tick, s.journal)
}

// Markers returns the committed markers sorted by id.
func (s *Service) Markers() []tracking.Marker { return s.markers.Markers() }

// FeedTimestamp returns the timestamp of the last committed snapshot.
func (s *Service) FeedTimestamp() int64 { return s.markers.Timestamp() }

// Ticks returns how many snapshots were committed.
func (s *Service) Ticks() int { return s.markers.Ticks() }

// Seq returns the sequence number of the newest committed change batch.
func (s *Service) Seq() uint64 { return s.journal.Latest() }

// Changes returns the operation batches committed after seq.
func (s *Service) Changes(seq uint64) (batches []tracking.Batch, latest uint64, complete bool) {
	return s.journal.Since(seq)
}

// LineRef returns the SIRI line reference of color.
func (s *Service) LineRef(color network.LineColor) string {
	return siri.LineRef(s.siri.Codespace, color)
}

// VehicleMonitoring renders the committed markers as a SIRI response,
// restricted to lineRef when it is not empty.
func (s *Service) VehicleMonitoring(lineRef string) *siri.SiriResponse {
	ts := s.markers.Timestamp()
	if ts == 0 {
		ts = s.now().Unix()
	}
	vm := siri.BuildVehicleMonitoring(s.markers.Markers(), ts, s.siri)
	if lineRef != "" {
		vm = siri.FilterByLine(vm, lineRef)
	}
	return siri.WrapVehicleMonitoringResponse(vm, s.siri.Codespace)
}
