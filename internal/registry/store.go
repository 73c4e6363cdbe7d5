package registry

import (
	"log/slog"
	"sync"

	"github.com/angeloszaimis/host-health/internal/health"
)

// DefaultHosts are the hosts monitored by the dashboard.
var DefaultHosts = []string{
	"http://192.168.68.107",
	"http://192.168.68.109",
	"http://192.168.68.110",
}

// Entry is one host and its latest value.
type Entry struct {
	Host  string       `json:"host"`
	Value health.Value `json:"value"`
}

// Snapshot is a point-in-time copy of the store, in host insertion order.
type Snapshot []Entry

// LogValue renders the snapshot as one attribute per host.
func (s Snapshot) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(s))
	for _, e := range s {
		attrs = append(attrs, slog.String(e.Host, e.Value.String()))
	}
	return slog.GroupValue(attrs...)
}

type Store struct {
	lock   sync.RWMutex
	hosts  []string
	values map[string]health.Value
}

// New creates a store with every host set to WAITING. Duplicate hosts are
// kept once, at their first position.
func New(hosts ...string) *Store {
	s := &Store{
		hosts:  make([]string, 0, len(hosts)),
		values: make(map[string]health.Value, len(hosts)),
	}

	for _, host := range hosts {
		if _, ok := s.values[host]; ok {
			continue
		}
		s.hosts = append(s.hosts, host)
		s.values[host] = health.StateValue(health.Waiting)
	}

	return s
}

// Set replaces the value of a known host. It returns false, and stores
// nothing, when host was not registered at construction.
func (s *Store) Set(host string, value health.Value) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.values[host]; !ok {
		return false
	}

	s.values[host] = value
	return true
}

func (s *Store) Get(host string) (health.Value, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	v, ok := s.values[host]
	return v, ok
}

// Hosts returns the registered hosts in insertion order.
func (s *Store) Hosts() []string {
	hosts := make([]string, len(s.hosts))
	copy(hosts, s.hosts)
	return hosts
}

func (s *Store) Len() int {
	return len(s.hosts)
}

func (s *Store) Snapshot() Snapshot {
	s.lock.RLock()
	defer s.lock.RUnlock()

	snap := make(Snapshot, 0, len(s.hosts))
	for _, host := range s.hosts {
		snap = append(snap, Entry{Host: host, Value: s.values[host]})
	}

	return snap
}
