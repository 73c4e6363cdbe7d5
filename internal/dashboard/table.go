package dashboard

import (
	"sync"

	"github.com/angeloszaimis/host-health/internal/health"
	"github.com/angeloszaimis/host-health/internal/registry"
)

// TableID is the id of the table element the rows are rendered into.
const TableID = "host-health-table"

// Indicator is the status marker shown in the last cell of a row.
type Indicator string

const (
	Up   Indicator = "up"
	Down Indicator = "down"
)

// Class is the CSS class of the marker button.
func (i Indicator) Class() string {
	if i == Up {
		return "network-status green"
	}
	return "network-status red"
}

// Row is one rendered host. ID is the host identifier.
type Row struct {
	ID        string
	Host      string
	Health    string
	Indicator Indicator
}

// Table keeps rendered rows between render passes so that a host's row is
// updated in place instead of recreated.
type Table struct {
	mutex   sync.RWMutex
	order   []*Row
	index   map[string]*Row
	created int
}

func NewTable() *Table {
	return &Table{
		index: make(map[string]*Row),
	}
}

// Render reconciles the table with entries. Each entry's row is looked up by
// host, created if absent, has its cells replaced and is moved behind the
// rows rendered before it.
func (t *Table) Render(entries []registry.Entry) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	moved := make(map[string]bool, len(entries))
	rendered := make([]*Row, 0, len(entries))

	for _, e := range entries {
		row, ok := t.index[e.Host]
		if !ok {
			row = &Row{ID: e.Host}
			t.index[e.Host] = row
			t.created++
		}

		row.Host = e.Host
		row.Health = healthText(e.Value)
		row.Indicator = indicator(e.Value)

		if !moved[e.Host] {
			moved[e.Host] = true
			rendered = append(rendered, row)
		}
	}

	order := make([]*Row, 0, len(t.index))
	for _, row := range t.order {
		if !moved[row.ID] {
			order = append(order, row)
		}
	}
	t.order = append(order, rendered...)
}

// Rows returns a copy of the rows in display order.
func (t *Table) Rows() []Row {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	rows := make([]Row, 0, len(t.order))
	for _, row := range t.order {
		rows = append(rows, *row)
	}
	return rows
}

// Row returns the row rendered for id.
func (t *Table) Row(id string) (Row, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	row, ok := t.index[id]
	if !ok {
		return Row{}, false
	}
	return *row, true
}

// Created is the number of rows ever created. It stays constant across
// renders of an unchanged host set.
func (t *Table) Created() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return t.created
}

// healthText shows UNKNOWN for every named state and the JSON text for a
// payload. This looks inverted but is the dashboard's established behavior.
func healthText(v health.Value) string {
	if v.IsStateName() {
		return string(health.Unknown)
	}
	return v.String()
}

// indicator marks a host up when its value is not a state name, or is ERROR.
// Like healthText this is kept as observed, not as intended.
func indicator(v health.Value) Indicator {
	if !v.IsStateName() || v.Name() == string(health.Error) {
		return Up
	}
	return Down
}
