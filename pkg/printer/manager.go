package printer

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Manager tracks the printers registered on one terminal. Several printers
// can be paired at once, but print jobs always go to the single active one.
type Manager struct {
	mu       sync.Mutex
	printers map[uuid.UUID]*registration
	activeID uuid.UUID
	max      int
}

type registration struct {
	info    Info
	printer Printer
}

// Info is the externally visible state of one registered printer.
type Info struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Profile Profile   `json:"profile"`
	Active  bool      `json:"active"`
}

// NewManager creates a printer manager allowing up to max registrations.
func NewManager(max int) *Manager {
	if max <= 0 {
		max = 3
	}
	return &Manager{
		printers: make(map[uuid.UUID]*registration),
		max:      max,
	}
}

// Register adds a printer for the given profile. The first registered
// printer becomes active.
func (m *Manager) Register(name string, profile Profile) (*Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.printers) >= m.max {
		return nil, fmt.Errorf("printer: at most %d printers can be registered", m.max)
	}

	p, err := New(profile)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	reg := &registration{
		info:    Info{ID: id, Name: name, Profile: profile},
		printer: p,
	}
	m.printers[id] = reg

	if m.activeID == uuid.Nil {
		m.activeID = id
	}
	reg.info.Active = id == m.activeID

	info := reg.info
	return &info, nil
}

// Remove unregisters a printer. If it was active, another registered printer
// (if any) becomes active.
func (m *Manager) Remove(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	reg, ok := m.printers[id]
	if !ok {
		return fmt.Errorf("printer: %s is not registered", id)
	}
	_ = reg.printer.Close()
	delete(m.printers, id)

	if m.activeID == id {
		m.activeID = uuid.Nil
		for other := range m.printers {
			m.activeID = other
			break
		}
	}
	return nil
}

// SetActive switches which registered printer receives print jobs.
func (m *Manager) SetActive(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.printers[id]; !ok {
		return fmt.Errorf("printer: %s is not registered", id)
	}
	m.activeID = id
	return nil
}

// List returns all registered printers.
func (m *Manager) List() []Info {
	m.mu.Lock()
	defer m.mu.Unlock()

	infos := make([]Info, 0, len(m.printers))
	for id, reg := range m.printers {
		info := reg.info
		info.Active = id == m.activeID
		infos = append(infos, info)
	}
	return infos
}

// Active returns the printer that currently receives print jobs.
func (m *Manager) Active() (Printer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	reg, ok := m.printers[m.activeID]
	if !ok {
		return nil, fmt.Errorf("printer: no active printer registered")
	}
	return reg.printer, nil
}

// Print sends data to the active printer.
func (m *Manager) Print(data []byte) error {
	p, err := m.Active()
	if err != nil {
		return err
	}
	return p.Print(data)
}
