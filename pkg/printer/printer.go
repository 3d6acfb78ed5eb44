package printer

import (
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"time"
)

// Printer is the interface for sending raw ESC/POS data to a thermal printer.
type Printer interface {
	// Print sends raw ESC/POS bytes to the printer.
	Print(data []byte) error
	// Close releases the printer connection/handle.
	Close() error
	// IsConnected returns true if the printer connection is active.
	IsConnected() bool
}

// Profile describes how to reach one physical printer.
type Profile struct {
	Type       string        `json:"type"`                  // "network", "usb", "serial" or "none"
	Address    string        `json:"address,omitempty"`     // TCP address for network printers
	DevicePath string        `json:"device_path,omitempty"` // device file for usb/serial printers
	ChunkSize  int           `json:"chunk_size,omitempty"`  // bytes per link write, 0 = no chunking
	ChunkDelay time.Duration `json:"-"`                     // pause between chunks
}

// writeChunked pushes data through the link in ChunkSize pieces with a pause
// between writes. Bluetooth/serial printer links drop bytes when fed faster
// than their buffer drains, so pacing is part of the transport contract.
func (p Profile) writeChunked(w io.Writer, data []byte) error {
	size := p.ChunkSize
	if size <= 0 {
		_, err := w.Write(data)
		return err
	}
	for off := 0; off < len(data); off += size {
		end := off + size
		if end > len(data) {
			end = len(data)
		}
		if _, err := w.Write(data[off:end]); err != nil {
			return err
		}
		if p.ChunkDelay > 0 && end < len(data) {
			time.Sleep(p.ChunkDelay)
		}
	}
	return nil
}

// --- Network Printer (dials TCP, e.g. 192.168.1.100:9100) ---

type networkPrinter struct {
	profile Profile
	timeout time.Duration
	mu      sync.Mutex // serializes print jobs on one link
}

// NewNetworkPrinter creates a printer that connects via TCP.
// The profile address should include the port, e.g. "192.168.1.100:9100".
func NewNetworkPrinter(profile Profile) Printer {
	return &networkPrinter{
		profile: profile,
		timeout: 5 * time.Second,
	}
}

func (p *networkPrinter) Print(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	conn, err := net.DialTimeout("tcp", p.profile.Address, p.timeout)
	if err != nil {
		return fmt.Errorf("printer: failed to connect to %s: %w", p.profile.Address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(30 * time.Second))

	if err := p.profile.writeChunked(conn, data); err != nil {
		return fmt.Errorf("printer: failed to write to %s: %w", p.profile.Address, err)
	}
	return nil
}

func (p *networkPrinter) Close() error {
	return nil // network printer opens/closes per print job
}

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.profile.Address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// --- Device Printer (writes to a device file) ---
//
// Covers USB printers (/dev/usb/lp0) and Bluetooth thermal printers bound to
// a serial device node (/dev/rfcomm0). The kernel owns the radio link; from
// here both look like a file that must be fed in small paced chunks.

type devicePrinter struct {
	profile Profile
	mu      sync.Mutex
}

// NewDevicePrinter creates a printer that writes to a device file.
func NewDevicePrinter(profile Profile) Printer {
	return &devicePrinter{profile: profile}
}

func (p *devicePrinter) Print(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := os.OpenFile(p.profile.DevicePath, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: failed to open device %s: %w", p.profile.DevicePath, err)
	}
	defer f.Close()

	if err := p.profile.writeChunked(f, data); err != nil {
		return fmt.Errorf("printer: failed to write to device %s: %w", p.profile.DevicePath, err)
	}
	return nil
}

func (p *devicePrinter) Close() error {
	return nil // device printer opens/closes per print job
}

func (p *devicePrinter) IsConnected() bool {
	_, err := os.Stat(p.profile.DevicePath)
	return err == nil
}

// --- Null Printer (no-op, used when no printer is configured) ---

type nullPrinter struct{}

// NewNullPrinter creates a no-op printer for environments without hardware.
func NewNullPrinter() Printer {
	return &nullPrinter{}
}

func (p *nullPrinter) Print(data []byte) error {
	return nil
}

func (p *nullPrinter) Close() error {
	return nil
}

func (p *nullPrinter) IsConnected() bool {
	return false
}

// New creates the appropriate Printer for a profile.
func New(profile Profile) (Printer, error) {
	switch profile.Type {
	case "network":
		if profile.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return NewNetworkPrinter(profile), nil
	case "usb", "serial":
		if profile.DevicePath == "" {
			return nil, fmt.Errorf("printer: device path is required for %s printer type", profile.Type)
		}
		return NewDevicePrinter(profile), nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use network, usb, serial or none)", profile.Type)
	}
}
