package drivers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"

	"eegview/config"
)

// Serial reads records from an acquisition board on a USB serial port.
type Serial struct {
	*config.SerialFlags
	port serial.Port
}

// Arduino & clones common VIDs, most hobby EEG boards use one of these
var preferredVIDs = map[string]bool{
	"2341": true, // Arduino
	"2A03": true, // Arduino (older)
	"1A86": true, // CH340
	"10C4": true, // CP210x
	"0403": true, // FTDI
}

func NewSerial(serialFlags *config.SerialFlags) *Serial {
	return &Serial{
		serialFlags,
		nil,
	}
}

func (s *Serial) Init() error {
	port, err := openPort(s.SerialPort, s.BaudRate)
	if err != nil {
		return err
	}
	s.port = port
	return nil
}

func (s *Serial) Run(ctx context.Context, lines chan<- string) error {
	// Closing the port is the only way to unblock a pending read.
	stop := context.AfterFunc(ctx, func() {
		_ = s.port.Close()
	})
	defer stop()

	err := scanLines(ctx, s.port, lines)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (s *Serial) Close() error {
	if s.port == nil {
		return nil
	}
	return s.port.Close()
}

func openPort(port string, baud int) (serial.Port, error) {
	// auto-select a board-ish port if requested
	if port == "auto" {
		name, err := autoSelectPort()
		if err != nil {
			return nil, fmt.Errorf("auto-select: %w", err)
		}
		port = name
	}
	mode := &serial.Mode{BaudRate: baud}
	serialPort, err := serial.Open(port, mode)
	if err != nil {
		return nil, fmt.Errorf("couldn't open serial %s: %w", port, err)
	}
	log.Printf("connected to %s @ %d", port, baud)

	return serialPort, nil
}

func autoSelectPort() (string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return "", fmt.Errorf("enumerate ports: %w", err)
	}
	// Look for the first matching board port
	for _, p := range ports {
		if p.IsUSB && preferredVIDs[strings.ToUpper(p.VID)] {
			return p.Name, nil
		}
	}
	return "", fmt.Errorf("no usb serial ports found")
}
