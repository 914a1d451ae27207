package netlist

import (
	"fmt"
	"os"

	"github.com/edp1096/toy-cascade/pkg/device"
)

type NetlistData struct {
	Topology Topology           // Cascade ordered branches
	Terms    Terms              // Source, load and sweep
	Outputs  []OutputDescriptor // Requested columns, file order
	Warnings []Warning          // Recoverable findings
}

// Parse reads a whole description with <CIRCUIT>, <TERMS> and <OUTPUT> blocks.
func Parse(content string) (*NetlistData, error) {
	text := Normalize(content)

	circuitText, err := ExtractBlock(text, CircuitBlock)
	if err != nil {
		return nil, err
	}
	termsText, err := ExtractBlock(text, TermsBlock)
	if err != nil {
		return nil, err
	}
	outputText, err := ExtractBlock(text, OutputBlock)
	if err != nil {
		return nil, err
	}

	data := &NetlistData{}

	var warns []Warning
	data.Topology, warns, err = ParseCircuit(circuitText)
	if err != nil {
		return nil, err
	}
	data.Warnings = append(data.Warnings, warns...)

	data.Terms, err = ParseTerms(termsText)
	if err != nil {
		return nil, err
	}

	data.Outputs, warns, err = ParseOutputs(outputText)
	if err != nil {
		return nil, err
	}
	data.Warnings = append(data.Warnings, warns...)

	return data, nil
}

func ParseFile(path string) (*NetlistData, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading netlist file: %w", err)
	}
	data, err := Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// CreateDevices builds one device per branch, named by kind and position (R1, R2, C1, ...).
func CreateDevices(topology Topology) ([]device.Device, error) {
	counts := make(map[device.Kind]int)
	devices := make([]device.Device, 0, len(topology))
	for _, b := range topology {
		counts[b.Kind]++
		name := fmt.Sprintf("%s%d", b.Kind, counts[b.Kind])
		dev, err := device.New(b.Kind, name, b.Connection, b.Value)
		if err != nil {
			return nil, fmt.Errorf("creating device %s: %v", name, err)
		}
		devices = append(devices, dev)
	}
	return devices, nil
}
