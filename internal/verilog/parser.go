// Package verilog extracts module port and net declarations from Verilog
// source with best-effort regular expressions. It is a convenience for
// cross-checking VCD signals against the design, not a Verilog parser.
package verilog

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Port is one declared signal with its bit width.
type Port struct {
	Width int
	Desc  string
}

// Module holds the declarations extracted from one Verilog module.
type Module struct {
	Name       string
	Inputs     map[string]Port
	Outputs    map[string]Port
	Wires      map[string]Port
	Regs       map[string]Port
	Parameters map[string]string
}

var (
	moduleRe = regexp.MustCompile(`(?i)module\s+(\w+)\s*(?:\([^)]*\))?\s*;`)
	inputRe  = regexp.MustCompile(`(?i)input\s+(?:wire\s+)?(?:\[(\d+):(\d+)\]\s+)?(\w+);`)
	outputRe = regexp.MustCompile(`(?i)output\s+(?:wire\s+|reg\s+)?(?:\[(\d+):(\d+)\]\s+)?(\w+);`)
	wireRe   = regexp.MustCompile(`(?i)wire\s+(?:\[(\d+):(\d+)\]\s+)?(\w+);`)
	regRe    = regexp.MustCompile(`(?i)reg\s+(?:\[(\d+):(\d+)\]\s+)?(\w+);`)
	paramRe  = regexp.MustCompile(`(?i)parameter\s+(\w+)\s*=\s*([^;]+);`)
)

// ParseFile reads a Verilog source file and extracts its first module
// declaration.
func ParseFile(path string) (*Module, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading Verilog file: %w", err)
	}
	return Parse(string(content))
}

// Parse extracts the first module declaration from Verilog source text.
func Parse(content string) (*Module, error) {
	m := moduleRe.FindStringSubmatch(content)
	if m == nil {
		return nil, fmt.Errorf("no module declaration found")
	}
	return &Module{
		Name:       m[1],
		Inputs:     extractPorts(inputRe, content, "Input port"),
		Outputs:    extractPorts(outputRe, content, "Output port"),
		Wires:      extractPorts(wireRe, content, "Wire"),
		Regs:       extractPorts(regRe, content, "Register"),
		Parameters: extractParameters(content),
	}, nil
}

// Signals returns the names of every declared signal.
func (m *Module) Signals() []string {
	names := make([]string, 0, len(m.Inputs)+len(m.Outputs)+len(m.Wires)+len(m.Regs))
	for _, ports := range []map[string]Port{m.Inputs, m.Outputs, m.Wires, m.Regs} {
		for name := range ports {
			names = append(names, name)
		}
	}
	return names
}

// Lookup returns the declaration for a signal name, searching inputs,
// outputs, wires and regs in that order.
func (m *Module) Lookup(name string) (Port, bool) {
	for _, ports := range []map[string]Port{m.Inputs, m.Outputs, m.Wires, m.Regs} {
		if port, ok := ports[name]; ok {
			return port, true
		}
	}
	return Port{}, false
}

func extractPorts(re *regexp.Regexp, content, desc string) map[string]Port {
	ports := make(map[string]Port)
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		width := 1
		if m[1] != "" {
			// [MSB:LSB] declaration; MSB+1 is the width
			msb, err := strconv.Atoi(m[1])
			if err == nil {
				width = msb + 1
			}
		}
		ports[m[3]] = Port{Width: width, Desc: desc}
	}
	return ports
}

func extractParameters(content string) map[string]string {
	params := make(map[string]string)
	for _, m := range paramRe.FindAllStringSubmatch(content, -1) {
		params[m[1]] = strings.TrimSpace(m[2])
	}
	return params
}
