package vcd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SamplingPolicy selects which simulation instants the sampler records.
type SamplingPolicy int

const (
	// EveryTimestamp samples the current-value table at every timestamp
	// boundary inside the time window. This is the default.
	EveryTimestamp SamplingPolicy = iota

	// ClockFallingEdge samples only at timestamp boundaries where the
	// designated clock transitioned from 1 to 0 since the previous
	// boundary.
	ClockFallingEdge
)

func (p SamplingPolicy) String() string {
	if p == ClockFallingEdge {
		return "clock-falling-edge"
	}
	return "every-timestamp"
}

// ParseSamplingPolicy converts a policy name from config or flags.
func ParseSamplingPolicy(name string) (SamplingPolicy, error) {
	switch name {
	case "", "every-timestamp":
		return EveryTimestamp, nil
	case "clock-falling-edge":
		return ClockFallingEdge, nil
	default:
		return 0, fmt.Errorf("unknown sampling policy %q", name)
	}
}

// SampleGroup is one chunk of synchronized samples: for every tracked
// identifier code, the sequence of values observed at the sampled instants.
// All sequences in a group have equal length. Origin is the simulation time
// of the group's first sample.
type SampleGroup struct {
	Origin  uint64
	Samples map[string][]string
}

// Sampler walks the value-change section of a VCD stream and collects
// chunked sample groups.
type Sampler struct {
	WaveChunk int            // samples per group
	StartTime uint64         // first timestamp to sample
	EndTime   uint64         // last timestamp to sample, 0 = unbounded
	Policy    SamplingPolicy // which instants to record
}

// NewSampler returns a sampler with the given window, using the
// EveryTimestamp policy.
func NewSampler(waveChunk int, startTime, endTime uint64) *Sampler {
	return &Sampler{WaveChunk: waveChunk, StartTime: startTime, EndTime: endTime}
}

// Sample reads the dump section from r, positioned immediately after
// $enddefinitions, tracking the clock identifier and every identifier in
// signalIDs (duplicates and the clock itself are tolerated in signalIDs).
//
// All tracked values start as "x". At each timestamp boundary inside
// [StartTime, EndTime] (EndTime 0 meaning unbounded), the current value of
// every tracked identifier is recorded, subject to Policy: EveryTimestamp
// records at every boundary, ClockFallingEdge only where the clock moved
// from 1 to 0. Each WaveChunk recorded instants are emitted as one
// SampleGroup; a final short group is emitted if samples remain. An input
// with no qualifying timestamps yields an empty (non-nil) slice, not an
// error.
//
// Directive lines ($...) and real-number changes (r...) are skipped. A line
// starting with any other unrecognized character fails with
// ErrUnexpectedToken.
func (s *Sampler) Sample(r io.Reader, clockID string, signalIDs []string) ([]SampleGroup, error) {
	ids := make([]string, 0, len(signalIDs)+1)
	values := make(map[string]string, len(signalIDs)+1)
	pending := make(map[string][]string, len(signalIDs)+1)
	for _, id := range append([]string{clockID}, signalIDs...) {
		if _, ok := values[id]; ok {
			continue
		}
		ids = append(ids, id)
		values[id] = "x"
		pending[id] = nil
	}

	groups := []SampleGroup{}
	var now uint64
	var origin uint64
	count := 0
	clockPrev := values[clockID]

	flush := func() {
		group := SampleGroup{Origin: origin, Samples: make(map[string][]string, len(ids))}
		for _, id := range ids {
			group.Samples[id] = pending[id]
			pending[id] = nil
		}
		groups = append(groups, group)
		count = 0
	}

	scanner := bufio.NewScanner(r)
	for {
		if s.EndTime != 0 && s.EndTime < now {
			break
		}
		if !scanner.Scan() {
			break
		}
		words := strings.Fields(scanner.Text())
		if len(words) == 0 {
			continue
		}

		switch c := words[0][0]; c {
		case '$', 'r':
			// directives and real-number changes are not sampled

		case '0', '1', 'x', 'z':
			id := words[0][1:]
			if _, ok := values[id]; ok {
				values[id] = string(c)
			}

		case 'b':
			if len(words) < 2 {
				return nil, fmt.Errorf("%w: vector change without identifier", ErrUnexpectedToken)
			}
			if _, ok := values[words[1]]; ok {
				values[words[1]] = words[0][1:]
			}

		case '#':
			t, err := strconv.ParseUint(words[0][1:], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad timestamp %q", ErrUnexpectedToken, words[0])
			}
			now = t
			falling := clockPrev == "1" && values[clockID] == "0"
			clockPrev = values[clockID]

			if now < s.StartTime || (s.EndTime != 0 && now > s.EndTime) {
				continue
			}
			if s.Policy == ClockFallingEdge && !falling {
				continue
			}
			if count == 0 {
				origin = now
			}
			for _, id := range ids {
				pending[id] = append(pending[id], values[id])
			}
			count++
			if count == s.WaveChunk {
				flush()
			}

		default:
			return nil, fmt.Errorf("%w: %q", ErrUnexpectedToken, string(c))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading VCD dump: %w", err)
	}

	if count > 0 {
		flush()
	}
	return groups, nil
}
