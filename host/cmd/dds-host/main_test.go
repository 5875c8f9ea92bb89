package main

import (
	"bytes"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
)

func run(c *qt.C, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPlanDefaults(t *testing.T) {
	c := qt.New(t)
	out, err := run(c, "plan")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "compare:       20\n")
	c.Assert(out, qt.Contains, "trigger:       1000000.000 Hz (42 ticks)")
	c.Assert(out, qt.Contains, "signal:        976.5625 Hz")
	c.Assert(out, qt.Contains, "     20     976.5625")
	c.Assert(out, qt.Contains, "     18")
	c.Assert(out, qt.Contains, "     22")
}

func TestPlanRejects(t *testing.T) {
	c := qt.New(t)
	_, err := run(c, "plan", "--freq", "50000000", "--size", "1024")
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestPlanTarget(t *testing.T) {
	c := qt.New(t)
	out, err := run(c, "plan", "--target", "rp2040", "--neighbors", "0")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "timer clock:   125000000 Hz")
	c.Assert(out, qt.Not(qt.Contains), "error [ppm]")
}

func TestTableCSV(t *testing.T) {
	c := qt.New(t)
	out, err := run(c, "table", "--waveform", "square", "--size", "4", "--csv")
	c.Assert(err, qt.IsNil)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	c.Assert(lines, qt.HasLen, 5)
	c.Assert(lines[0], qt.Equals, "index,value")
	c.Assert(lines[1], qt.Equals, "0,4095")
	c.Assert(lines[4], qt.Equals, "3,0")
}

func TestTableUnknownWaveform(t *testing.T) {
	c := qt.New(t)
	_, err := run(c, "table", "--waveform", "noise")
	c.Assert(err, qt.ErrorMatches, `.*noise.*`)
}

func TestSimulate(t *testing.T) {
	c := qt.New(t)
	out, err := run(c, "simulate", "--size", "64", "--periods", "3")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "boot report:   sine f=1000 Hz n=64")
	c.Assert(out, qt.Contains, "192 writes, 192 conversions, 0 underruns")
}
