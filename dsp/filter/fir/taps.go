package fir

// LowpassTaps37 is the pedal's fixed 37-tap symmetric low-pass: flat to
// about 1 kHz, -23 dB at 4 kHz and below -65 dB from 5 kHz at 48 kHz.
var LowpassTaps37 = [37]float64{
	-0.00038320543575594507,
	-0.001377178701148151,
	-0.0025366259116399122,
	-0.004432549591717381,
	-0.006494295696777184,
	-0.008515660530043372,
	-0.009767438023472977,
	-0.009526244099262525,
	-0.006932364763420581,
	-0.0012788243688729513,
	0.007887516146031764,
	0.020575396949645768,
	0.036269525391131,
	0.05390782359810524,
	0.07197526362835165,
	0.08868444305715538,
	0.10222851805387685,
	0.11105647594211442,
	0.11412216765453903,
	0.11105647594211442,
	0.10222851805387685,
	0.08868444305715538,
	0.07197526362835165,
	0.05390782359810524,
	0.036269525391131,
	0.020575396949645768,
	0.007887516146031764,
	-0.0012788243688729513,
	-0.006932364763420581,
	-0.009526244099262525,
	-0.009767438023472977,
	-0.008515660530043372,
	-0.006494295696777184,
	-0.004432549591717381,
	-0.0025366259116399122,
	-0.001377178701148151,
	-0.00038320543575594507,
}

// NewLowpass37 returns a filter running [LowpassTaps37].
func NewLowpass37() *Filter {
	f, _ := New(LowpassTaps37[:])
	return f
}
