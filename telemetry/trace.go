package telemetry

// CycleRecord is one row of the per-cycle path trace.
type CycleRecord struct {
	Cycle    int     `csv:"cycle"`
	SimTime  float64 `csv:"sim_time"`
	Speed    float64 `csv:"speed"`
	HeadX    float64 `csv:"head_x"`
	HeadY    float64 `csv:"head_y"`
	HeadZ    float64 `csv:"head_z"`
	DirX     float64 `csv:"dir_x"`
	DirZ     float64 `csv:"dir_z"`
	TailX    float64 `csv:"tail_x"`
	TailY    float64 `csv:"tail_y"`
	TailZ    float64 `csv:"tail_z"`
	Turning  int     `csv:"turning"` // followers on an arc after the cycle
	Vertices int     `csv:"vertices"`
}
