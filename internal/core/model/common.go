package model

// Bounds of the timestamps a series file can hold (years 1 to 9999, UTC).
const (
	MinTimestamp int64 = -62135596800
	MaxTimestamp int64 = 253402300799
)

// Default file names inside the data tree
const (
	DefaultProfileFile   = "profile.json"
	DefaultGraphListFile = "graphs.txt"
	DefaultExportFile    = "export.csv"
)
