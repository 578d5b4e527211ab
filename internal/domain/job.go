package domain

// Job is a validated directory triple plus the extension that governs the run.
type Job struct {
	BackgroundDir string `json:"background_dir"`
	ForegroundDir string `json:"foreground_dir"`
	OutputDir     string `json:"output_dir"`
	Ext           string `json:"ext"`
}
