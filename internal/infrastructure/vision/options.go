package vision

// Options configures the detection backend.
type Options struct {
	ModelPath     string   // path to the ONNX detection model
	Labels        []string // class labels, index-aligned with the model output
	ModelName     string   // identifier recorded in export artifacts
	InputSize     int      // square network input size
	ConfThreshold float32  // minimum detection confidence
	NMSThreshold  float32  // non-maximum-suppression overlap threshold
	MinImageSide  int      // reject images smaller than this on either side
}

func (o *Options) applyDefaults() {
	if o.InputSize == 0 {
		o.InputSize = 640
	}
	if o.ConfThreshold == 0 {
		o.ConfThreshold = 0.4
	}
	if o.NMSThreshold == 0 {
		o.NMSThreshold = 0.45
	}
	if o.MinImageSide == 0 {
		o.MinImageSide = 32
	}
	if o.ModelName == "" {
		o.ModelName = o.ModelPath
	}
}
