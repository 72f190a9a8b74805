//go:build gocv
// +build gocv

// Package vision is the object-detection adapter. The real backend runs
// an ONNX detection model through the gocv DNN module and is selected
// with the gocv build tag; without it a stub reports detection as
// unavailable.
package vision

import (
	"context"
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"bda-svc/internal/domain/entity"
	"bda-svc/internal/domain/port"
)

// DNNDetector runs a single-stage detection model (YOLO-family ONNX
// export) over full images and crops each detection for the VLM.
type DNNDetector struct {
	net           gocv.Net
	labels        []string
	modelName     string
	inputSize     int
	confThreshold float32
	nmsThreshold  float32
	minImageSide  int
}

// NewDNNDetector loads the detection network from disk.
func NewDNNDetector(opts Options) (*DNNDetector, error) {
	opts.applyDefaults()
	if opts.ModelPath == "" {
		return nil, errors.New("detector model path is required")
	}
	if len(opts.Labels) == 0 {
		return nil, errors.New("detector labels are required")
	}

	net := gocv.ReadNetFromONNX(opts.ModelPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load detection model from %s", opts.ModelPath)
	}

	return &DNNDetector{
		net:           net,
		labels:        opts.Labels,
		modelName:     opts.ModelName,
		inputSize:     opts.InputSize,
		confThreshold: opts.ConfThreshold,
		nmsThreshold:  opts.NMSThreshold,
		minImageSide:  opts.MinImageSide,
	}, nil
}

// Close releases the detection network.
func (d *DNNDetector) Close() error {
	return d.net.Close()
}

// ModelName identifies the detection model for export records.
func (d *DNNDetector) ModelName() string { return d.modelName }

// Detect runs the detection model over one image and returns labeled,
// scored regions with encoded crops.
func (d *DNNDetector) Detect(ctx context.Context, imagePath string) ([]entity.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img := gocv.IMRead(imagePath, gocv.IMReadColor)
	if img.Empty() {
		return nil, fmt.Errorf("failed to decode image %s", imagePath)
	}
	defer img.Close()

	if img.Cols() < d.minImageSide || img.Rows() < d.minImageSide {
		return nil, fmt.Errorf("image %s is too small (%dx%d)", imagePath, img.Cols(), img.Rows())
	}

	blob := gocv.BlobFromImage(img, 1.0/255.0,
		image.Pt(d.inputSize, d.inputSize), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	out := d.net.Forward("")
	defer out.Close()

	boxes, scores, classIDs, err := d.decode(out, img.Cols(), img.Rows())
	if err != nil {
		return nil, fmt.Errorf("decode detections for %s: %w", imagePath, err)
	}

	keep := gocv.NMSBoxes(boxes, scores, d.confThreshold, d.nmsThreshold)

	detections := make([]entity.Detection, 0, len(keep))
	for _, i := range keep {
		rect := clampRect(boxes[i], img.Cols(), img.Rows())
		if rect.Dx() == 0 || rect.Dy() == 0 {
			continue
		}

		crop, err := encodeCrop(img, rect)
		if err != nil {
			return nil, fmt.Errorf("crop region of %s: %w", imagePath, err)
		}

		detections = append(detections, entity.Detection{
			Image: imagePath,
			Region: entity.Region{
				X:      rect.Min.X,
				Y:      rect.Min.Y,
				Width:  rect.Dx(),
				Height: rect.Dy(),
			},
			Category:   d.labels[classIDs[i]],
			Confidence: float64(scores[i]),
			Crop:       crop,
		})
	}

	return detections, nil
}

// decode parses the model output tensor, shaped [1, 4+classes, anchors],
// into candidate boxes scaled back to the original image.
func (d *DNNDetector) decode(out gocv.Mat, imgW, imgH int) ([]image.Rectangle, []float32, []int, error) {
	sizes := out.Size()
	if len(sizes) != 3 || sizes[1] < 5 {
		return nil, nil, nil, fmt.Errorf("unexpected output shape %v", sizes)
	}
	dims, anchors := sizes[1], sizes[2]
	if dims-4 != len(d.labels) {
		return nil, nil, nil, fmt.Errorf("model emits %d classes, %d labels configured", dims-4, len(d.labels))
	}

	flat := out.Reshape(1, dims)
	defer flat.Close()

	scaleX := float32(imgW) / float32(d.inputSize)
	scaleY := float32(imgH) / float32(d.inputSize)

	var boxes []image.Rectangle
	var scores []float32
	var classIDs []int

	for a := 0; a < anchors; a++ {
		bestClass := 0
		bestScore := float32(0)
		for c := 4; c < dims; c++ {
			if s := flat.GetFloatAt(c, a); s > bestScore {
				bestScore = s
				bestClass = c - 4
			}
		}
		if bestScore < d.confThreshold {
			continue
		}

		cx := flat.GetFloatAt(0, a) * scaleX
		cy := flat.GetFloatAt(1, a) * scaleY
		w := flat.GetFloatAt(2, a) * scaleX
		h := flat.GetFloatAt(3, a) * scaleY

		boxes = append(boxes, image.Rect(
			int(cx-w/2), int(cy-h/2),
			int(cx+w/2), int(cy+h/2),
		))
		scores = append(scores, bestScore)
		classIDs = append(classIDs, bestClass)
	}

	return boxes, scores, classIDs, nil
}

// encodeCrop extracts a region and encodes it as PNG for the VLM.
func encodeCrop(img gocv.Mat, rect image.Rectangle) ([]byte, error) {
	region := img.Region(rect)
	defer region.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, region)
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	// Copy out: the native buffer is freed on Close.
	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())
	return data, nil
}

// clampRect constrains a rectangle to the image bounds.
func clampRect(rect image.Rectangle, w, h int) image.Rectangle {
	return rect.Intersect(image.Rect(0, 0, w, h))
}

var _ port.ObjectDetector = (*DNNDetector)(nil)
