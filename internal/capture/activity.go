package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Activity detection constants
const (
	// activityBlurSize is the kernel size for Gaussian blur (21x21)
	activityBlurSize = 21
	// activityDiffThreshold is the binary threshold for difference detection
	activityDiffThreshold = 25
)

// ActivityDetector measures how much of the scene changed between
// consecutive frames, using frame differencing with Gaussian blur for
// noise reduction. The session loop uses it to drop the sampling rate
// when the operator is not moving.
type ActivityDetector struct {
	prevGray    gocv.Mat
	initialized bool
	mu          sync.Mutex
}

// NewActivityDetector creates an ActivityDetector.
func NewActivityDetector() *ActivityDetector {
	return &ActivityDetector{
		prevGray: gocv.NewMat(),
	}
}

// Sample compares the frame against the previous one and returns the
// fraction of pixels that changed, in [0, 1]. The first frame becomes
// the baseline and reports zero.
func (a *ActivityDetector) Sample(frame *gocv.Mat) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	if frame == nil || frame.Empty() {
		return 0
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: activityBlurSize, Y: activityBlurSize}, 0, 0, gocv.BorderDefault)

	if !a.initialized {
		blurred.CopyTo(&a.prevGray)
		a.initialized = true
		return 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, a.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, activityDiffThreshold, 255, gocv.ThresholdBinary)

	nonZero := gocv.CountNonZero(thresh)
	totalPixels := thresh.Rows() * thresh.Cols()

	blurred.CopyTo(&a.prevGray)

	if totalPixels == 0 {
		return 0
	}
	return float64(nonZero) / float64(totalPixels)
}

// Reset clears the baseline so the next sample starts fresh.
func (a *ActivityDetector) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.initialized = false
}

// Close releases the detector's internal buffers.
func (a *ActivityDetector) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.prevGray.Close()
	a.initialized = false
}
