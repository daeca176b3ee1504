package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu   sync.Mutex
	pose *Pose
	err  error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetPose sets the pose that will be returned by Detect.
// Pass nil to simulate no person in frame.
func (m *MockDetector) SetPose(pose *Pose) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pose = pose
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the pre-configured pose or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*Pose, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.pose, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// RestPose returns a preset pose with both wrists parked on the
// default joystick origins, deflecting neither stick.
func RestPose() *Pose {
	pose := &Pose{Score: 0.95}
	for i := range pose.Points {
		pose.Points[i] = Point{X: 0.5, Y: 0.5, Visibility: 0.9}
	}
	pose.Points[LeftShoulder] = Point{X: 0.6, Y: 0.35, Visibility: 0.99}
	pose.Points[RightShoulder] = Point{X: 0.4, Y: 0.35, Visibility: 0.99}
	pose.Points[LeftWrist] = Point{X: 0.92, Y: 0.88, Visibility: 0.95}
	pose.Points[RightWrist] = Point{X: 0.08, Y: 0.88, Visibility: 0.95}
	return pose
}

// WristsAtPose returns RestPose with the wrists moved to the given
// normalized positions, for driving joystick scenarios in tests.
func WristsAtPose(leftX, leftY, rightX, rightY float64) *Pose {
	pose := RestPose()
	pose.Points[LeftWrist] = Point{X: leftX, Y: leftY, Visibility: 0.95}
	pose.Points[RightWrist] = Point{X: rightX, Y: rightY, Visibility: 0.95}
	return pose
}
