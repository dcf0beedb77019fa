package relay

import "time"

// Role distinguishes the two ends of a relay.
type Role string

const (
	RoleProducer Role = "producer"
	RoleConsumer Role = "consumer"
)

// Metrics receives relay events. A nil Metrics on Relay records nothing.
type Metrics interface {
	ConnOpened(role Role)
	ConnClosed(role Role)
	FrameReceived()
	// FrameRelayed reports one write to a consumer and how long ago the
	// written frame arrived.
	FrameRelayed(age time.Duration)
	Rejected(role Role, reason string)
}

type nopMetrics struct{}

func (nopMetrics) ConnOpened(Role)            {}
func (nopMetrics) ConnClosed(Role)            {}
func (nopMetrics) FrameReceived()             {}
func (nopMetrics) FrameRelayed(time.Duration) {}
func (nopMetrics) Rejected(Role, string)      {}
