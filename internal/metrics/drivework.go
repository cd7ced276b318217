package metrics

import "github.com/numlab/physlab/internal/dynamo"

// DriveWork accumulates the work F*p*dt done by the external forcing on
// a [q, p] system. For an undriven run it stays exactly zero.
type DriveWork struct {
	name  string
	dt    float64
	total float64
}

func NewDriveWork(dt float64) *DriveWork {
	return &DriveWork{name: "drive_work", dt: dt}
}

func (w *DriveWork) Name() string { return w.name }

func (w *DriveWork) Observe(x dynamo.State, f float64, t float64) {
	if len(x) < 2 {
		return
	}
	w.total += f * x[1] * w.dt
}

func (w *DriveWork) Value() float64 { return w.total }

func (w *DriveWork) Reset() { w.total = 0 }
